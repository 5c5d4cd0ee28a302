// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

// Package nbt implements the "anvil nbt" subcommands for decoding,
// producing, and inspecting tagged binary trees from the command line.
//
// The binary format is compact but opaque; these commands bridge it to
// textual formats that standard tooling understands.
//
// Subcommands:
//
//   - decode: convert a binary tree to JSON, YAML, or deterministic CBOR.
//   - encode: convert JSON, YAML, or CBOR to a binary tree.
//   - diag: print a type-preserving stringified dump of the wire data.
//
// All subcommands accept input from stdin or from a trailing file path
// argument. Compressed input (gzip, zlib, LZ4 frame) is detected and
// unwrapped transparently on the way in; encode compresses on the way
// out with --compression. The --hex flag treats input as hex-encoded
// binary for debugging wire dumps.
//
// With no arguments at all, anvil nbt acts as an alias for anvil nbt
// decode. A bare positional argument is treated as the input file, so
// "anvil nbt level.dat" prints the file as JSON.
package nbt
