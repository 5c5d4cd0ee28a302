// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

// Package nbt implements the NBT (Named Binary Tag) wire format: a
// compact, self-describing binary encoding for trees of named, typed
// values. Every value on the wire is framed by a one-byte tag
// identifying its kind, all multi-byte integers and floats are
// big-endian, and the root of every stream is a single named compound.
//
// The package has two layers with a clear boundary:
//
//   - A dynamic tree model: [Value] is a closed set of twelve kinds
//     ([Byte] through [LongArray]) that mirrors the wire format
//     one-to-one. [Compound] preserves key insertion order, [List]
//     enforces element homogeneity at construction. Use this layer
//     when the shape of the data is not known in advance.
//   - A typed codec protocol: types implement [Marshaler] and
//     [Unmarshaler] to encode and decode themselves field by field
//     against an [Encoder] or [Decoder], with no reflection involved.
//     The dynamic tree is itself built on this protocol — every
//     [Value] is a [Marshaler] and every value pointer is an
//     [Unmarshaler] — so the two layers compose freely.
//
// For buffer-oriented operations:
//
//	data, err := nbt.Marshal(root)
//	err = nbt.Unmarshal(data, &root)
//
// For stream-oriented operations, or when the root name matters:
//
//	encoder := nbt.NewEncoder(w)
//	err := encoder.Encode(root, "Level")
//
//	decoder := nbt.NewDecoder(r)
//	rootName, err := decoder.Decode(&root)
//
// The three array kinds ([ByteArray], [IntArray], [LongArray]) are
// distinct named slice types rather than lists, so the choice between
// the packed array encoding and the general list encoding is visible
// in a Go type signature and checked by the compiler. A field declared
// IntArray can never be written with the wrong element width.
//
// Decoding reads exactly the bytes the format describes and never
// buffers ahead, so a Decoder can share an io.Reader with framed
// transport protocols. Untrusted input is bounded by a nesting depth
// limit ([Decoder.SetMaxDepth]) and by allocation that grows with
// bytes actually read rather than with attacker-declared lengths.
//
// Encoder and Decoder are not safe for concurrent use.
package nbt
