// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

// Anvil is the unified CLI for the tagged binary tree format. It
// provides subcommands for converting trees between the binary wire
// form and textual formats (nbt decode, nbt encode), inspecting wire
// types (nbt diag), and working with sectored region archives
// (region list, region extract).
package main
