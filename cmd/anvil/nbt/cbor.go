// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// CBOR modes for the --format/--input cbor bridges. Encoding uses Core
// Deterministic Encoding (RFC 8949 §4.2) so the same tree always
// produces the same bytes; decoding forces string map keys so decoded
// CBOR lands in the map[string]any shape the tree builder accepts.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("nbt tool: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("nbt tool: CBOR decoder initialization failed: " + err.Error())
	}
}
