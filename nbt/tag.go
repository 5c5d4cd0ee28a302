// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import "fmt"

// Tag identifies the payload type of a value on the wire. Every named
// entry is prefixed by its tag byte, and list headers carry the tag of
// their element type. These values are protocol constants — changing
// them breaks format compatibility.
type Tag uint8

const (
	// TagEnd terminates a compound body. It never carries a payload
	// and never names a value; it also marks the element type of an
	// empty, untyped list.
	TagEnd Tag = 0

	// TagByte is a signed 8-bit integer.
	TagByte Tag = 1

	// TagShort is a signed 16-bit big-endian integer.
	TagShort Tag = 2

	// TagInt is a signed 32-bit big-endian integer.
	TagInt Tag = 3

	// TagLong is a signed 64-bit big-endian integer.
	TagLong Tag = 4

	// TagFloat is an IEEE-754 32-bit big-endian float.
	TagFloat Tag = 5

	// TagDouble is an IEEE-754 64-bit big-endian float.
	TagDouble Tag = 6

	// TagByteArray is a length-prefixed packed array of signed bytes.
	TagByteArray Tag = 7

	// TagString is a length-prefixed UTF-8 string. The length prefix
	// is an unsigned 16-bit byte count, so a string payload is at
	// most 65535 bytes.
	TagString Tag = 8

	// TagList is a homogeneous sequence: one element tag, a 32-bit
	// element count, then the element payloads with no per-element
	// framing.
	TagList Tag = 9

	// TagCompound is an ordered sequence of named entries terminated
	// by TagEnd. The root of every stream is a compound.
	TagCompound Tag = 10

	// TagIntArray is a length-prefixed packed array of 32-bit
	// big-endian integers.
	TagIntArray Tag = 11

	// TagLongArray is a length-prefixed packed array of 64-bit
	// big-endian integers.
	TagLongArray Tag = 12
)

// Valid reports whether t is one of the thirteen defined tags.
func (t Tag) Valid() bool {
	return t <= TagLongArray
}

// String returns the conventional name of the tag.
func (t Tag) String() string {
	switch t {
	case TagEnd:
		return "end"
	case TagByte:
		return "byte"
	case TagShort:
		return "short"
	case TagInt:
		return "int"
	case TagLong:
		return "long"
	case TagFloat:
		return "float"
	case TagDouble:
		return "double"
	case TagByteArray:
		return "byte array"
	case TagString:
		return "string"
	case TagList:
		return "list"
	case TagCompound:
		return "compound"
	case TagIntArray:
		return "int array"
	case TagLongArray:
		return "long array"
	default:
		return fmt.Sprintf("invalid(%d)", uint8(t))
	}
}

// RootNaming selects how the root compound is framed. The classic
// file framing names the root; the network framing drops the name and
// runs the root payload directly after its tag byte.
type RootNaming uint8

const (
	// RootNamed frames the root as tag byte, length-prefixed name,
	// then payload. This is the on-disk framing and the default.
	RootNamed RootNaming = iota

	// RootUnnamed frames the root as tag byte then payload, with no
	// name bytes at all. Nested values are framed identically in both
	// modes.
	RootUnnamed
)
