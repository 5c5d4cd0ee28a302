// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions with no variable detail. Callers
// match them with errors.Is; they may arrive wrapped in positional
// context.
var (
	// ErrNonCompoundRoot is returned when the root of a stream is not
	// a compound: encoding a root whose tag is not TagCompound, or
	// decoding a stream whose leading tag byte is valid but names a
	// different kind.
	ErrNonCompoundRoot = errors.New("nbt: root value must be a compound")

	// ErrInvalidUTF8 is returned when a string payload is not valid
	// UTF-8, in either direction.
	ErrInvalidUTF8 = errors.New("nbt: string is not valid UTF-8")

	// ErrMaxDepth is returned by the decoder when the nesting of
	// lists and compounds exceeds the configured limit. See
	// [Decoder.SetMaxDepth].
	ErrMaxDepth = errors.New("nbt: maximum nesting depth exceeded")
)

// InvalidTagError reports a tag byte outside the defined range.
// Callers can use errors.As to recover the raw byte:
//
//	var tagErr *nbt.InvalidTagError
//	if errors.As(err, &tagErr) { ... tagErr.Byte ... }
type InvalidTagError struct {
	// Byte is the offending tag byte as read from the wire, or as
	// passed to an encoder method.
	Byte byte
}

func (e *InvalidTagError) Error() string {
	return fmt.Sprintf("nbt: invalid tag byte 0x%02x", e.Byte)
}

// TypeMismatchError reports a conflict between the kind a decode
// target expects and the kind the wire data carries. It covers scalar
// kind conflicts, list-versus-array confusion, and array element width
// conflicts alike: no decode path ever truncates or reinterprets a
// payload to satisfy the target.
type TypeMismatchError struct {
	// Want is the tag the caller asked for.
	Want Tag
	// Got is the tag found on the wire (or carried by the value
	// actually supplied).
	Got Tag
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("nbt: type mismatch: want %s, got %s", e.Want, e.Got)
}

// StringTooLongError reports a string whose UTF-8 encoding exceeds
// the 65535-byte limit of the wire format's length prefix. It only
// occurs on encode; the decoder's length field cannot express an
// oversized string.
type StringTooLongError struct {
	// Length is the byte length of the rejected string.
	Length int
}

func (e *StringTooLongError) Error() string {
	return fmt.Sprintf("nbt: string of %d bytes exceeds the 65535-byte limit", e.Length)
}

// DuplicateKeyError reports a compound holding the same key twice:
// either a directly constructed [Compound] literal at encode time, or
// a repeated key encountered on the wire while decoding a dynamic
// tree. Rejecting wire duplicates keeps decode→encode a clean
// round trip; a stream this package accepts is a stream it can
// faithfully reproduce.
type DuplicateKeyError struct {
	// Key is the repeated compound key.
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("nbt: duplicate compound key %q", e.Key)
}

// IsTypeMismatch checks whether err is a *TypeMismatchError with the
// given expected tag.
func IsTypeMismatch(err error, want Tag) bool {
	var mismatchErr *TypeMismatchError
	if errors.As(err, &mismatchErr) {
		return mismatchErr.Want == want
	}
	return false
}
