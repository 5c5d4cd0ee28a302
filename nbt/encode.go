// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// Encoder writes the wire format to an io.Writer in a single pass,
// with no buffering of its own — bytes reach the writer in wire
// order, and a failed encode leaves the writer partially written.
// Wrap the writer in a bufio.Writer when write granularity matters.
//
// The payload methods (EncodeByte through WriteListHeader) write raw
// payloads with no framing; they exist for [Marshaler]
// implementations. A complete stream is produced by [Encoder.Encode].
//
// An Encoder is not safe for concurrent use.
type Encoder struct {
	w       io.Writer
	naming  RootNaming
	scratch [8]byte
}

// NewEncoder returns an encoder writing to w, framing the root in
// [RootNamed] mode.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// SetRootNaming selects how [Encoder.Encode] frames the root. The
// default is [RootNamed].
func (e *Encoder) SetRootNaming(naming RootNaming) {
	e.naming = naming
}

// Encode writes a complete stream: the root's tag byte, the root name
// (in [RootNamed] mode), and the root's payload. The root must be a
// compound — a [Compound], or any [Marshaler] whose tag is
// [TagCompound] — otherwise Encode reports [ErrNonCompoundRoot]
// without writing anything.
func (e *Encoder) Encode(root Marshaler, rootName string) error {
	if tag := root.Tag(); tag != TagCompound {
		return fmt.Errorf("nbt: encode root with tag %s: %w", tag, ErrNonCompoundRoot)
	}
	e.scratch[0] = byte(TagCompound)
	if err := e.write(e.scratch[:1], "root tag"); err != nil {
		return err
	}
	if e.naming == RootNamed {
		if err := e.EncodeString(rootName); err != nil {
			return err
		}
	}
	return root.MarshalNBT(e)
}

// EncodeEntry writes one complete compound entry: v's tag byte, the
// name, and v's payload. This is the method [Marshaler]
// implementations use for each field, followed by a final
// [Encoder.WriteEnd].
func (e *Encoder) EncodeEntry(name string, v Marshaler) error {
	if err := e.WriteEntryHeader(v.Tag(), name); err != nil {
		return err
	}
	return v.MarshalNBT(e)
}

// WriteEntryHeader writes an entry's framing — tag byte and name —
// leaving the payload to the caller. [TagEnd] is not an entry tag;
// use [Encoder.WriteEnd] to terminate the compound.
func (e *Encoder) WriteEntryHeader(tag Tag, name string) error {
	if !tag.Valid() {
		return &InvalidTagError{Byte: byte(tag)}
	}
	if tag == TagEnd {
		return fmt.Errorf("nbt: compound entry cannot use the end tag")
	}
	e.scratch[0] = byte(tag)
	if err := e.write(e.scratch[:1], "entry tag"); err != nil {
		return err
	}
	return e.EncodeString(name)
}

// WriteEnd writes the end sentinel that terminates a compound body.
func (e *Encoder) WriteEnd() error {
	e.scratch[0] = byte(TagEnd)
	return e.write(e.scratch[:1], "end tag")
}

// WriteListHeader writes a list payload's framing: the element tag
// and the element count. The caller then writes exactly length
// element payloads. An element tag of [TagEnd] is only valid for an
// empty list.
func (e *Encoder) WriteListHeader(elem Tag, length int) error {
	if !elem.Valid() {
		return &InvalidTagError{Byte: byte(elem)}
	}
	if elem == TagEnd && length > 0 {
		return fmt.Errorf("nbt: list of %d elements cannot use the end element tag", length)
	}
	if length < 0 || length > math.MaxInt32 {
		return fmt.Errorf("nbt: list length %d outside the 32-bit range", length)
	}
	e.scratch[0] = byte(elem)
	if err := e.write(e.scratch[:1], "list element tag"); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(e.scratch[:4], uint32(length))
	return e.write(e.scratch[:4], "list length")
}

// EncodeByte writes a byte payload.
func (e *Encoder) EncodeByte(v int8) error {
	e.scratch[0] = byte(v)
	return e.write(e.scratch[:1], "byte")
}

// EncodeShort writes a short payload.
func (e *Encoder) EncodeShort(v int16) error {
	binary.BigEndian.PutUint16(e.scratch[:2], uint16(v))
	return e.write(e.scratch[:2], "short")
}

// EncodeInt writes an int payload.
func (e *Encoder) EncodeInt(v int32) error {
	binary.BigEndian.PutUint32(e.scratch[:4], uint32(v))
	return e.write(e.scratch[:4], "int")
}

// EncodeLong writes a long payload.
func (e *Encoder) EncodeLong(v int64) error {
	binary.BigEndian.PutUint64(e.scratch[:8], uint64(v))
	return e.write(e.scratch[:8], "long")
}

// EncodeFloat writes a float payload.
func (e *Encoder) EncodeFloat(v float32) error {
	binary.BigEndian.PutUint32(e.scratch[:4], math.Float32bits(v))
	return e.write(e.scratch[:4], "float")
}

// EncodeDouble writes a double payload.
func (e *Encoder) EncodeDouble(v float64) error {
	binary.BigEndian.PutUint64(e.scratch[:8], math.Float64bits(v))
	return e.write(e.scratch[:8], "double")
}

// EncodeString writes a string payload: unsigned 16-bit byte length,
// then UTF-8 bytes. Strings longer than 65535 bytes report a
// [StringTooLongError]; strings that are not valid UTF-8 report
// [ErrInvalidUTF8]. Entry names pass through here too, so the same
// limits apply to keys.
func (e *Encoder) EncodeString(s string) error {
	if len(s) > math.MaxUint16 {
		return &StringTooLongError{Length: len(s)}
	}
	if !utf8.ValidString(s) {
		return ErrInvalidUTF8
	}
	binary.BigEndian.PutUint16(e.scratch[:2], uint16(len(s)))
	if err := e.write(e.scratch[:2], "string length"); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		return fmt.Errorf("nbt: write string: %w", err)
	}
	return nil
}

// EncodeByteArray writes a byte array payload: signed 32-bit element
// count, then the elements.
func (e *Encoder) EncodeByteArray(v []int8) error {
	if err := e.writeArrayLength(len(v), "byte array"); err != nil {
		return err
	}
	if len(v) == 0 {
		return nil
	}
	buf := make([]byte, len(v))
	for i, value := range v {
		buf[i] = byte(value)
	}
	return e.write(buf, "byte array")
}

// EncodeIntArray writes an int array payload: signed 32-bit element
// count, then big-endian 32-bit elements.
func (e *Encoder) EncodeIntArray(v []int32) error {
	if err := e.writeArrayLength(len(v), "int array"); err != nil {
		return err
	}
	if len(v) == 0 {
		return nil
	}
	buf := make([]byte, len(v)*4)
	for i, value := range v {
		binary.BigEndian.PutUint32(buf[i*4:], uint32(value))
	}
	return e.write(buf, "int array")
}

// EncodeLongArray writes a long array payload: signed 32-bit element
// count, then big-endian 64-bit elements.
func (e *Encoder) EncodeLongArray(v []int64) error {
	if err := e.writeArrayLength(len(v), "long array"); err != nil {
		return err
	}
	if len(v) == 0 {
		return nil
	}
	buf := make([]byte, len(v)*8)
	for i, value := range v {
		binary.BigEndian.PutUint64(buf[i*8:], uint64(value))
	}
	return e.write(buf, "long array")
}

func (e *Encoder) writeArrayLength(length int, what string) error {
	if length > math.MaxInt32 {
		return fmt.Errorf("nbt: %s length %d outside the 32-bit range", what, length)
	}
	binary.BigEndian.PutUint32(e.scratch[:4], uint32(length))
	return e.write(e.scratch[:4], what+" length")
}

func (e *Encoder) write(p []byte, what string) error {
	if _, err := e.w.Write(p); err != nil {
		return fmt.Errorf("nbt: write %s: %w", what, err)
	}
	return nil
}

// Marshal encodes root as a complete stream with an empty root name.
func Marshal(root Marshaler) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(root, ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
