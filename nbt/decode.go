// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// DefaultMaxDepth is the decoder's initial nesting depth limit. 512
// levels is far beyond any tree produced in practice while keeping a
// crafted deep-nesting stream from exhausting the stack.
const DefaultMaxDepth = 512

// arrayChunkBytes bounds the per-step read buffer for array and
// string payloads, so a hostile length prefix cannot force a large
// allocation before any payload bytes exist. Memory growth then
// tracks bytes actually read.
const arrayChunkBytes = 16 * 1024

// Decoder reads the wire format from an io.Reader. It reads exactly
// the bytes the format describes — no internal buffering, no
// look-ahead — so the reader can carry other framed data after the
// stream. Wrap the reader in a bufio.Reader when the source makes
// many small reads expensive, if nothing else shares it.
//
// The payload methods (DecodeByte through Skip) consume raw payloads
// with no framing; they exist for [Unmarshaler] implementations. A
// complete stream is consumed by [Decoder.Decode].
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	r        io.Reader
	naming   RootNaming
	maxDepth int
	depth    int
	scratch  [8]byte
}

// NewDecoder returns a decoder reading from r, expecting [RootNamed]
// framing, with the nesting depth limit set to [DefaultMaxDepth].
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r, maxDepth: DefaultMaxDepth}
}

// SetRootNaming selects the root framing [Decoder.Decode] expects.
// The default is [RootNamed].
func (d *Decoder) SetRootNaming(naming RootNaming) {
	d.naming = naming
}

// SetMaxDepth replaces the nesting depth limit applied while decoding
// dynamic trees and skipping payloads. A limit of zero or below
// disables the check; do that only for trusted input.
func (d *Decoder) SetMaxDepth(limit int) {
	d.maxDepth = limit
}

// Decode consumes a complete stream: the root's tag byte, the root
// name (in [RootNamed] mode), and the root's payload, which is handed
// to target. The root name is returned out of band — it is part of
// the stream's framing, not of the tree. In [RootUnnamed] mode the
// returned name is always empty.
//
// A stream whose leading tag is valid but not [TagCompound] reports
// [ErrNonCompoundRoot]; an undefined leading byte reports
// [InvalidTagError].
func (d *Decoder) Decode(target Unmarshaler) (rootName string, err error) {
	tag, err := d.readTag("root tag")
	if err != nil {
		return "", err
	}
	if tag != TagCompound {
		return "", fmt.Errorf("nbt: decode root with tag %s: %w", tag, ErrNonCompoundRoot)
	}
	if d.naming == RootNamed {
		rootName, err = d.readString()
		if err != nil {
			return "", err
		}
	}
	if err := target.UnmarshalNBT(TagCompound, d); err != nil {
		return "", err
	}
	return rootName, nil
}

// ReadEntryHeader reads the next entry's framing inside a compound
// body: its tag byte and name. At the end of the body it returns
// [TagEnd] with an empty name; the caller then stops without reading
// a payload. For any other tag the caller must consume exactly one
// payload of that kind, by decoding it or by [Decoder.Skip].
func (d *Decoder) ReadEntryHeader() (Tag, string, error) {
	tag, err := d.readTag("entry tag")
	if err != nil {
		return 0, "", err
	}
	if tag == TagEnd {
		return TagEnd, "", nil
	}
	name, err := d.readString()
	if err != nil {
		return 0, "", err
	}
	return tag, name, nil
}

// ReadListHeader reads a list payload's framing: the element tag and
// element count. The caller must then consume exactly that many
// element payloads. tag is the tag the wire carried for this value
// and must be [TagList].
func (d *Decoder) ReadListHeader(tag Tag) (elem Tag, length int, err error) {
	if tag != TagList {
		return 0, 0, &TypeMismatchError{Want: TagList, Got: tag}
	}
	elem, err = d.readTag("list element tag")
	if err != nil {
		return 0, 0, err
	}
	length, err = d.readLength("list")
	if err != nil {
		return 0, 0, err
	}
	if elem == TagEnd && length > 0 {
		return 0, 0, fmt.Errorf("nbt: list of %d elements with end element tag", length)
	}
	return elem, length, nil
}

// DecodeByte consumes a byte payload. tag must be [TagByte].
func (d *Decoder) DecodeByte(tag Tag) (int8, error) {
	if tag != TagByte {
		return 0, &TypeMismatchError{Want: TagByte, Got: tag}
	}
	if err := d.readFull(d.scratch[:1], "byte"); err != nil {
		return 0, err
	}
	return int8(d.scratch[0]), nil
}

// DecodeShort consumes a short payload. tag must be [TagShort].
func (d *Decoder) DecodeShort(tag Tag) (int16, error) {
	if tag != TagShort {
		return 0, &TypeMismatchError{Want: TagShort, Got: tag}
	}
	if err := d.readFull(d.scratch[:2], "short"); err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(d.scratch[:2])), nil
}

// DecodeInt consumes an int payload. tag must be [TagInt].
func (d *Decoder) DecodeInt(tag Tag) (int32, error) {
	if tag != TagInt {
		return 0, &TypeMismatchError{Want: TagInt, Got: tag}
	}
	if err := d.readFull(d.scratch[:4], "int"); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(d.scratch[:4])), nil
}

// DecodeLong consumes a long payload. tag must be [TagLong].
func (d *Decoder) DecodeLong(tag Tag) (int64, error) {
	if tag != TagLong {
		return 0, &TypeMismatchError{Want: TagLong, Got: tag}
	}
	if err := d.readFull(d.scratch[:8], "long"); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(d.scratch[:8])), nil
}

// DecodeFloat consumes a float payload. tag must be [TagFloat].
func (d *Decoder) DecodeFloat(tag Tag) (float32, error) {
	if tag != TagFloat {
		return 0, &TypeMismatchError{Want: TagFloat, Got: tag}
	}
	if err := d.readFull(d.scratch[:4], "float"); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(d.scratch[:4])), nil
}

// DecodeDouble consumes a double payload. tag must be [TagDouble].
func (d *Decoder) DecodeDouble(tag Tag) (float64, error) {
	if tag != TagDouble {
		return 0, &TypeMismatchError{Want: TagDouble, Got: tag}
	}
	if err := d.readFull(d.scratch[:8], "double"); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(d.scratch[:8])), nil
}

// DecodeString consumes a string payload. tag must be [TagString].
// A payload that is not valid UTF-8 reports [ErrInvalidUTF8].
func (d *Decoder) DecodeString(tag Tag) (string, error) {
	if tag != TagString {
		return "", &TypeMismatchError{Want: TagString, Got: tag}
	}
	return d.readString()
}

// DecodeByteArray consumes a byte array payload. tag must be
// [TagByteArray] — in particular, list-tagged data never decodes
// into an array target.
func (d *Decoder) DecodeByteArray(tag Tag) (ByteArray, error) {
	if tag != TagByteArray {
		return nil, &TypeMismatchError{Want: TagByteArray, Got: tag}
	}
	length, err := d.readLength("byte array")
	if err != nil {
		return nil, err
	}
	chunk := min(length, arrayChunkBytes)
	out := make(ByteArray, 0, chunk)
	buf := make([]byte, chunk)
	for remaining := length; remaining > 0; {
		n := min(remaining, chunk)
		if err := d.readFull(buf[:n], "byte array"); err != nil {
			return nil, err
		}
		for _, b := range buf[:n] {
			out = append(out, int8(b))
		}
		remaining -= n
	}
	return out, nil
}

// DecodeIntArray consumes an int array payload. tag must be
// [TagIntArray].
func (d *Decoder) DecodeIntArray(tag Tag) (IntArray, error) {
	if tag != TagIntArray {
		return nil, &TypeMismatchError{Want: TagIntArray, Got: tag}
	}
	length, err := d.readLength("int array")
	if err != nil {
		return nil, err
	}
	chunk := min(length, arrayChunkBytes/4)
	out := make(IntArray, 0, chunk)
	buf := make([]byte, chunk*4)
	for remaining := length; remaining > 0; {
		n := min(remaining, chunk)
		if err := d.readFull(buf[:n*4], "int array"); err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			out = append(out, int32(binary.BigEndian.Uint32(buf[i*4:])))
		}
		remaining -= n
	}
	return out, nil
}

// DecodeLongArray consumes a long array payload. tag must be
// [TagLongArray].
func (d *Decoder) DecodeLongArray(tag Tag) (LongArray, error) {
	if tag != TagLongArray {
		return nil, &TypeMismatchError{Want: TagLongArray, Got: tag}
	}
	length, err := d.readLength("long array")
	if err != nil {
		return nil, err
	}
	chunk := min(length, arrayChunkBytes/8)
	out := make(LongArray, 0, chunk)
	buf := make([]byte, chunk*8)
	for remaining := length; remaining > 0; {
		n := min(remaining, chunk)
		if err := d.readFull(buf[:n*8], "long array"); err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			out = append(out, int64(binary.BigEndian.Uint64(buf[i*8:])))
		}
		remaining -= n
	}
	return out, nil
}

// DecodeValue consumes a payload of any kind and builds the
// corresponding dynamic [Value]. Lists and compounds recurse, subject
// to the depth limit.
func (d *Decoder) DecodeValue(tag Tag) (Value, error) {
	switch tag {
	case TagByte:
		v, err := d.DecodeByte(tag)
		if err != nil {
			return nil, err
		}
		return Byte(v), nil
	case TagShort:
		v, err := d.DecodeShort(tag)
		if err != nil {
			return nil, err
		}
		return Short(v), nil
	case TagInt:
		v, err := d.DecodeInt(tag)
		if err != nil {
			return nil, err
		}
		return Int(v), nil
	case TagLong:
		v, err := d.DecodeLong(tag)
		if err != nil {
			return nil, err
		}
		return Long(v), nil
	case TagFloat:
		v, err := d.DecodeFloat(tag)
		if err != nil {
			return nil, err
		}
		return Float(v), nil
	case TagDouble:
		v, err := d.DecodeDouble(tag)
		if err != nil {
			return nil, err
		}
		return Double(v), nil
	case TagString:
		v, err := d.DecodeString(tag)
		if err != nil {
			return nil, err
		}
		return String(v), nil
	case TagByteArray:
		return d.DecodeByteArray(tag)
	case TagIntArray:
		return d.DecodeIntArray(tag)
	case TagLongArray:
		return d.DecodeLongArray(tag)
	case TagList:
		return d.decodeList()
	case TagCompound:
		return d.decodeCompound()
	case TagEnd:
		return nil, fmt.Errorf("nbt: end tag has no payload")
	default:
		return nil, &InvalidTagError{Byte: byte(tag)}
	}
}

// Skip consumes a payload of the given kind without building a value.
// This is how [Unmarshaler] implementations pass over entries they do
// not recognize. Fixed-width payloads are skipped by size; lists and
// compounds are walked structurally, subject to the depth limit.
// Skipped string payloads are discarded unvalidated.
func (d *Decoder) Skip(tag Tag) error {
	switch tag {
	case TagByte:
		return d.discard(1, "byte")
	case TagShort:
		return d.discard(2, "short")
	case TagInt:
		return d.discard(4, "int")
	case TagLong:
		return d.discard(8, "long")
	case TagFloat:
		return d.discard(4, "float")
	case TagDouble:
		return d.discard(8, "double")
	case TagString:
		return d.skipString()
	case TagByteArray:
		length, err := d.readLength("byte array")
		if err != nil {
			return err
		}
		return d.discard(int64(length), "byte array")
	case TagIntArray:
		length, err := d.readLength("int array")
		if err != nil {
			return err
		}
		return d.discard(int64(length)*4, "int array")
	case TagLongArray:
		length, err := d.readLength("long array")
		if err != nil {
			return err
		}
		return d.discard(int64(length)*8, "long array")
	case TagList:
		return d.skipList()
	case TagCompound:
		return d.skipCompound()
	case TagEnd:
		return fmt.Errorf("nbt: end tag has no payload")
	default:
		return &InvalidTagError{Byte: byte(tag)}
	}
}

func (d *Decoder) decodeList() (Value, error) {
	elem, length, err := d.ReadListHeader(TagList)
	if err != nil {
		return nil, err
	}
	if err := d.push(); err != nil {
		return nil, err
	}
	defer d.pop()
	items := make([]Value, 0, min(length, 1024))
	for i := 0; i < length; i++ {
		item, err := d.DecodeValue(elem)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return List{elem: elem, items: items}, nil
}

func (d *Decoder) decodeCompound() (Value, error) {
	if err := d.push(); err != nil {
		return nil, err
	}
	defer d.pop()
	compound := Compound{}
	var seen map[string]struct{}
	for {
		tag, name, err := d.ReadEntryHeader()
		if err != nil {
			return nil, err
		}
		if tag == TagEnd {
			return compound, nil
		}
		if seen == nil {
			seen = make(map[string]struct{})
		}
		if _, dup := seen[name]; dup {
			return nil, &DuplicateKeyError{Key: name}
		}
		seen[name] = struct{}{}
		value, err := d.DecodeValue(tag)
		if err != nil {
			return nil, err
		}
		compound = append(compound, Entry{Key: name, Value: value})
	}
}

func (d *Decoder) skipString() error {
	if err := d.readFull(d.scratch[:2], "string length"); err != nil {
		return err
	}
	return d.discard(int64(binary.BigEndian.Uint16(d.scratch[:2])), "string")
}

func (d *Decoder) skipList() error {
	elem, length, err := d.ReadListHeader(TagList)
	if err != nil {
		return err
	}
	if err := d.push(); err != nil {
		return err
	}
	defer d.pop()
	switch elem {
	case TagByte:
		return d.discard(int64(length), "list")
	case TagShort:
		return d.discard(int64(length)*2, "list")
	case TagInt, TagFloat:
		return d.discard(int64(length)*4, "list")
	case TagLong, TagDouble:
		return d.discard(int64(length)*8, "list")
	}
	for i := 0; i < length; i++ {
		if err := d.Skip(elem); err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) skipCompound() error {
	if err := d.push(); err != nil {
		return err
	}
	defer d.pop()
	for {
		tag, _, err := d.ReadEntryHeader()
		if err != nil {
			return err
		}
		if tag == TagEnd {
			return nil
		}
		if err := d.Skip(tag); err != nil {
			return err
		}
	}
}

func (d *Decoder) push() error {
	d.depth++
	if d.maxDepth > 0 && d.depth > d.maxDepth {
		return ErrMaxDepth
	}
	return nil
}

func (d *Decoder) pop() {
	d.depth--
}

func (d *Decoder) readTag(what string) (Tag, error) {
	if err := d.readFull(d.scratch[:1], what); err != nil {
		return 0, err
	}
	tag := Tag(d.scratch[0])
	if !tag.Valid() {
		return 0, &InvalidTagError{Byte: d.scratch[0]}
	}
	return tag, nil
}

func (d *Decoder) readLength(what string) (int, error) {
	if err := d.readFull(d.scratch[:4], what+" length"); err != nil {
		return 0, err
	}
	length := int(int32(binary.BigEndian.Uint32(d.scratch[:4])))
	if length < 0 {
		return 0, fmt.Errorf("nbt: %s length %d is negative", what, length)
	}
	return length, nil
}

func (d *Decoder) readString() (string, error) {
	if err := d.readFull(d.scratch[:2], "string length"); err != nil {
		return "", err
	}
	length := int(binary.BigEndian.Uint16(d.scratch[:2]))
	if length == 0 {
		return "", nil
	}
	buf := make([]byte, length)
	if err := d.readFull(buf, "string"); err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", ErrInvalidUTF8
	}
	return string(buf), nil
}

// readFull reads exactly len(p) bytes. A clean EOF counts as
// truncation here: every read is for bytes the format says must
// exist, so the caller always sees io.ErrUnexpectedEOF when the
// source runs dry.
func (d *Decoder) readFull(p []byte, what string) error {
	if _, err := io.ReadFull(d.r, p); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("nbt: read %s: %w", what, err)
	}
	return nil
}

func (d *Decoder) discard(n int64, what string) error {
	if n == 0 {
		return nil
	}
	if _, err := io.CopyN(io.Discard, d.r, n); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("nbt: skip %s: %w", what, err)
	}
	return nil
}

// Unmarshal decodes a complete stream from data into target,
// discarding the root name.
func Unmarshal(data []byte, target Unmarshaler) error {
	_, err := NewDecoder(bytes.NewReader(data)).Decode(target)
	return err
}
