// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import "slices"

// Marshaler is the encode side of the codec protocol. A Marshaler
// reports the tag of the payload it writes and writes exactly that
// payload — no tag byte, no name — through the Encoder's payload
// methods. The value's framing (its tag and, inside a compound, its
// name) is the caller's job, normally via [Encoder.EncodeEntry] or
// [Encoder.Encode].
type Marshaler interface {
	// Tag reports the wire tag of the payload MarshalNBT writes.
	Tag() Tag

	// MarshalNBT writes the value's payload to e.
	MarshalNBT(e *Encoder) error
}

// Unmarshaler is the decode side of the codec protocol. UnmarshalNBT
// receives the tag the wire actually carries and must either consume
// exactly that payload from d or return an error without consuming it
// (typically a [TypeMismatchError] when the tag is not one it can
// represent).
type Unmarshaler interface {
	UnmarshalNBT(tag Tag, d *Decoder) error
}

// Value is one node of a dynamic tree: exactly one of [Byte], [Short],
// [Int], [Long], [Float], [Double], [String], [ByteArray], [IntArray],
// [LongArray], [List], or [Compound]. The set is closed — the wire
// format defines twelve payload kinds and Value has twelve
// implementations, one per kind, so a switch over [Value.Tag] with
// those twelve cases is exhaustive.
//
// Every Value encodes itself (it is a [Marshaler]), and a pointer to
// any Value kind decodes in place (it is an [Unmarshaler]).
type Value interface {
	Marshaler
	isValue()
}

// Byte is a signed 8-bit integer (wire tag [TagByte]).
type Byte int8

// Short is a signed 16-bit integer (wire tag [TagShort]).
type Short int16

// Int is a signed 32-bit integer (wire tag [TagInt]).
type Int int32

// Long is a signed 64-bit integer (wire tag [TagLong]).
type Long int64

// Float is a 32-bit IEEE-754 float (wire tag [TagFloat]).
type Float float32

// Double is a 64-bit IEEE-754 float (wire tag [TagDouble]).
type Double float64

// String is a UTF-8 string of at most 65535 bytes (wire tag
// [TagString]). The limit is enforced at encode time.
type String string

// ByteArray is a packed array of signed bytes (wire tag
// [TagByteArray]). It is a distinct type from a list of [Byte]: the
// two have different wire encodings and never convert implicitly.
type ByteArray []int8

// IntArray is a packed array of 32-bit integers (wire tag
// [TagIntArray]).
type IntArray []int32

// LongArray is a packed array of 64-bit integers (wire tag
// [TagLongArray]).
type LongArray []int64

func (Byte) isValue()      {}
func (Short) isValue()     {}
func (Int) isValue()       {}
func (Long) isValue()      {}
func (Float) isValue()     {}
func (Double) isValue()    {}
func (String) isValue()    {}
func (ByteArray) isValue() {}
func (IntArray) isValue()  {}
func (LongArray) isValue() {}
func (List) isValue()      {}
func (Compound) isValue()  {}

// Tag reports [TagByte].
func (Byte) Tag() Tag { return TagByte }

// Tag reports [TagShort].
func (Short) Tag() Tag { return TagShort }

// Tag reports [TagInt].
func (Int) Tag() Tag { return TagInt }

// Tag reports [TagLong].
func (Long) Tag() Tag { return TagLong }

// Tag reports [TagFloat].
func (Float) Tag() Tag { return TagFloat }

// Tag reports [TagDouble].
func (Double) Tag() Tag { return TagDouble }

// Tag reports [TagString].
func (String) Tag() Tag { return TagString }

// Tag reports [TagByteArray].
func (ByteArray) Tag() Tag { return TagByteArray }

// Tag reports [TagIntArray].
func (IntArray) Tag() Tag { return TagIntArray }

// Tag reports [TagLongArray].
func (LongArray) Tag() Tag { return TagLongArray }

// MarshalNBT writes the value's payload.
func (v Byte) MarshalNBT(e *Encoder) error { return e.EncodeByte(int8(v)) }

// MarshalNBT writes the value's payload.
func (v Short) MarshalNBT(e *Encoder) error { return e.EncodeShort(int16(v)) }

// MarshalNBT writes the value's payload.
func (v Int) MarshalNBT(e *Encoder) error { return e.EncodeInt(int32(v)) }

// MarshalNBT writes the value's payload.
func (v Long) MarshalNBT(e *Encoder) error { return e.EncodeLong(int64(v)) }

// MarshalNBT writes the value's payload.
func (v Float) MarshalNBT(e *Encoder) error { return e.EncodeFloat(float32(v)) }

// MarshalNBT writes the value's payload.
func (v Double) MarshalNBT(e *Encoder) error { return e.EncodeDouble(float64(v)) }

// MarshalNBT writes the value's payload.
func (v String) MarshalNBT(e *Encoder) error { return e.EncodeString(string(v)) }

// MarshalNBT writes the value's payload.
func (v ByteArray) MarshalNBT(e *Encoder) error { return e.EncodeByteArray([]int8(v)) }

// MarshalNBT writes the value's payload.
func (v IntArray) MarshalNBT(e *Encoder) error { return e.EncodeIntArray([]int32(v)) }

// MarshalNBT writes the value's payload.
func (v LongArray) MarshalNBT(e *Encoder) error { return e.EncodeLongArray([]int64(v)) }

// UnmarshalNBT decodes a payload of the value's kind in place.
func (v *Byte) UnmarshalNBT(tag Tag, d *Decoder) error {
	decoded, err := d.DecodeByte(tag)
	if err != nil {
		return err
	}
	*v = Byte(decoded)
	return nil
}

// UnmarshalNBT decodes a payload of the value's kind in place.
func (v *Short) UnmarshalNBT(tag Tag, d *Decoder) error {
	decoded, err := d.DecodeShort(tag)
	if err != nil {
		return err
	}
	*v = Short(decoded)
	return nil
}

// UnmarshalNBT decodes a payload of the value's kind in place.
func (v *Int) UnmarshalNBT(tag Tag, d *Decoder) error {
	decoded, err := d.DecodeInt(tag)
	if err != nil {
		return err
	}
	*v = Int(decoded)
	return nil
}

// UnmarshalNBT decodes a payload of the value's kind in place.
func (v *Long) UnmarshalNBT(tag Tag, d *Decoder) error {
	decoded, err := d.DecodeLong(tag)
	if err != nil {
		return err
	}
	*v = Long(decoded)
	return nil
}

// UnmarshalNBT decodes a payload of the value's kind in place.
func (v *Float) UnmarshalNBT(tag Tag, d *Decoder) error {
	decoded, err := d.DecodeFloat(tag)
	if err != nil {
		return err
	}
	*v = Float(decoded)
	return nil
}

// UnmarshalNBT decodes a payload of the value's kind in place.
func (v *Double) UnmarshalNBT(tag Tag, d *Decoder) error {
	decoded, err := d.DecodeDouble(tag)
	if err != nil {
		return err
	}
	*v = Double(decoded)
	return nil
}

// UnmarshalNBT decodes a payload of the value's kind in place.
func (v *String) UnmarshalNBT(tag Tag, d *Decoder) error {
	decoded, err := d.DecodeString(tag)
	if err != nil {
		return err
	}
	*v = String(decoded)
	return nil
}

// UnmarshalNBT decodes a payload of the value's kind in place.
func (v *ByteArray) UnmarshalNBT(tag Tag, d *Decoder) error {
	decoded, err := d.DecodeByteArray(tag)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// UnmarshalNBT decodes a payload of the value's kind in place.
func (v *IntArray) UnmarshalNBT(tag Tag, d *Decoder) error {
	decoded, err := d.DecodeIntArray(tag)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// UnmarshalNBT decodes a payload of the value's kind in place.
func (v *LongArray) UnmarshalNBT(tag Tag, d *Decoder) error {
	decoded, err := d.DecodeLongArray(tag)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// Equal reports whether two values are structurally identical: same
// kind, same contents, same order. There is no cross-kind coercion —
// Byte(1) is not equal to Short(1), and a list of ints is not equal
// to an int array with the same elements. Compound comparison is
// order-sensitive and list comparison includes the element tag, so
// Equal(a, b) implies a and b produce identical wire bytes. Floats
// compare by IEEE-754 equality: NaN is unequal to everything,
// including itself.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Tag() != b.Tag() {
		return false
	}
	switch av := a.(type) {
	case Byte:
		return av == b.(Byte)
	case Short:
		return av == b.(Short)
	case Int:
		return av == b.(Int)
	case Long:
		return av == b.(Long)
	case Float:
		return av == b.(Float)
	case Double:
		return av == b.(Double)
	case String:
		return av == b.(String)
	case ByteArray:
		return slices.Equal(av, b.(ByteArray))
	case IntArray:
		return slices.Equal(av, b.(IntArray))
	case LongArray:
		return slices.Equal(av, b.(LongArray))
	case List:
		bv := b.(List)
		if av.elem != bv.elem || len(av.items) != len(bv.items) {
			return false
		}
		for i := range av.items {
			if !Equal(av.items[i], bv.items[i]) {
				return false
			}
		}
		return true
	case Compound:
		bv := b.(Compound)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i].Key != bv[i].Key || !Equal(av[i].Value, bv[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
