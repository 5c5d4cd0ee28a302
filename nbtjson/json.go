// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package nbtjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/anvil-foundation/anvil/nbt"
)

// Marshal renders a tree as compact JSON, preserving compound entry
// order. Non-finite floats and doubles have no JSON representation
// and are rejected.
func Marshal(v nbt.Value) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("nbtjson: nil value")
	}
	var buffer bytes.Buffer
	if err := appendValue(&buffer, v); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// MarshalIndent renders a tree as indented JSON, preserving compound
// entry order.
func MarshalIndent(v nbt.Value, prefix, indent string) ([]byte, error) {
	compact, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	var buffer bytes.Buffer
	if err := json.Indent(&buffer, compact, prefix, indent); err != nil {
		return nil, fmt.Errorf("nbtjson: indent: %w", err)
	}
	return buffer.Bytes(), nil
}

func appendValue(buffer *bytes.Buffer, v nbt.Value) error {
	switch value := v.(type) {
	case nbt.Byte:
		buffer.WriteString(strconv.FormatInt(int64(value), 10))
	case nbt.Short:
		buffer.WriteString(strconv.FormatInt(int64(value), 10))
	case nbt.Int:
		buffer.WriteString(strconv.FormatInt(int64(value), 10))
	case nbt.Long:
		buffer.WriteString(strconv.FormatInt(int64(value), 10))
	case nbt.Float:
		return appendFloat(buffer, float64(value), 32)
	case nbt.Double:
		return appendFloat(buffer, float64(value), 64)
	case nbt.String:
		return appendString(buffer, string(value))
	case nbt.ByteArray:
		buffer.WriteByte('[')
		for i, element := range value {
			if i > 0 {
				buffer.WriteByte(',')
			}
			buffer.WriteString(strconv.FormatInt(int64(element), 10))
		}
		buffer.WriteByte(']')
	case nbt.IntArray:
		buffer.WriteByte('[')
		for i, element := range value {
			if i > 0 {
				buffer.WriteByte(',')
			}
			buffer.WriteString(strconv.FormatInt(int64(element), 10))
		}
		buffer.WriteByte(']')
	case nbt.LongArray:
		buffer.WriteByte('[')
		for i, element := range value {
			if i > 0 {
				buffer.WriteByte(',')
			}
			buffer.WriteString(strconv.FormatInt(element, 10))
		}
		buffer.WriteByte(']')
	case nbt.List:
		buffer.WriteByte('[')
		for i := 0; i < value.Len(); i++ {
			if i > 0 {
				buffer.WriteByte(',')
			}
			if err := appendValue(buffer, value.Index(i)); err != nil {
				return err
			}
		}
		buffer.WriteByte(']')
	case nbt.Compound:
		var seen map[string]struct{}
		if len(value) > 1 {
			seen = make(map[string]struct{}, len(value))
		}
		buffer.WriteByte('{')
		for i, entry := range value {
			if seen != nil {
				if _, dup := seen[entry.Key]; dup {
					return &nbt.DuplicateKeyError{Key: entry.Key}
				}
				seen[entry.Key] = struct{}{}
			}
			if entry.Value == nil {
				return fmt.Errorf("nbtjson: compound entry %q has nil value", entry.Key)
			}
			if i > 0 {
				buffer.WriteByte(',')
			}
			if err := appendString(buffer, entry.Key); err != nil {
				return err
			}
			buffer.WriteByte(':')
			if err := appendValue(buffer, entry.Value); err != nil {
				return err
			}
		}
		buffer.WriteByte('}')
	default:
		return fmt.Errorf("nbtjson: unsupported value %T", v)
	}
	return nil
}

// appendFloat writes a finite float. Integral values get a trailing
// ".0" so the text parses back as a double rather than an integer.
func appendFloat(buffer *bytes.Buffer, value float64, bits int) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("nbtjson: non-finite number %v has no JSON representation", value)
	}
	text := strconv.FormatFloat(value, 'g', -1, bits)
	buffer.WriteString(text)
	if !strings.ContainsAny(text, ".eE") {
		buffer.WriteString(".0")
	}
	return nil
}

func appendString(buffer *bytes.Buffer, s string) error {
	encoded, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("nbtjson: encode string: %w", err)
	}
	buffer.Write(encoded)
	return nil
}

// Unmarshal parses a single JSON value into a tree. Object member
// order becomes compound entry order; a repeated member is a
// [nbt.DuplicateKeyError]. Anything after the value other than
// whitespace is an error.
func Unmarshal(data []byte) (nbt.Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	value, err := parseValue(decoder)
	if err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("nbtjson: trailing data after value")
	}
	return value, nil
}

func parseValue(decoder *json.Decoder) (nbt.Value, error) {
	token, err := nextToken(decoder)
	if err != nil {
		return nil, err
	}
	switch value := token.(type) {
	case json.Delim:
		switch value {
		case '{':
			return parseCompound(decoder)
		case '[':
			return parseList(decoder)
		default:
			return nil, fmt.Errorf("nbtjson: unexpected %q", value.String())
		}
	case string:
		return nbt.String(value), nil
	case bool:
		if value {
			return nbt.Byte(1), nil
		}
		return nbt.Byte(0), nil
	case json.Number:
		return parseNumber(value)
	case nil:
		return nil, fmt.Errorf("nbtjson: null has no tagged equivalent")
	default:
		return nil, fmt.Errorf("nbtjson: unsupported token %T", token)
	}
}

// parseNumber assigns the narrowest reasonable kind: integer
// literals become ints when they fit in 32 bits and longs otherwise;
// a fraction or exponent means double. Integer literals too large
// for 64 bits fall back to double as well.
func parseNumber(number json.Number) (nbt.Value, error) {
	text := string(number)
	if !strings.ContainsAny(text, ".eE") {
		if integer, err := strconv.ParseInt(text, 10, 64); err == nil {
			if integer >= math.MinInt32 && integer <= math.MaxInt32 {
				return nbt.Int(int32(integer)), nil
			}
			return nbt.Long(integer), nil
		}
	}
	float, err := number.Float64()
	if err != nil {
		return nil, fmt.Errorf("nbtjson: number %q: %w", text, err)
	}
	return nbt.Double(float), nil
}

func parseCompound(decoder *json.Decoder) (nbt.Value, error) {
	compound := nbt.Compound{}
	var seen map[string]struct{}
	for decoder.More() {
		token, err := nextToken(decoder)
		if err != nil {
			return nil, err
		}
		key, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("nbtjson: object key is %T, not a string", token)
		}
		if seen == nil {
			seen = make(map[string]struct{})
		}
		if _, dup := seen[key]; dup {
			return nil, &nbt.DuplicateKeyError{Key: key}
		}
		seen[key] = struct{}{}
		value, err := parseValue(decoder)
		if err != nil {
			return nil, fmt.Errorf("nbtjson: key %q: %w", key, err)
		}
		compound = append(compound, nbt.Entry{Key: key, Value: value})
	}
	if _, err := nextToken(decoder); err != nil {
		return nil, err
	}
	return compound, nil
}

func parseList(decoder *json.Decoder) (nbt.Value, error) {
	var items []nbt.Value
	for decoder.More() {
		value, err := parseValue(decoder)
		if err != nil {
			return nil, err
		}
		items = append(items, value)
	}
	if _, err := nextToken(decoder); err != nil {
		return nil, err
	}
	return buildList(items)
}

// buildList assembles parsed array elements into a homogeneous list.
// Elements of one kind pass through; mixed numerics are promoted to
// the widest kind present; anything else mixed is an error.
func buildList(items []nbt.Value) (nbt.Value, error) {
	if len(items) == 0 {
		return nbt.List{}, nil
	}
	first := items[0].Tag()
	uniform := true
	allNumeric := true
	highest := 0
	for _, item := range items {
		tag := item.Tag()
		if tag != first {
			uniform = false
		}
		rank := numericRank(tag)
		if rank == 0 {
			allNumeric = false
		} else if rank > highest {
			highest = rank
		}
	}
	if uniform {
		return nbt.NewList(first, items...)
	}
	if !allNumeric {
		return nil, fmt.Errorf("nbtjson: array mixes incompatible kinds")
	}
	target := rankTag(highest)
	promoted := make([]nbt.Value, len(items))
	for i, item := range items {
		promoted[i] = promoteNumeric(item, target)
	}
	return nbt.NewList(target, promoted...)
}

// numericRank orders the numeric kinds for promotion. Non-numeric
// kinds rank zero.
func numericRank(tag nbt.Tag) int {
	switch tag {
	case nbt.TagByte:
		return 1
	case nbt.TagShort:
		return 2
	case nbt.TagInt:
		return 3
	case nbt.TagLong:
		return 4
	case nbt.TagFloat:
		return 5
	case nbt.TagDouble:
		return 6
	default:
		return 0
	}
}

func rankTag(rank int) nbt.Tag {
	switch rank {
	case 1:
		return nbt.TagByte
	case 2:
		return nbt.TagShort
	case 3:
		return nbt.TagInt
	case 4:
		return nbt.TagLong
	case 5:
		return nbt.TagFloat
	default:
		return nbt.TagDouble
	}
}

func promoteNumeric(v nbt.Value, target nbt.Tag) nbt.Value {
	var whole int64
	var real float64
	isFloat := false
	switch value := v.(type) {
	case nbt.Byte:
		whole = int64(value)
	case nbt.Short:
		whole = int64(value)
	case nbt.Int:
		whole = int64(value)
	case nbt.Long:
		whole = int64(value)
	case nbt.Float:
		real = float64(value)
		isFloat = true
	case nbt.Double:
		real = float64(value)
		isFloat = true
	}
	if !isFloat {
		real = float64(whole)
	}
	switch target {
	case nbt.TagShort:
		return nbt.Short(whole)
	case nbt.TagInt:
		return nbt.Int(whole)
	case nbt.TagLong:
		return nbt.Long(whole)
	case nbt.TagFloat:
		return nbt.Float(real)
	case nbt.TagDouble:
		return nbt.Double(real)
	default:
		return v
	}
}

func nextToken(decoder *json.Decoder) (json.Token, error) {
	token, err := decoder.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("nbtjson: parse: %w", err)
	}
	return token, nil
}
