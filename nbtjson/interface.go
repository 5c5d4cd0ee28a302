// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package nbtjson

import (
	"fmt"
	"math"
	"slices"

	"github.com/anvil-foundation/anvil/nbt"
)

// Interface converts a tree into the plain Go shapes callers feed to
// template engines and generic serializers: compounds become
// map[string]any, lists become []any, and scalars keep their native
// widths. Compound entry order does not survive the map.
func Interface(v nbt.Value) (any, error) {
	switch value := v.(type) {
	case nbt.Byte:
		return int8(value), nil
	case nbt.Short:
		return int16(value), nil
	case nbt.Int:
		return int32(value), nil
	case nbt.Long:
		return int64(value), nil
	case nbt.Float:
		return float32(value), nil
	case nbt.Double:
		return float64(value), nil
	case nbt.String:
		return string(value), nil
	case nbt.ByteArray:
		return []int8(value), nil
	case nbt.IntArray:
		return []int32(value), nil
	case nbt.LongArray:
		return []int64(value), nil
	case nbt.List:
		items := make([]any, value.Len())
		for i := range items {
			element, err := Interface(value.Index(i))
			if err != nil {
				return nil, err
			}
			items[i] = element
		}
		return items, nil
	case nbt.Compound:
		object := make(map[string]any, len(value))
		for _, entry := range value {
			if _, dup := object[entry.Key]; dup {
				return nil, &nbt.DuplicateKeyError{Key: entry.Key}
			}
			if entry.Value == nil {
				return nil, fmt.Errorf("nbtjson: compound entry %q has nil value", entry.Key)
			}
			element, err := Interface(entry.Value)
			if err != nil {
				return nil, fmt.Errorf("nbtjson: key %q: %w", entry.Key, err)
			}
			object[entry.Key] = element
		}
		return object, nil
	default:
		return nil, fmt.Errorf("nbtjson: unsupported value %T", v)
	}
}

// FromInterface converts plain Go values into a tree. Signed sized
// integers and element-typed slices keep their kinds; unsigned and
// untyped ints become ints or longs by width; map keys are sorted so
// the result is deterministic. Values that are already [nbt.Value]
// pass through unchanged.
func FromInterface(v any) (nbt.Value, error) {
	switch value := v.(type) {
	case nbt.Value:
		return value, nil
	case nil:
		return nil, fmt.Errorf("nbtjson: nil has no tagged equivalent")
	case bool:
		if value {
			return nbt.Byte(1), nil
		}
		return nbt.Byte(0), nil
	case int8:
		return nbt.Byte(value), nil
	case int16:
		return nbt.Short(value), nil
	case int32:
		return nbt.Int(value), nil
	case int64:
		return nbt.Long(value), nil
	case int:
		return fitInteger(int64(value)), nil
	case uint8:
		return fitInteger(int64(value)), nil
	case uint16:
		return fitInteger(int64(value)), nil
	case uint32:
		return fitInteger(int64(value)), nil
	case uint:
		if uint64(value) > math.MaxInt64 {
			return nil, fmt.Errorf("nbtjson: %d overflows the long range", value)
		}
		return fitInteger(int64(value)), nil
	case uint64:
		if value > math.MaxInt64 {
			return nil, fmt.Errorf("nbtjson: %d overflows the long range", value)
		}
		return fitInteger(int64(value)), nil
	case float32:
		return nbt.Float(value), nil
	case float64:
		return nbt.Double(value), nil
	case string:
		return nbt.String(value), nil
	case []byte:
		array := make(nbt.ByteArray, len(value))
		for i, element := range value {
			array[i] = int8(element)
		}
		return array, nil
	case []int8:
		return nbt.ByteArray(slices.Clone(value)), nil
	case []int32:
		return nbt.IntArray(slices.Clone(value)), nil
	case []int64:
		return nbt.LongArray(slices.Clone(value)), nil
	case []any:
		items := make([]nbt.Value, len(value))
		for i, element := range value {
			item, err := FromInterface(element)
			if err != nil {
				return nil, fmt.Errorf("nbtjson: index %d: %w", i, err)
			}
			items[i] = item
		}
		return buildList(items)
	case map[string]any:
		keys := make([]string, 0, len(value))
		for key := range value {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		compound := make(nbt.Compound, 0, len(keys))
		for _, key := range keys {
			entry, err := FromInterface(value[key])
			if err != nil {
				return nil, fmt.Errorf("nbtjson: key %q: %w", key, err)
			}
			compound = append(compound, nbt.Entry{Key: key, Value: entry})
		}
		return compound, nil
	case map[any]any:
		object := make(map[string]any, len(value))
		for key, element := range value {
			text, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("nbtjson: map key %v is %T, not a string", key, key)
			}
			object[text] = element
		}
		return FromInterface(object)
	default:
		return nil, fmt.Errorf("nbtjson: unsupported type %T", v)
	}
}

// fitInteger picks int or long by whether the value fits in 32 bits.
func fitInteger(value int64) nbt.Value {
	if value >= math.MinInt32 && value <= math.MaxInt32 {
		return nbt.Int(int32(value))
	}
	return nbt.Long(value)
}
