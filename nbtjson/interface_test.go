// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package nbtjson

import (
	"errors"
	"reflect"
	"testing"

	"github.com/anvil-foundation/anvil/nbt"
)

func TestInterfaceShapes(t *testing.T) {
	t.Parallel()

	tree := nbt.Compound{
		{Key: "difficulty", Value: nbt.Byte(2)},
		{Key: "time", Value: nbt.Long(1234567890123)},
		{Key: "scale", Value: nbt.Double(0.5)},
		{Key: "name", Value: nbt.String("overworld")},
		{Key: "heights", Value: nbt.IntArray{60, 70}},
		{Key: "flags", Value: nbt.ByteArray{1, 0}},
		{Key: "banners", Value: nbt.ListOf(nbt.String("red"), nbt.String("blue"))},
		{Key: "spawn", Value: nbt.Compound{
			{Key: "x", Value: nbt.Int(-40)},
		}},
	}
	want := map[string]any{
		"difficulty": int8(2),
		"time":       int64(1234567890123),
		"scale":      float64(0.5),
		"name":       "overworld",
		"heights":    []int32{60, 70},
		"flags":      []int8{1, 0},
		"banners":    []any{"red", "blue"},
		"spawn":      map[string]any{"x": int32(-40)},
	}
	got, err := Interface(tree)
	if err != nil {
		t.Fatalf("Interface: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Interface: got %#v, want %#v", got, want)
	}
}

func TestInterfaceDuplicateKeys(t *testing.T) {
	t.Parallel()

	tree := nbt.Compound{
		{Key: "twin", Value: nbt.Int(1)},
		{Key: "twin", Value: nbt.Int(2)},
	}
	_, err := Interface(tree)
	var dupErr *nbt.DuplicateKeyError
	if !errors.As(err, &dupErr) {
		t.Fatalf("Interface: got %v, want DuplicateKeyError", err)
	}
}

func TestFromInterface(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input any
		want  nbt.Value
	}{
		{"bool", true, nbt.Byte(1)},
		{"int8", int8(-3), nbt.Byte(-3)},
		{"int16", int16(300), nbt.Short(300)},
		{"int32", int32(70000), nbt.Int(70000)},
		{"small int", 5, nbt.Int(5)},
		{"wide int", int64(3000000000), nbt.Long(3000000000)},
		{"narrow int64", int64(7), nbt.Long(7)},
		{"uint8 widens", uint8(200), nbt.Int(200)},
		{"float32", float32(1.5), nbt.Float(1.5)},
		{"float64", 0.25, nbt.Double(0.25)},
		{"string", "hello", nbt.String("hello")},
		{"raw bytes", []byte{0x01, 0xff}, nbt.ByteArray{1, -1}},
		{"int8 slice", []int8{1, -2}, nbt.ByteArray{1, -2}},
		{"int32 slice", []int32{3, 4}, nbt.IntArray{3, 4}},
		{"int64 slice", []int64{5}, nbt.LongArray{5}},
		{"empty any slice", []any{}, nbt.List{}},
		{"uniform any slice", []any{"a", "b"}, nbt.ListOf(nbt.String("a"), nbt.String("b"))},
		{"promoted any slice", []any{1, 0.5}, nbt.ListOf(nbt.Double(1), nbt.Double(0.5))},
		{"passthrough", nbt.Short(9), nbt.Short(9)},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := FromInterface(test.input)
			if err != nil {
				t.Fatalf("FromInterface(%#v): %v", test.input, err)
			}
			if !nbt.Equal(got, test.want) {
				t.Errorf("FromInterface(%#v): got %#v, want %#v", test.input, got, test.want)
			}
		})
	}
}

func TestFromInterfaceSortsMapKeys(t *testing.T) {
	t.Parallel()

	got, err := FromInterface(map[string]any{
		"zebra": 1,
		"apple": 2,
		"mango": 3,
	})
	if err != nil {
		t.Fatalf("FromInterface: %v", err)
	}
	want := nbt.Compound{
		{Key: "apple", Value: nbt.Int(2)},
		{Key: "mango", Value: nbt.Int(3)},
		{Key: "zebra", Value: nbt.Int(1)},
	}
	if !nbt.Equal(got, want) {
		t.Errorf("FromInterface: got %#v, want %#v", got, want)
	}
}

func TestFromInterfaceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input any
	}{
		{"nil", nil},
		{"uint64 overflow", uint64(1) << 63},
		{"non-string map key", map[any]any{42: "x"}},
		{"mixed slice", []any{1, "x"}},
		{"unsupported type", struct{}{}},
		{"channel", make(chan int)},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if _, err := FromInterface(test.input); err == nil {
				t.Errorf("FromInterface(%#v): expected error", test.input)
			}
		})
	}
}

func TestInterfaceRoundTrip(t *testing.T) {
	t.Parallel()

	// Keys already sorted so FromInterface reconstructs the same
	// entry order the map lost. Every scalar and array kind keeps its
	// native width through the bridge, so the trip is exact.
	tree := nbt.Compound{
		{Key: "alpha", Value: nbt.Byte(-1)},
		{Key: "bravo", Value: nbt.Short(300)},
		{Key: "delta", Value: nbt.Long(7)},
		{Key: "echo", Value: nbt.Float(1.5)},
		{Key: "golf", Value: nbt.Double(0.5)},
		{Key: "hotel", Value: nbt.IntArray{1, 2, 3}},
		{Key: "india", Value: nbt.ByteArray{4}},
		{Key: "juliet", Value: nbt.LongArray{5, 6}},
		{Key: "kilo", Value: nbt.ListOf(nbt.String("a"), nbt.String("b"))},
		{Key: "omega", Value: nbt.Compound{
			{Key: "inner", Value: nbt.String("x")},
		}},
	}
	plain, err := Interface(tree)
	if err != nil {
		t.Fatalf("Interface: %v", err)
	}
	got, err := FromInterface(plain)
	if err != nil {
		t.Fatalf("FromInterface: %v", err)
	}
	if !nbt.Equal(got, tree) {
		t.Errorf("round trip: got %#v, want %#v", got, tree)
	}
}
