// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/anvil-foundation/anvil/nbt"
	"github.com/anvil-foundation/anvil/nbtfile"
)

func TestDiagTree(t *testing.T) {
	root := nbt.Compound{
		{Key: "id", Value: nbt.Int(42)},
		{Key: "tiny", Value: nbt.Byte(-3)},
		{Key: "name", Value: nbt.String("Bananrama")},
		{Key: "pos", Value: nbt.ListOf(nbt.Double(1.5), nbt.Double(-2.5))},
		{Key: "data", Value: nbt.ByteArray{1, -2}},
		{Key: "my key", Value: nbt.Short(260)},
	}
	data, err := nbtfile.Encode(root, "Level", nbtfile.CompressionGzip)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	var output bytes.Buffer
	if err := diagTree(data, &output); err != nil {
		t.Fatalf("diagTree: %v", err)
	}

	want := "compression: gzip\n" +
		"root: \"Level\"\n" +
		`{id: 42, tiny: -3b, name: "Bananrama", pos: [1.5d, -2.5d], ` +
		`data: [B; 1b, -2b], "my key": 260s}` + "\n"
	if got := output.String(); got != want {
		t.Errorf("diagTree output:\n got %q\nwant %q", got, want)
	}
}

func TestDiagTree_UncompressedUnnamed(t *testing.T) {
	root := nbt.Compound{{Key: "level", Value: nbt.Byte(7)}}
	data, err := nbtfile.Encode(root, "", nbtfile.CompressionNone)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	var output bytes.Buffer
	if err := diagTree(data, &output); err != nil {
		t.Fatalf("diagTree: %v", err)
	}

	lines := strings.Split(output.String(), "\n")
	if lines[0] != "compression: none" {
		t.Errorf("line 0 = %q, want %q", lines[0], "compression: none")
	}
	if lines[1] != `root: ""` {
		t.Errorf("line 1 = %q, want %q", lines[1], `root: ""`)
	}
	if lines[2] != "{level: 7b}" {
		t.Errorf("line 2 = %q, want %q", lines[2], "{level: 7b}")
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name  string
		value nbt.Value
		want  string
	}{
		{"byte", nbt.Byte(1), "1b"},
		{"negative byte", nbt.Byte(-128), "-128b"},
		{"short", nbt.Short(260), "260s"},
		{"int", nbt.Int(42), "42"},
		{"long", nbt.Long(1 << 40), "1099511627776L"},
		{"float", nbt.Float(3), "3f"},
		{"float fraction", nbt.Float(1.5), "1.5f"},
		{"double", nbt.Double(-2.5), "-2.5d"},
		{"double nan", nbt.Double(math.NaN()), "NaNd"},
		{"float positive inf", nbt.Float(float32(math.Inf(1))), "+Inff"},
		{"double negative inf", nbt.Double(math.Inf(-1)), "-Infd"},
		{"string", nbt.String("Bananrama"), `"Bananrama"`},
		{"string with quote", nbt.String(`say "hi"`), `"say \"hi\""`},
		{"empty string", nbt.String(""), `""`},
		{"byte array", nbt.ByteArray{1, -2, 3}, "[B; 1b, -2b, 3b]"},
		{"empty byte array", nbt.ByteArray{}, "[B;]"},
		{"int array", nbt.IntArray{1, 2}, "[I; 1, 2]"},
		{"long array", nbt.LongArray{-9}, "[L; -9L]"},
		{"empty list", nbt.List{}, "[]"},
		{"list of strings", nbt.ListOf(nbt.String("a"), nbt.String("b")), `["a", "b"]`},
		{"empty compound", nbt.Compound{}, "{}"},
		{
			"nested compound",
			nbt.Compound{
				{Key: "inner", Value: nbt.Compound{{Key: "x", Value: nbt.Int(1)}}},
			},
			"{inner: {x: 1}}",
		},
		{
			"quoted key",
			nbt.Compound{{Key: "two words", Value: nbt.Int(1)}},
			`{"two words": 1}`,
		},
		{
			"bare key punctuation",
			nbt.Compound{{Key: "a.b-c_d+e", Value: nbt.Int(1)}},
			"{a.b-c_d+e: 1}",
		},
		{
			"empty key quoted",
			nbt.Compound{{Key: "", Value: nbt.Int(1)}},
			`{"": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stringify(nil, tt.value)
			if err != nil {
				t.Fatalf("stringify: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("stringify = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStringify_Errors(t *testing.T) {
	tests := []struct {
		name    string
		value   nbt.Value
		wantErr string
	}{
		{
			name:    "nil compound entry",
			value:   nbt.Compound{{Key: "gone", Value: nil}},
			wantErr: "nil value",
		},
		{
			name:    "nil value",
			value:   nil,
			wantErr: "unsupported value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := stringify(nil, tt.value); err == nil {
				t.Fatal("expected error")
			} else if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDiagTree_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty input", nil},
		{"invalid root tag", []byte{0xff, 0x00, 0x00}},
		{"truncated", []byte{0x0a, 0x00, 0x00, 0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			if err := diagTree(tt.data, &output); err == nil {
				t.Error("expected error")
			}
		})
	}
}
