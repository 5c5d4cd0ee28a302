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

// encodeAndDecode runs encodeTree and decodes the binary result back
// into a tree for inspection.
func encodeAndDecode(t *testing.T, data []byte, input, scheme, rootName string) (nbt.Compound, string) {
	t.Helper()
	var output bytes.Buffer
	if err := encodeTree(data, &output, input, scheme, rootName); err != nil {
		t.Fatalf("encodeTree: %v", err)
	}
	root, name, err := nbtfile.Decode(output.Bytes())
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	return root, name
}

func TestEncodeTree_JSON(t *testing.T) {
	root, name := encodeAndDecode(t, []byte(`{"count": 42, "name": "chunk"}`), "json", "none", "")

	want := nbt.Compound{
		{Key: "count", Value: nbt.Int(42)},
		{Key: "name", Value: nbt.String("chunk")},
	}
	if !nbt.Equal(root, want) {
		t.Errorf("tree = %#v, want %#v", root, want)
	}
	if name != "" {
		t.Errorf("root name = %q, want empty", name)
	}
}

func TestEncodeTree_RootNameAndCompression(t *testing.T) {
	input := []byte(`{"level": 7}`)

	var output bytes.Buffer
	if err := encodeTree(input, &output, "json", "gzip", "Level"); err != nil {
		t.Fatalf("encodeTree: %v", err)
	}

	if scheme := nbtfile.Detect(output.Bytes()); scheme != nbtfile.CompressionGzip {
		t.Errorf("Detect = %v, want gzip", scheme)
	}
	_, name, err := nbtfile.Decode(output.Bytes())
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if name != "Level" {
		t.Errorf("root name = %q, want %q", name, "Level")
	}
}

func TestEncodeTree_JSONComments(t *testing.T) {
	input := []byte(`{
		// the player's display name
		"name": "Bananrama",
		/* trailing commas are fine too */
		"level": 7,
	}`)

	root, _ := encodeAndDecode(t, input, "json", "none", "")
	want := nbt.Compound{
		{Key: "name", Value: nbt.String("Bananrama")},
		{Key: "level", Value: nbt.Int(7)},
	}
	if !nbt.Equal(root, want) {
		t.Errorf("tree = %#v, want %#v", root, want)
	}
}

func TestEncodeTree_YAML(t *testing.T) {
	input := []byte(`zebra: 1
apple: 2147483648
ratio: 1.5
happy: true
name: Bananrama
data: !!binary AQID
`)

	root, _ := encodeAndDecode(t, input, "yaml", "none", "")
	want := nbt.Compound{
		{Key: "zebra", Value: nbt.Int(1)},
		{Key: "apple", Value: nbt.Long(2147483648)},
		{Key: "ratio", Value: nbt.Double(1.5)},
		{Key: "happy", Value: nbt.Byte(1)},
		{Key: "name", Value: nbt.String("Bananrama")},
		{Key: "data", Value: nbt.ByteArray{1, 2, 3}},
	}
	if !nbt.Equal(root, want) {
		t.Errorf("tree = %#v, want %#v", root, want)
	}
}

func TestEncodeTree_CBOR(t *testing.T) {
	cborData, err := encMode.Marshal(map[string]any{
		"count": 42,
		"big":   int64(1) << 40,
		"neg":   -5,
		"raw":   []byte{1, 2},
		"ratio": 0.5,
		"name":  "chunk",
	})
	if err != nil {
		t.Fatalf("marshal CBOR fixture: %v", err)
	}

	root, _ := encodeAndDecode(t, cborData, "cbor", "none", "")

	// FromInterface sorts map keys, so the compound is alphabetical.
	want := nbt.Compound{
		{Key: "big", Value: nbt.Long(1 << 40)},
		{Key: "count", Value: nbt.Int(42)},
		{Key: "name", Value: nbt.String("chunk")},
		{Key: "neg", Value: nbt.Int(-5)},
		{Key: "ratio", Value: nbt.Double(0.5)},
		{Key: "raw", Value: nbt.ByteArray{1, 2}},
	}
	if !nbt.Equal(root, want) {
		t.Errorf("tree = %#v, want %#v", root, want)
	}
}

func TestConvertIntegers(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  any
	}{
		{"small positive", uint64(42), int32(42)},
		{"int32 boundary", uint64(math.MaxInt32), int32(math.MaxInt32)},
		{"past int32", uint64(math.MaxInt32 + 1), int64(math.MaxInt32 + 1)},
		{"max int64", uint64(math.MaxInt64), int64(math.MaxInt64)},
		{"past int64 untouched", uint64(math.MaxInt64) + 1, uint64(math.MaxInt64) + 1},
		{"small negative", int64(-5), int32(-5)},
		{"min int32", int64(math.MinInt32), int32(math.MinInt32)},
		{"past min int32", int64(math.MinInt32 - 1), int64(math.MinInt32 - 1)},
		{"float passthrough", 0.5, 0.5},
		{"string passthrough", "hello", "hello"},
		{"nested map", map[string]any{"n": uint64(7)}, map[string]any{"n": int32(7)}},
		{"nested array", []any{uint64(1), int64(-9)}, []any{int32(1), int32(-9)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertIntegers(tt.input)
			switch want := tt.want.(type) {
			case map[string]any:
				gotMap, ok := got.(map[string]any)
				if !ok {
					t.Fatalf("got %T, want map", got)
				}
				for key, element := range want {
					if gotMap[key] != element {
						t.Errorf("key %q = %v (%T), want %v (%T)",
							key, gotMap[key], gotMap[key], element, element)
					}
				}
			case []any:
				gotSlice, ok := got.([]any)
				if !ok {
					t.Fatalf("got %T, want slice", got)
				}
				for i, element := range want {
					if gotSlice[i] != element {
						t.Errorf("index %d = %v (%T), want %v (%T)",
							i, gotSlice[i], gotSlice[i], element, element)
					}
				}
			default:
				if got != tt.want {
					t.Errorf("convertIntegers(%v) = %v (%T), want %v (%T)",
						tt.input, got, got, tt.want, tt.want)
				}
			}
		})
	}
}

func TestEncodeTree_RootMustBeCompound(t *testing.T) {
	var output bytes.Buffer
	err := encodeTree([]byte(`[1, 2, 3]`), &output, "json", "none", "")
	if err == nil {
		t.Fatal("expected error for non-object root")
	}
	if !strings.Contains(err.Error(), "root must be an object") {
		t.Errorf("error = %q, want to contain \"root must be an object\"", err.Error())
	}
}

func TestEncodeTree_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		input   string
		scheme  string
		wantErr string
	}{
		{
			name:    "empty input",
			data:    "",
			input:   "json",
			scheme:  "none",
			wantErr: "empty input",
		},
		{
			name:    "unknown input format",
			data:    `{}`,
			input:   "toml",
			scheme:  "none",
			wantErr: "unknown input format",
		},
		{
			name:    "unknown compression",
			data:    `{}`,
			input:   "json",
			scheme:  "zstd",
			wantErr: "unknown compression scheme",
		},
		{
			name:   "invalid JSON",
			data:   "not json at all",
			input:  "json",
			scheme: "none",
		},
		{
			name:    "null value",
			data:    `{"gone": null}`,
			input:   "json",
			scheme:  "none",
			wantErr: "null",
		},
		{
			name:    "yaml null value",
			data:    "gone: ~\n",
			input:   "yaml",
			scheme:  "none",
			wantErr: "null",
		},
		{
			name:    "yaml integer key",
			data:    "1: one\n",
			input:   "yaml",
			scheme:  "none",
			wantErr: "keys must be strings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			err := encodeTree([]byte(tt.data), &output, tt.input, tt.scheme, "")
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestEncodeTree_RoundTripThroughDecode(t *testing.T) {
	original := `{"name":"Bananrama","level":7,"scores":[3,1,2]}`

	var binary bytes.Buffer
	if err := encodeTree([]byte(original), &binary, "json", "zlib", ""); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var text bytes.Buffer
	if err := decodeTree(binary.Bytes(), &text, "json", true); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got := strings.TrimSpace(text.String()); got != original {
		t.Errorf("round trip = %s, want %s", got, original)
	}
}
