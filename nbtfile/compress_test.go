// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package nbtfile

import (
	"bytes"
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want Compression
	}{
		{"gzip magic", []byte{0x1f, 0x8b, 0x08, 0x00}, CompressionGzip},
		{"lz4 frame magic", []byte{0x04, 0x22, 0x4d, 0x18, 0x00}, CompressionLZ4},
		{"zlib default level", []byte{0x78, 0x9c}, CompressionZlib},
		{"zlib best compression", []byte{0x78, 0xda}, CompressionZlib},
		{"zlib fastest", []byte{0x78, 0x01}, CompressionZlib},
		{"zlib bad header checksum", []byte{0x78, 0x00}, CompressionNone},
		{"bare tree", []byte{0x0a, 0x00, 0x00, 0x00}, CompressionNone},
		{"empty", nil, CompressionNone},
		{"single byte", []byte{0x1f}, CompressionNone},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if got := Detect(test.data); got != test.want {
				t.Errorf("Detect(% x): got %s, want %s", test.data, got, test.want)
			}
		})
	}
}

func TestCompressionNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scheme Compression
		name   string
	}{
		{CompressionGzip, "gzip"},
		{CompressionZlib, "zlib"},
		{CompressionNone, "none"},
		{CompressionLZ4, "lz4"},
	}
	for _, test := range tests {
		if got := test.scheme.String(); got != test.name {
			t.Errorf("String(%d): got %q, want %q", uint8(test.scheme), got, test.name)
		}
		parsed, err := ParseCompression(test.name)
		if err != nil {
			t.Errorf("ParseCompression(%q): %v", test.name, err)
		} else if parsed != test.scheme {
			t.Errorf("ParseCompression(%q): got %d, want %d", test.name, uint8(parsed), uint8(test.scheme))
		}
		if !test.scheme.Valid() {
			t.Errorf("Valid(%s): got false, want true", test.name)
		}
	}

	if _, err := ParseCompression("zstd"); err == nil {
		t.Error("ParseCompression(zstd): expected error")
	}
	if got := Compression(9).String(); got != "unknown(9)" {
		t.Errorf("String(9): got %q, want %q", got, "unknown(9)")
	}
	if Compression(0).Valid() || Compression(5).Valid() {
		t.Error("Valid: out-of-range schemes reported valid")
	}
}

func TestCompressDecompress(t *testing.T) {
	t.Parallel()

	payload := []byte(strings.Repeat("chunk data with some repetition ", 64))
	for _, scheme := range []Compression{
		CompressionGzip,
		CompressionZlib,
		CompressionNone,
		CompressionLZ4,
	} {
		scheme := scheme
		t.Run(scheme.String(), func(t *testing.T) {
			t.Parallel()

			compressed, err := Compress(payload, scheme)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if scheme != CompressionNone && len(compressed) >= len(payload) {
				t.Errorf("Compress: %d bytes not smaller than input %d", len(compressed), len(payload))
			}
			out, err := Decompress(compressed, scheme)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(out, payload) {
				t.Errorf("round trip: got %d bytes, want %d", len(out), len(payload))
			}
		})
	}

	if _, err := Decompress([]byte{0x00}, Compression(9)); err == nil {
		t.Error("Decompress: expected error for unknown scheme")
	}
}
