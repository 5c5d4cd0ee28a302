// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package nbtfile

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the stream compression wrapped around a
// serialized tree. The values are the scheme bytes stored in region
// chunk headers — changing them breaks region-file compatibility.
type Compression uint8

const (
	// CompressionGzip wraps the tree in a gzip stream. The classic
	// scheme for standalone files (level.dat and friends).
	CompressionGzip Compression = 1

	// CompressionZlib wraps the tree in a zlib stream. The usual
	// scheme inside region files.
	CompressionZlib Compression = 2

	// CompressionNone stores the tree without compression.
	CompressionNone Compression = 3

	// CompressionLZ4 wraps the tree in an LZ4 frame.
	CompressionLZ4 Compression = 4
)

// Valid reports whether the value is a known compression scheme.
func (c Compression) Valid() bool {
	return c >= CompressionGzip && c <= CompressionLZ4
}

// String returns the human-readable name of a compression scheme.
func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZlib:
		return "zlib"
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a compression scheme from its string
// representation.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "gzip":
		return CompressionGzip, nil
	case "zlib":
		return CompressionZlib, nil
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("nbtfile: unknown compression scheme %q", name)
	}
}

// Detect sniffs the compression scheme from the first bytes of data.
// Gzip and LZ4 carry fixed magic numbers; zlib is recognized by its
// method byte plus a valid header checksum. Anything else is taken
// as an uncompressed tree.
func Detect(data []byte) Compression {
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		return CompressionGzip
	}
	if len(data) >= 4 && data[0] == 0x04 && data[1] == 0x22 && data[2] == 0x4d && data[3] == 0x18 {
		return CompressionLZ4
	}
	// A zlib header is two bytes whose big-endian value is a
	// multiple of 31, with method byte 0x78 (deflate, 32 KiB
	// window).
	if len(data) >= 2 && data[0] == 0x78 && (uint16(data[0])<<8|uint16(data[1]))%31 == 0 {
		return CompressionZlib
	}
	return CompressionNone
}

// Compress wraps data in the given compression stream. For
// [CompressionNone] the input is returned unchanged (no copy).
func Compress(data []byte, c Compression) ([]byte, error) {
	if c == CompressionNone {
		return data, nil
	}
	var buffer bytes.Buffer
	writer, err := compressor(&buffer, c)
	if err != nil {
		return nil, err
	}
	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("nbtfile: compress %s: %w", c, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("nbtfile: close %s stream: %w", c, err)
	}
	return buffer.Bytes(), nil
}

// Decompress unwraps data compressed with the given scheme. For
// [CompressionNone] the input is returned unchanged (no copy).
func Decompress(data []byte, c Compression) ([]byte, error) {
	if c == CompressionNone {
		return data, nil
	}
	reader, err := decompressor(bytes.NewReader(data), c)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	out, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("nbtfile: decompress %s: %w", c, err)
	}
	return out, nil
}

// compressor wraps w in the requested compression stream. The caller
// must close the result to flush stream trailers before using the
// underlying writer's contents.
func compressor(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	case CompressionZlib:
		return zlib.NewWriter(w), nil
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("nbtfile: unsupported compression scheme %d", uint8(c))
	}
}

// decompressor wraps r in the matching decompression stream.
func decompressor(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionGzip:
		reader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("nbtfile: open gzip stream: %w", err)
		}
		return reader, nil
	case CompressionZlib:
		reader, err := zlib.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("nbtfile: open zlib stream: %w", err)
		}
		return reader, nil
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("nbtfile: unsupported compression scheme %d", uint8(c))
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
