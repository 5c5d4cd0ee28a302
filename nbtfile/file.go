// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

// Package nbtfile reads and writes whole serialized trees wrapped in
// the compression schemes the on-disk formats use. The codec itself
// lives in [github.com/anvil-foundation/anvil/nbt]; this package adds
// the gzip, zlib and LZ4 framing around it plus scheme detection for
// files of unknown provenance.
package nbtfile

import (
	"bytes"
	"fmt"
	"os"

	"github.com/anvil-foundation/anvil/nbt"
)

// Encode serializes a named root compound and wraps it in the given
// compression scheme.
func Encode(root nbt.Compound, name string, c Compression) ([]byte, error) {
	var buffer bytes.Buffer
	writer, err := compressor(&buffer, c)
	if err != nil {
		return nil, err
	}
	if err := nbt.NewEncoder(writer).Encode(root, name); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("nbtfile: close %s stream: %w", c, err)
	}
	return buffer.Bytes(), nil
}

// Decode sniffs the compression scheme, unwraps it, and decodes the
// tree inside. It returns the root compound and its name.
func Decode(data []byte) (nbt.Compound, string, error) {
	var root nbt.Compound
	name, err := DecodeInto(data, &root)
	if err != nil {
		return nil, "", err
	}
	return root, name, nil
}

// DecodeInto is [Decode] for typed targets: the root compound is fed
// to target's UnmarshalNBT instead of being built as a tree.
func DecodeInto(data []byte, target nbt.Unmarshaler) (string, error) {
	reader, err := decompressor(bytes.NewReader(data), Detect(data))
	if err != nil {
		return "", err
	}
	defer reader.Close()
	name, err := nbt.NewDecoder(reader).Decode(target)
	if err != nil {
		return "", err
	}
	return name, nil
}

// ReadFile reads and decodes the tree stored at path, sniffing the
// compression scheme from the file contents.
func ReadFile(path string) (nbt.Compound, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("nbtfile: %w", err)
	}
	return Decode(data)
}

// WriteFile encodes the tree and writes it to path, creating or
// truncating the file.
func WriteFile(path string, root nbt.Compound, name string, c Compression) error {
	data, err := Encode(root, name, c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("nbtfile: %w", err)
	}
	return nil
}
