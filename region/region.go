// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

// Package region reads and writes the sectored world container: each
// file holds up to a 32×32 grid of compressed trees ("chunks"), with
// an 8 KiB header locating them.
//
// The header's first 4 KiB is 1024 big-endian uint32 location
// entries, sector offset in the upper 24 bits and sector count in
// the low 8. The second 4 KiB is 1024 big-endian uint32 modification
// timestamps in Unix seconds. Chunk records follow in 4 KiB sectors:
// a big-endian uint32 byte length, one compression scheme byte, then
// the compressed tree. A zero location entry means the chunk is
// absent. These values are protocol constants — changing them breaks
// region-file compatibility.
package region

import "errors"

// GridSize is the chunk grid dimension: a region file addresses
// GridSize×GridSize chunk slots.
const GridSize = 32

const (
	// sectorSize is the allocation unit for chunk records.
	sectorSize = 4096

	// headerSectors is the number of sectors the header occupies;
	// chunk records start at sector 2.
	headerSectors = 2

	headerSize = headerSectors * sectorSize

	// gridChunks is the number of chunk slots per region file.
	gridChunks = GridSize * GridSize

	// maxRecordSectors caps a single chunk record; the location
	// entry stores the sector count in one byte.
	maxRecordSectors = 255
)

// ErrChunkAbsent is returned when reading a chunk whose location
// entry is zero. Use [errors.Is] to distinguish absence from a
// malformed file.
var ErrChunkAbsent = errors.New("chunk absent")

// chunkIndex maps chunk coordinates to a header slot. Coordinates
// are taken modulo 32, so absolute and region-relative values
// address the same chunk.
func chunkIndex(x, z int) int {
	return (x & 31) + (z & 31)*32
}
