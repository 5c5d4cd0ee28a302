// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package region

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/anvil-foundation/anvil/nbt"
	"github.com/anvil-foundation/anvil/nbtfile"
)

// Reader reads chunks out of a region file. The header is loaded and
// validated up front; chunk records are read on demand, so a Reader
// over a large file stays cheap until chunks are actually requested.
//
// Methods may be called concurrently when source's ReadAt is safe
// for concurrent use (an [os.File] is).
type Reader struct {
	source     io.ReaderAt
	size       int64
	locations  [gridChunks]uint32
	timestamps [gridChunks]uint32
}

// NewReader reads the region header from source, which must span
// size bytes.
func NewReader(source io.ReaderAt, size int64) (*Reader, error) {
	if size < headerSize {
		return nil, fmt.Errorf("region: %d bytes is smaller than the %d-byte header", size, headerSize)
	}
	header := make([]byte, headerSize)
	if _, err := source.ReadAt(header, 0); err != nil {
		return nil, fmt.Errorf("region: read header: %w", err)
	}
	reader := &Reader{source: source, size: size}
	for i := range reader.locations {
		reader.locations[i] = binary.BigEndian.Uint32(header[i*4:])
		reader.timestamps[i] = binary.BigEndian.Uint32(header[sectorSize+i*4:])
	}
	return reader, nil
}

// Present reports whether the chunk at the given coordinates exists
// in the file.
func (r *Reader) Present(x, z int) bool {
	return r.locations[chunkIndex(x, z)] != 0
}

// Timestamp returns the chunk's modification time. Chunks that have
// never been written report the Unix epoch.
func (r *Reader) Timestamp(x, z int) time.Time {
	return time.Unix(int64(r.timestamps[chunkIndex(x, z)]), 0).UTC()
}

// ChunkInfo describes a stored chunk record: where it sits in the
// file, how large it is, and how its payload is compressed. The
// payload itself is not read; use [Reader.ReadChunkData] or
// [Reader.ReadChunk] for the contents.
type ChunkInfo struct {
	// X and Z are the chunk's grid coordinates within the region,
	// each in the range 0-31.
	X, Z int

	// SectorOffset is the record's first sector counted from the
	// start of the file; Sectors is how many sectors it occupies.
	SectorOffset int
	Sectors      int

	// Length is the record's byte length: the scheme byte plus the
	// compressed payload.
	Length int

	// Scheme is the payload's compression scheme.
	Scheme nbtfile.Compression

	// Timestamp is the chunk's modification time from the header.
	Timestamp time.Time
}

// Info returns the chunk record's metadata without touching the
// payload. Absent chunks return [ErrChunkAbsent].
func (r *Reader) Info(x, z int) (ChunkInfo, error) {
	meta, err := r.record(x, z)
	if err != nil {
		return ChunkInfo{}, err
	}
	return ChunkInfo{
		X:            x & 31,
		Z:            z & 31,
		SectorOffset: int(meta.offset / sectorSize),
		Sectors:      int(meta.allocated / sectorSize),
		Length:       int(meta.length),
		Scheme:       meta.scheme,
		Timestamp:    r.Timestamp(x, z),
	}, nil
}

// recordMeta is a chunk record's validated location: where the record
// starts, how much space its sectors allocate, and what the record
// prefix declares.
type recordMeta struct {
	offset    int64
	allocated int64
	length    int64
	scheme    nbtfile.Compression
}

// record validates the chunk's location entry against the file bounds
// and reads the record prefix. The returned offset addresses the
// record's first byte (the length word).
func (r *Reader) record(x, z int) (recordMeta, error) {
	location := r.locations[chunkIndex(x, z)]
	if location == 0 {
		return recordMeta{}, fmt.Errorf("region: chunk (%d, %d): %w", x, z, ErrChunkAbsent)
	}
	offset := int64(location>>8) * sectorSize
	allocated := int64(location&0xff) * sectorSize
	switch {
	case offset < headerSize:
		return recordMeta{}, fmt.Errorf("region: chunk (%d, %d): record offset %d overlaps the header", x, z, offset)
	case allocated == 0:
		return recordMeta{}, fmt.Errorf("region: chunk (%d, %d): zero sector count", x, z)
	case offset+allocated > r.size:
		return recordMeta{}, fmt.Errorf("region: chunk (%d, %d): record extends past the end of the file", x, z)
	}

	// Record prefix: uint32 length counting the scheme byte and the
	// payload, then the scheme byte itself.
	prefix := make([]byte, 5)
	if _, err := r.source.ReadAt(prefix, offset); err != nil {
		return recordMeta{}, fmt.Errorf("region: chunk (%d, %d): read record header: %w", x, z, err)
	}
	length := int64(binary.BigEndian.Uint32(prefix))
	if length < 1 {
		return recordMeta{}, fmt.Errorf("region: chunk (%d, %d): record length %d", x, z, length)
	}
	if length+4 > allocated {
		return recordMeta{}, fmt.Errorf("region: chunk (%d, %d): record length %d exceeds the %d allocated bytes",
			x, z, length, allocated)
	}
	scheme := nbtfile.Compression(prefix[4])
	if !scheme.Valid() {
		return recordMeta{}, fmt.Errorf("region: chunk (%d, %d): unknown compression scheme %d", x, z, prefix[4])
	}
	return recordMeta{offset: offset, allocated: allocated, length: length, scheme: scheme}, nil
}

// ReadChunkData returns the chunk's serialized tree, decompressed
// but not decoded. Absent chunks return [ErrChunkAbsent].
func (r *Reader) ReadChunkData(x, z int) ([]byte, error) {
	meta, err := r.record(x, z)
	if err != nil {
		return nil, err
	}
	payload := make([]byte, meta.length-1)
	if _, err := r.source.ReadAt(payload, meta.offset+5); err != nil {
		return nil, fmt.Errorf("region: chunk (%d, %d): read record: %w", x, z, err)
	}
	data, err := nbtfile.Decompress(payload, meta.scheme)
	if err != nil {
		return nil, fmt.Errorf("region: chunk (%d, %d): %w", x, z, err)
	}
	return data, nil
}

// ReadChunk decodes the chunk into a tree, returning the root
// compound and its name (empty in files written by stock tooling).
func (r *Reader) ReadChunk(x, z int) (nbt.Compound, string, error) {
	data, err := r.ReadChunkData(x, z)
	if err != nil {
		return nil, "", err
	}
	var root nbt.Compound
	name, err := nbt.NewDecoder(bytes.NewReader(data)).Decode(&root)
	if err != nil {
		return nil, "", fmt.Errorf("region: chunk (%d, %d): %w", x, z, err)
	}
	return root, name, nil
}

// File is a [Reader] over an open region file.
type File struct {
	*Reader
	file *os.File
}

// Open opens the region file at path for reading. Close releases the
// file handle.
func Open(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("region: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("region: %w", err)
	}
	reader, err := NewReader(file, info.Size())
	if err != nil {
		file.Close()
		return nil, err
	}
	return &File{Reader: reader, file: file}, nil
}

// Close releases the underlying file handle.
func (f *File) Close() error {
	return f.file.Close()
}
