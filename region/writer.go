// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package region

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/anvil-foundation/anvil/nbt"
	"github.com/anvil-foundation/anvil/nbtfile"
)

// Writer accumulates chunks in memory and lays them out as a region
// file in a single pass. Chunks may be added in any order and
// rewritten; the last write for a coordinate wins. The zero value is
// ready to use.
type Writer struct {
	// records holds complete chunk records (length prefix, scheme
	// byte, compressed payload), unpadded.
	records    [gridChunks][]byte
	timestamps [gridChunks]uint32
}

// WriteChunk serializes a named root compound and stores it for the
// chunk at the given coordinates.
func (w *Writer) WriteChunk(x, z int, root nbt.Compound, name string, c nbtfile.Compression) error {
	var buffer bytes.Buffer
	if err := nbt.NewEncoder(&buffer).Encode(root, name); err != nil {
		return fmt.Errorf("region: chunk (%d, %d): %w", x, z, err)
	}
	return w.WriteChunkData(x, z, buffer.Bytes(), c)
}

// WriteChunkData stores an already-serialized tree for the chunk at
// the given coordinates, compressing it with the given scheme.
func (w *Writer) WriteChunkData(x, z int, data []byte, c nbtfile.Compression) error {
	compressed, err := nbtfile.Compress(data, c)
	if err != nil {
		return fmt.Errorf("region: chunk (%d, %d): %w", x, z, err)
	}
	if 5+len(compressed) > maxRecordSectors*sectorSize {
		return fmt.Errorf("region: chunk (%d, %d): record of %d bytes exceeds the %d-sector limit",
			x, z, 5+len(compressed), maxRecordSectors)
	}
	record := make([]byte, 5+len(compressed))
	binary.BigEndian.PutUint32(record, uint32(len(compressed)+1))
	record[4] = byte(c)
	copy(record[5:], compressed)
	w.records[chunkIndex(x, z)] = record
	return nil
}

// SetTimestamp records the chunk's modification time in whole Unix
// seconds.
func (w *Writer) SetTimestamp(x, z int, at time.Time) {
	w.timestamps[chunkIndex(x, z)] = uint32(at.Unix())
}

// padding is a zero sector used to round records up to sector
// boundaries.
var padding [sectorSize]byte

// WriteTo lays out the header and all chunk records and writes the
// complete region file to out. It implements [io.WriterTo].
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	header := make([]byte, headerSize)
	var body bytes.Buffer
	offset := headerSectors
	for i, record := range w.records {
		if len(record) == 0 {
			continue
		}
		sectors := (len(record) + sectorSize - 1) / sectorSize
		if offset+sectors > 1<<24 {
			return 0, fmt.Errorf("region: body overflows the 24-bit sector offset")
		}
		binary.BigEndian.PutUint32(header[i*4:], uint32(offset)<<8|uint32(sectors))
		body.Write(record)
		body.Write(padding[:sectors*sectorSize-len(record)])
		offset += sectors
	}
	for i, stamp := range w.timestamps {
		binary.BigEndian.PutUint32(header[sectorSize+i*4:], stamp)
	}

	headerWritten, err := out.Write(header)
	total := int64(headerWritten)
	if err != nil {
		return total, fmt.Errorf("region: write header: %w", err)
	}
	bodyWritten, err := body.WriteTo(out)
	total += bodyWritten
	if err != nil {
		return total, fmt.Errorf("region: write body: %w", err)
	}
	return total, nil
}
