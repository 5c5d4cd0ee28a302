// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"fmt"
	"slices"
)

// Entry is one named value inside a [Compound].
type Entry struct {
	Key   string
	Value Value
}

// Compound is an ordered sequence of named entries (wire tag
// [TagCompound]). Order is the order entries were inserted — or, for
// decoded data, the order they appeared on the wire — and is
// preserved through encoding, so decode→encode reproduces the
// original byte stream.
//
// Compound is a slice, so literals compose naturally:
//
//	root := nbt.Compound{
//		{Key: "name", Value: nbt.String("Bananrama")},
//		{Key: "score", Value: nbt.Int(9001)},
//	}
//
// Keys must be unique. [Compound.Set] maintains this; a literal that
// repeats a key is caught at encode time with a [DuplicateKeyError].
type Compound []Entry

// Get returns the value for key and whether the key is present.
func (c Compound) Get(key string) (Value, bool) {
	for _, entry := range c {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return nil, false
}

// Set replaces the value for key in place, or appends a new entry if
// the key is absent.
func (c *Compound) Set(key string, value Value) {
	for i := range *c {
		if (*c)[i].Key == key {
			(*c)[i].Value = value
			return
		}
	}
	*c = append(*c, Entry{Key: key, Value: value})
}

// Delete removes the entry for key, preserving the order of the
// remaining entries. It reports whether an entry was removed.
func (c *Compound) Delete(key string) bool {
	for i := range *c {
		if (*c)[i].Key == key {
			*c = slices.Delete(*c, i, i+1)
			return true
		}
	}
	return false
}

// Tag reports [TagCompound].
func (Compound) Tag() Tag { return TagCompound }

// MarshalNBT writes the compound payload: each entry as tag byte,
// name, payload, in order, then the end sentinel. Duplicate keys and
// nil values are rejected.
func (c Compound) MarshalNBT(e *Encoder) error {
	var seen map[string]struct{}
	if len(c) > 1 {
		seen = make(map[string]struct{}, len(c))
	}
	for _, entry := range c {
		if seen != nil {
			if _, dup := seen[entry.Key]; dup {
				return &DuplicateKeyError{Key: entry.Key}
			}
			seen[entry.Key] = struct{}{}
		}
		if entry.Value == nil {
			return fmt.Errorf("nbt: compound entry %q has nil value", entry.Key)
		}
		if err := e.EncodeEntry(entry.Key, entry.Value); err != nil {
			return err
		}
	}
	return e.WriteEnd()
}

// UnmarshalNBT decodes a compound payload in place, replacing the
// receiver's contents. Entries keep their wire order; a repeated key
// is a [DuplicateKeyError].
func (c *Compound) UnmarshalNBT(tag Tag, d *Decoder) error {
	if tag != TagCompound {
		return &TypeMismatchError{Want: TagCompound, Got: tag}
	}
	decoded, err := d.DecodeValue(tag)
	if err != nil {
		return err
	}
	*c = decoded.(Compound)
	return nil
}
