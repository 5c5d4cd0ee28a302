// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"fmt"
	"slices"
)

// List is a homogeneous sequence of values (wire tag [TagList]). All
// elements share one kind, recorded as the list's element tag; the
// constructors enforce this, so a List obtained from [NewList],
// [ListOf], or the decoder never holds mixed kinds.
//
// The zero List is the empty, untyped list: element tag [TagEnd] and
// no items. An empty list may also carry a concrete element tag (from
// ListOf with no values, or from wire data that declares one); the
// element tag takes part in [Equal] and is preserved through a
// decode→encode round trip.
type List struct {
	elem  Tag
	items []Value
}

// NewList builds a list of the given element kind, checking every
// value against it. A [TypeMismatchError] identifies the first value
// of the wrong kind. An element tag of [TagEnd] is only valid for an
// empty list.
func NewList(elem Tag, items ...Value) (List, error) {
	if !elem.Valid() {
		return List{}, &InvalidTagError{Byte: byte(elem)}
	}
	if elem == TagEnd && len(items) > 0 {
		return List{}, fmt.Errorf("nbt: list with end element tag cannot hold values")
	}
	for _, item := range items {
		if item == nil {
			return List{}, fmt.Errorf("nbt: nil value in list")
		}
		if item.Tag() != elem {
			return List{}, &TypeMismatchError{Want: elem, Got: item.Tag()}
		}
	}
	return List{elem: elem, items: slices.Clone(items)}, nil
}

// ListOf builds a list from values of a single concrete kind. The
// element tag comes from the type argument, so ListOf[Int]() is the
// empty list of ints, not the untyped empty list. Because the type
// argument fixes the kind, ListOf cannot fail.
//
// Instantiating ListOf with the [Value] interface itself defeats the
// static check and panics unless the values happen to share one kind;
// use [NewList] for dynamically typed values.
func ListOf[T Value](items ...T) List {
	if len(items) == 0 {
		var zero T
		value := Value(zero)
		if value == nil {
			panic("nbt: ListOf requires a concrete value type; use NewList for dynamic values")
		}
		return List{elem: value.Tag()}
	}
	elem := items[0].Tag()
	values := make([]Value, len(items))
	for i, item := range items {
		if item.Tag() != elem {
			panic("nbt: ListOf values must share one kind; use NewList for dynamic values")
		}
		values[i] = item
	}
	return List{elem: elem, items: values}
}

// Elem reports the element tag. [TagEnd] means the untyped empty
// list.
func (l List) Elem() Tag {
	return l.elem
}

// Len reports the number of elements.
func (l List) Len() int {
	return len(l.items)
}

// Index returns the element at position i. It panics if i is out of
// range, like a slice index.
func (l List) Index(i int) Value {
	return l.items[i]
}

// Append adds values to the list, checking each against the element
// tag. Appending to the untyped empty list adopts the kind of the
// first value. On error the list is unchanged.
func (l *List) Append(items ...Value) error {
	elem := l.elem
	if elem == TagEnd && len(l.items) == 0 && len(items) > 0 {
		if items[0] == nil {
			return fmt.Errorf("nbt: nil value in list")
		}
		elem = items[0].Tag()
	}
	for _, item := range items {
		if item == nil {
			return fmt.Errorf("nbt: nil value in list")
		}
		if item.Tag() != elem {
			return &TypeMismatchError{Want: elem, Got: item.Tag()}
		}
	}
	l.elem = elem
	l.items = append(l.items, items...)
	return nil
}

// Tag reports [TagList].
func (List) Tag() Tag { return TagList }

// MarshalNBT writes the list payload: element tag, element count,
// then the element payloads back to back.
func (l List) MarshalNBT(e *Encoder) error {
	if err := e.WriteListHeader(l.elem, len(l.items)); err != nil {
		return err
	}
	for _, item := range l.items {
		if err := item.MarshalNBT(e); err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalNBT decodes a list payload in place, replacing the
// receiver's contents.
func (l *List) UnmarshalNBT(tag Tag, d *Decoder) error {
	if tag != TagList {
		return &TypeMismatchError{Want: TagList, Got: tag}
	}
	decoded, err := d.DecodeValue(tag)
	if err != nil {
		return err
	}
	*l = decoded.(List)
	return nil
}
