// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

// Package nbtjson converts between dynamic NBT trees and JSON text.
//
// The mapping is the obvious one — compounds become objects, lists
// and arrays become arrays, scalars become numbers, strings and
// booleans — with two properties the standard library's map-based
// JSON handling would not give:
//
//   - Compound key order survives. Emission walks the tree directly
//     and parsing walks the token stream, so object member order in
//     the text always matches entry order in the tree.
//   - Kind inference is explicit and documented. JSON numbers carry
//     no width, so parsing assigns the narrowest reasonable kind:
//     integer literals become ints when they fit in 32 bits and longs
//     otherwise; literals with a fraction or exponent become doubles.
//     Emission writes integral doubles with a trailing ".0" so they
//     parse back as doubles. Booleans become bytes (1 and 0). Arrays
//     must be homogeneous after promoting mixed numerics to the
//     widest kind present.
//
// The boundary is lossy where JSON is smaller than the tag set:
// bytes, shorts, and floats widen on a text round trip, and the three
// packed array kinds come back as lists. JSON null has no tagged
// equivalent and is rejected.
//
// [Interface] and [FromInterface] bridge trees to plain Go values
// (map[string]any, []any, scalars) for machine consumers such as YAML
// or CBOR encoders. Go maps have no order, so that path additionally
// loses entry order; FromInterface sorts map keys for deterministic
// output.
package nbtjson
