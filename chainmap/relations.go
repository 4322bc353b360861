// Copyright (c) 2019 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package chainmap

// Disjoint reports whether a and b share no keys. It iterates the
// smaller table's entries, looking each one up in the larger, so the
// cost is proportional to min(a.Len(), b.Len()).
func Disjoint[K, V any](a, b *Table[K, V]) bool {
	small, large := a, b
	if b.Len() < a.Len() {
		small, large = b, a
	}
	for it := small.Iterate(); it.Step(); {
		if large.HasKey(it.Key()) {
			return false
		}
	}
	return true
}

// Equal reports whether a and b hold exactly the same keys mapped to
// equal values, short-circuiting on a size mismatch before comparing any
// entries. Values are compared with valueEqual.
func Equal[K, V any](a, b *Table[K, V], valueEqual func(x, y V) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	for it := a.Iterate(); it.Step(); {
		v, ok := b.Lookup(it.Key())
		if !ok || !valueEqual(it.Value(), v) {
			return false
		}
	}
	return true
}

// Subset reports whether every key of sub is present in super. This
// keeps the original library's iteration strategy (walk the presumably
// smaller operand) while reading naturally in Go: Subset(sub, super)
// asks "is sub a subset of super?".
func Subset[K, V any](sub, super *Table[K, V]) bool {
	for it := sub.Iterate(); it.Step(); {
		if !super.HasKey(it.Key()) {
			return false
		}
	}
	return true
}

// Superset reports whether every key of sub is present in super; it is
// Subset with the arguments reversed, provided so call sites can read in
// whichever direction matches their own table names.
func Superset[K, V any](super, sub *Table[K, V]) bool {
	return Subset(sub, super)
}
