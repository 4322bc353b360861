// Copyright (c) 2019 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package chainmap

// Iterator walks every live entry of a Table exactly once, in an order
// that is unspecified but deterministic between mutations (bucket order,
// then chain order within a bucket). Mutating the table while an
// iterator is live is undefined behavior and is not detected.
type Iterator[K, V any] struct {
	t      *Table[K, V]
	bucket int
	cur    *entry[K, V]
}

// Iterate returns an iterator positioned before the first entry; call
// Step to advance it before reading Key/Value.
func (t *Table[K, V]) Iterate() *Iterator[K, V] {
	return &Iterator[K, V]{t: t, bucket: -1}
}

// Step advances the iterator to the next entry and reports whether one
// was found. Call it before the first Key/Value read, and after every
// subsequent one.
func (it *Iterator[K, V]) Step() bool {
	if it.cur != nil {
		if next := it.cur.next; next != nil {
			it.cur = next
			return true
		}
	}
	for it.bucket++; it.bucket < len(it.t.buckets); it.bucket++ {
		if head := it.t.buckets[it.bucket]; head != nil {
			it.cur = head
			return true
		}
	}
	it.cur = nil
	return false
}

// Done reports whether the iterator has been exhausted.
func (it *Iterator[K, V]) Done() bool {
	return it.cur == nil && it.bucket >= len(it.t.buckets)
}

// Key returns the current entry's key. Valid only after a Step that
// returned true.
func (it *Iterator[K, V]) Key() K {
	return it.cur.key
}

// Value returns the current entry's value. Valid only after a Step that
// returned true.
func (it *Iterator[K, V]) Value() V {
	return it.cur.value
}

// ValuePtr returns a pointer to the current entry's value, for in-place
// mutation during a walk. Valid only after a Step that returned true, and
// only until the next Step (or any table mutation).
func (it *Iterator[K, V]) ValuePtr() *V {
	return &it.cur.value
}
