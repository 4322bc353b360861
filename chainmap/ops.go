// Copyright (c) 2019 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package chainmap

// insertRaw is the shared allocation-and-link tail every insert mode
// funnels through (§4.5): allocate an entry from the pool, populate it,
// push it onto the head of its bucket's chain, and bump nentries. The
// caller is responsible for any pre-check (lookup for Add/Reinsert) and
// for calling afterMutation afterward.
func (t *Table[K, V]) insertRaw(h uint32, key K, value V) *entry[K, V] {
	e := t.pool.Alloc()
	e.hash = h
	e.key = key
	e.value = value
	b := t.bucketIndex(h)
	e.next = t.buckets[b]
	t.buckets[b] = e
	t.nentries++
	return e
}

// find walks key's bucket chain, comparing the cached hash first (cheap)
// and only falling back to notEqual on a hash match. It returns the
// entry and the entry immediately preceding it in the chain (nil if it
// is the bucket head).
func (t *Table[K, V]) find(key K) (prev, found *entry[K, V]) {
	h := t.hashFn(key)
	b := t.bucketIndex(h)
	var p *entry[K, V]
	for e := t.buckets[b]; e != nil; e = e.next {
		if e.hash == h && !t.notEqual(e.key, key) {
			return p, e
		}
		p = e
	}
	return nil, nil
}

// Insert unconditionally stores (key, value) as a new entry. If
// AllowDupes was not set and key is already present, this is a contract
// violation (spec §7): use Add or Reinsert instead when duplicates are
// possible.
func (t *Table[K, V]) Insert(key K, value V) {
	if !t.allowDupes {
		if _, found := t.find(key); found != nil {
			panic("chainmap: Insert of duplicate key without AllowDupes")
		}
	}
	h := t.hashFn(key)
	t.insertRaw(h, key, value)
	t.afterMutation(false)
}

// Add stores (key, value) only if key is not already present. It
// reports whether the insert happened.
func (t *Table[K, V]) Add(key K, value V) bool {
	if _, found := t.find(key); found != nil {
		return false
	}
	h := t.hashFn(key)
	t.insertRaw(h, key, value)
	t.afterMutation(false)
	return true
}

// Reinsert stores (key, value), overwriting any existing entry for key
// in place. If an existing entry is replaced, freeKey and freeValue (if
// non-nil) are invoked on its old key and value before the overwrite,
// and Reinsert reports false (the "existing-key path" per spec §4.5). A
// fresh insert reports true.
func (t *Table[K, V]) Reinsert(key K, value V, freeKey func(K), freeValue func(V)) bool {
	if _, found := t.find(key); found != nil {
		if freeKey != nil {
			freeKey(found.key)
		}
		if freeValue != nil {
			freeValue(found.value)
		}
		found.key = key
		found.value = value
		return false
	}
	h := t.hashFn(key)
	t.insertRaw(h, key, value)
	t.afterMutation(false)
	return true
}

// Lookup returns the value stored for key and whether it was found.
func (t *Table[K, V]) Lookup(key K) (V, bool) {
	_, found := t.find(key)
	if found == nil {
		var zero V
		return zero, false
	}
	return found.value, true
}

// LookupPtr returns a pointer to the value stored for key and whether it
// was found, letting a caller mutate a value in place without a
// Remove+Reinsert round trip. The pointer refers to the entry's own
// record, which a resize does not move; once the entry is removed
// (Remove, Pop, Clear, ...) the record goes back to the pool, is zeroed
// and may be reused by a later insert.
func (t *Table[K, V]) LookupPtr(key K) (*V, bool) {
	_, found := t.find(key)
	if found == nil {
		return nil, false
	}
	return &found.value, true
}

// LookupDefault returns the value stored for key, or def if key is
// absent.
func (t *Table[K, V]) LookupDefault(key K, def V) V {
	if v, ok := t.Lookup(key); ok {
		return v
	}
	return def
}

// HasKey reports whether key is present.
func (t *Table[K, V]) HasKey(key K) bool {
	_, found := t.find(key)
	return found != nil
}

// Remove deletes the entry for key, invoking freeKey/freeValue (if
// non-nil) on its key and value, and reports whether an entry was
// removed.
func (t *Table[K, V]) Remove(key K, freeKey func(K), freeValue func(V)) bool {
	_, ok := t.removeEntry(key, freeKey, freeValue)
	return ok
}

// Pop deletes the entry for key and returns its value instead of
// invoking a free callback on it; freeKey (if non-nil) still runs on the
// key, since the caller is taking ownership of the value by receiving
// it.
func (t *Table[K, V]) Pop(key K, freeKey func(K)) (V, bool) {
	return t.removeEntry(key, freeKey, nil)
}

func (t *Table[K, V]) removeEntry(key K, freeKey func(K), freeValue func(V)) (V, bool) {
	h := t.hashFn(key)
	b := t.bucketIndex(h)
	var prev *entry[K, V]
	for e := t.buckets[b]; e != nil; e = e.next {
		if e.hash == h && !t.notEqual(e.key, key) {
			if prev == nil {
				t.buckets[b] = e.next
			} else {
				prev.next = e.next
			}
			v := e.value
			if freeKey != nil {
				freeKey(e.key)
			}
			if freeValue != nil {
				freeValue(e.value)
			}
			t.pool.Free(e)
			t.nentries--
			t.afterMutation(false)
			return v, true
		}
		prev = e
	}
	var zero V
	return zero, false
}
