// Copyright (c) 2019 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package chainmap

import "reflect"

// CopyFreeOpts supplies the optional copy/free callbacks the set-algebra
// operations use when materializing or discarding entries. A nil
// CopyKey/CopyValue means the destination borrows the source's key or
// value as-is; a nil FreeKey/FreeValue means a discarded key or value is
// simply dropped (the table never owned it to begin with).
type CopyFreeOpts[K, V any] struct {
	CopyKey   func(K) K
	CopyValue func(V) V
	FreeKey   func(K)
	FreeValue func(V)
}

func (o CopyFreeOpts[K, V]) copyKey(k K) K {
	if o.CopyKey != nil {
		return o.CopyKey(k)
	}
	return k
}

func (o CopyFreeOpts[K, V]) copyValue(v V) V {
	if o.CopyValue != nil {
		return o.CopyValue(v)
	}
	return v
}

// sameFunc compares two function values by entry point. Two distinct
// closures over the same named function compare equal; two separately
// declared anonymous funcs with identical bodies do not, which is the
// same "basically works, but is not perfectly precise" deal the original
// C implementation gets from comparing function pointers.
func sameFunc(a, b any) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func assertCompatible[K, V any](dest *Table[K, V], operands ...*Table[K, V]) {
	for _, op := range operands {
		if !sameFunc(dest.hashFn, op.hashFn) || !sameFunc(dest.notEqual, op.notEqual) {
			panic("chainmap: set-algebra operands do not share hash/eq functions")
		}
	}
}

// resolveDest implements the "optional destination" convention shared by
// all four set-algebra operations: a nil dest means deep-copy the first
// operand and use that copy as the destination, leaving the remaining
// operands to fold in.
func resolveDest[K, V any](dest *Table[K, V], operands []*Table[K, V]) (*Table[K, V], []*Table[K, V]) {
	if dest == nil {
		if len(operands) == 0 {
			panic("chainmap: set-algebra operation needs at least one operand when dest is nil")
		}
		dest = operands[0].Copy()
		operands = operands[1:]
	}
	assertCompatible(dest, operands...)
	return dest, operands
}

// Union folds every operand into dest left-biased: on a key collision,
// the destination's existing entry wins and the operand's is discarded.
// If dest is nil, the first operand is copied and used as the
// destination. Growth is triggered incrementally as entries are added.
func Union[K, V any](dest *Table[K, V], opts CopyFreeOpts[K, V], operands ...*Table[K, V]) *Table[K, V] {
	dest, operands = resolveDest(dest, operands)
	for _, op := range operands {
		for it := op.Iterate(); it.Step(); {
			k, v := it.Key(), it.Value()
			if _, found := dest.find(k); found == nil {
				dest.insertRaw(dest.hashFn(k), opts.copyKey(k), opts.copyValue(v))
				dest.afterMutation(false)
			}
		}
	}
	return dest
}

// UnionReversed folds every operand into dest right-biased: on a key
// collision, the operand's entry overwrites the destination's (the old
// key/value are freed via opts first). On a plain set (V = struct{})
// this degenerates to Union, since there is no value for the winner to
// differ by.
func UnionReversed[K, V any](dest *Table[K, V], opts CopyFreeOpts[K, V], operands ...*Table[K, V]) *Table[K, V] {
	dest, operands = resolveDest(dest, operands)
	for _, op := range operands {
		for it := op.Iterate(); it.Step(); {
			k, v := it.Key(), it.Value()
			if _, found := dest.find(k); found != nil {
				if opts.FreeKey != nil {
					opts.FreeKey(found.key)
				}
				if opts.FreeValue != nil {
					opts.FreeValue(found.value)
				}
				found.key = opts.copyKey(k)
				found.value = opts.copyValue(v)
			} else {
				dest.insertRaw(dest.hashFn(k), opts.copyKey(k), opts.copyValue(v))
				dest.afterMutation(false)
			}
		}
	}
	return dest
}

// Intersection removes, for each operand in sequence, every destination
// entry whose key is absent from that operand. The sweep mutates the
// destination directly, so nentries is updated as entries are unlinked
// and only a single forced shrink (ignoring AllowShrink) runs at the
// end, once the destination's final size is known.
func Intersection[K, V any](dest *Table[K, V], opts CopyFreeOpts[K, V], operands ...*Table[K, V]) *Table[K, V] {
	dest, operands = resolveDest(dest, operands)
	for _, op := range operands {
		sweepDest(dest, opts, func(key K) bool { return !op.HasKey(key) })
	}
	dest.afterMutation(true)
	return dest
}

// Difference removes, for each operand in sequence, every destination
// entry whose key *is* present in that operand, the mirror image of
// Intersection's removal predicate.
func Difference[K, V any](dest *Table[K, V], opts CopyFreeOpts[K, V], operands ...*Table[K, V]) *Table[K, V] {
	dest, operands = resolveDest(dest, operands)
	for _, op := range operands {
		sweepDest(dest, opts, func(key K) bool { return op.HasKey(key) })
	}
	dest.afterMutation(true)
	return dest
}

// sweepDest walks every bucket chain of dest, unlinking and freeing any
// entry whose key satisfies remove.
func sweepDest[K, V any](dest *Table[K, V], opts CopyFreeOpts[K, V], remove func(K) bool) {
	for b := range dest.buckets {
		var prev *entry[K, V]
		e := dest.buckets[b]
		for e != nil {
			next := e.next
			if remove(e.key) {
				if prev == nil {
					dest.buckets[b] = next
				} else {
					prev.next = next
				}
				if opts.FreeKey != nil {
					opts.FreeKey(e.key)
				}
				if opts.FreeValue != nil {
					opts.FreeValue(e.value)
				}
				dest.pool.Free(e)
				dest.nentries--
			} else {
				prev = e
			}
			e = next
		}
	}
}

// SymmetricDifference computes the keys appearing in exactly one of the
// given operands and leaves dest holding exactly those entries (if dest
// is nil, the first operand is copied and used as the destination, then
// folded into the same computation as any other operand).
//
// The algorithm runs in two scratch tables that borrow key/value
// pointers rather than copying them: keys,
// which accumulates every key seen at least once, and remKeys, a set of
// every key seen at least twice. A first pass over every operand fills
// both; a second pass walks remKeys, deleting each of its members from
// both keys and (if present) dest; a third pass adds whatever remains in
// keys but is missing from dest. Only then does a single forced shrink
// run.
func SymmetricDifference[K, V any](dest *Table[K, V], opts CopyFreeOpts[K, V], operands ...*Table[K, V]) *Table[K, V] {
	if len(operands) == 0 {
		panic("chainmap: SymmetricDifference needs at least one operand")
	}
	if dest == nil {
		dest = operands[0].Copy()
	}
	assertCompatible(dest, operands...)

	keys := NewSize[K, V](0, dest.hashFn, dest.notEqual)
	remKeys := NewSize[K, struct{}](0, dest.hashFn, dest.notEqual)

	for _, op := range operands {
		for it := op.Iterate(); it.Step(); {
			k, v := it.Key(), it.Value()
			if _, found := keys.find(k); found == nil {
				keys.insertRaw(keys.hashFn(k), k, v)
				keys.afterMutation(false)
			} else if _, found := remKeys.find(k); found == nil {
				remKeys.insertRaw(remKeys.hashFn(k), k, struct{}{})
				remKeys.afterMutation(false)
			}
		}
	}

	for it := remKeys.Iterate(); it.Step(); {
		k := it.Key()
		// Invariant: every key seen twice must already be in keys. A
		// bug in an earlier version of this routine wrote this as an
		// assignment; it must stay a comparison.
		if _, wasInKeys := keys.find(k); wasInKeys == nil {
			panic("chainmap: symmetric difference invariant violated: remKeys member missing from keys")
		}
		keys.Remove(k, nil, nil)
		if dest.HasKey(k) {
			dest.Remove(k, opts.FreeKey, opts.FreeValue)
		}
	}

	for it := keys.Iterate(); it.Step(); {
		k, v := it.Key(), it.Value()
		if !dest.HasKey(k) {
			dest.insertRaw(dest.hashFn(k), opts.copyKey(k), opts.copyValue(v))
			dest.afterMutation(false)
		}
	}

	dest.afterMutation(true)
	return dest
}
