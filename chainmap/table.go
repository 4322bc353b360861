// Copyright (c) 2019 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package chainmap implements a generic separate-chaining hash table:
// the bucket array and resize engine, the map operations built on it,
// forward iteration, whole-table relations, and N-ary set algebra. It is
// the core this module exists to provide; chainset is a thin facade over
// Table[K, struct{}] for callers that only need key membership.
package chainmap

import (
	"fmt"

	"github.com/aristanetworks/chainkv/entrypool"
	"github.com/aristanetworks/chainkv/hashfn"
	"github.com/aristanetworks/chainkv/logger"
)

// entry is a single record in a bucket's collision chain. hash is the
// full, pre-reduction hash of key, cached so resize and lookup never
// call HashFn twice for the same key.
type entry[K, V any] struct {
	hash  uint32
	key   K
	value V
	next  *entry[K, V]
}

// Table is a map from K to V backed by a chained hash table with
// dynamic, hysteresis-banded resizing. The zero value is not usable;
// construct one with New or NewSize.
//
// A Table with V = struct{} has no value slot worth reading. chainset
// builds its Set type exactly that way, which is how this package
// satisfies the "set is a map with the value elided" relationship
// without a second entry layout or a runtime flag to enforce it.
type Table[K, V any] struct {
	hashFn   hashfn.HashFunc[K]
	notEqual hashfn.NotEqualFunc[K]

	buckets []*entry[K, V]
	pool    entrypool.Pool[entry[K, V]]

	nentries int
	cursize  int // index into hashsizes for the current bucket count
	minsize  int // floor index, raised only by Reserve and ClearEx

	limitGrow   int
	limitShrink int

	allowDupes  bool
	allowShrink bool

	log logger.Logger
}

// Option configures a Table at construction time.
type Option[K, V any] func(*Table[K, V])

// AllowDupes permits Insert to store multiple entries with equal keys;
// Lookup then returns an arbitrary one of them. Off by default, in which
// case a raw Insert of a duplicate key is a contract violation (use Add
// or Reinsert instead).
func AllowDupes[K, V any]() Option[K, V] {
	return func(t *Table[K, V]) { t.allowDupes = true }
}

// AllowShrink permits the table to reduce its bucket count as entries
// are removed. Off by default: removals never reduce the bucket count,
// which is the safer default for callers who reserve capacity up front
// and churn within it. Clear/ClearEx still reset the bucket array to the
// floor, and the set-algebra operations still force a shrink at the end.
func AllowShrink[K, V any]() Option[K, V] {
	return func(t *Table[K, V]) { t.allowShrink = true }
}

// WithLogger attaches a logger.Logger that receives an Info line on every
// resize transition (grow, shrink, or a forced shrink at the end of a
// set-algebra operation). Nil (the default) means no logging.
func WithLogger[K, V any](l logger.Logger) Option[K, V] {
	return func(t *Table[K, V]) { t.log = l }
}

// WithPool overrides the default entry pool. Most callers can ignore
// this; it exists for tests and for callers who want to size or share
// chunk pools explicitly.
func WithPool[K, V any](p entrypool.Pool[entry[K, V]]) Option[K, V] {
	return func(t *Table[K, V]) { t.pool = p }
}

// New creates an empty table at the smallest schedule step.
func New[K, V any](hashFn hashfn.HashFunc[K], notEqual hashfn.NotEqualFunc[K], opts ...Option[K, V]) *Table[K, V] {
	return NewSize[K, V](0, hashFn, notEqual, opts...)
}

// NewSize creates an empty table reserved to hold at least reserve
// entries without an immediate resize.
func NewSize[K, V any](reserve int, hashFn hashfn.HashFunc[K], notEqual hashfn.NotEqualFunc[K], opts ...Option[K, V]) *Table[K, V] {
	if hashFn == nil || notEqual == nil {
		panic("chainmap: New requires non-nil hash and equality functions")
	}
	t := &Table[K, V]{
		hashFn:   hashFn,
		notEqual: notEqual,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.pool == nil {
		t.pool = entrypool.New[entry[K, V]](64, 0, entrypool.WithLogger[entry[K, V]](t.log))
	}
	t.cursize = scheduleFloor(reserve)
	t.minsize = t.cursize
	t.buckets = make([]*entry[K, V], hashsizes[t.cursize])
	t.recomputeThresholds()
	return t
}

func (t *Table[K, V]) recomputeThresholds() {
	n := int(hashsizes[t.cursize])
	t.limitGrow = 3 * n / 4
	t.limitShrink = 3 * n / 16
}

func (t *Table[K, V]) bucketIndex(h uint32) int {
	return int(h % hashsizes[t.cursize])
}

// Flag identifies one of a Table's runtime-toggleable behaviors, for use
// with FlagSet/FlagClear.
type Flag int

const (
	// FlagAllowDupes permits Insert to store multiple entries with equal
	// keys. See AllowDupes.
	FlagAllowDupes Flag = iota
	// FlagAllowShrink permits the table to reduce its bucket count as
	// entries are removed. See AllowShrink.
	FlagAllowShrink
)

// FlagSet turns on f, effective immediately. Unlike the Option form set
// at construction, this lets a caller enable a behavior only once it
// actually applies, e.g. AllowShrink only during a bulk cleanup pass.
func (t *Table[K, V]) FlagSet(f Flag) {
	switch f {
	case FlagAllowDupes:
		t.allowDupes = true
	case FlagAllowShrink:
		t.allowShrink = true
		t.afterMutation(false)
	default:
		panic("chainmap: FlagSet: unknown flag")
	}
}

// FlagClear turns off f, effective immediately. Clearing FlagAllowShrink
// does not re-grow a table that has already shrunk; it only stops
// further shrinking.
func (t *Table[K, V]) FlagClear(f Flag) {
	switch f {
	case FlagAllowDupes:
		t.allowDupes = false
	case FlagAllowShrink:
		t.allowShrink = false
	default:
		panic("chainmap: FlagClear: unknown flag")
	}
}

// Len reports the number of live entries.
func (t *Table[K, V]) Len() int {
	return t.nentries
}

// Reserve raises the table's floor so that it holds at least n entries
// without an immediate resize, and never shrinks below that floor
// afterward. If the table is already large enough, only the floor is
// raised and no resize happens.
func (t *Table[K, V]) Reserve(n int) {
	target := scheduleFloor(n)
	if target <= t.cursize {
		if target > t.minsize {
			t.minsize = target
		}
		return
	}
	t.resizeTo(target)
	t.minsize = target
}

// resizeTo moves the table to schedule step idx, rehashing every live
// entry into the new bucket array. Entries are not reallocated; only
// their next pointers and home bucket change.
func (t *Table[K, V]) resizeTo(idx int) {
	if idx == t.cursize {
		return
	}
	oldBuckets := t.buckets
	oldSize := hashsizes[t.cursize]
	newSize := hashsizes[idx]

	newBuckets := make([]*entry[K, V], newSize)
	for _, head := range oldBuckets {
		for e := head; e != nil; {
			next := e.next
			b := int(e.hash % newSize)
			e.next = newBuckets[b]
			newBuckets[b] = e
			e = next
		}
	}
	growing := newSize > oldSize
	t.buckets = newBuckets
	t.cursize = idx
	t.recomputeThresholds()
	if t.log != nil {
		verb := "shrank"
		if growing {
			verb = "grew"
		}
		t.log.Infof("chainmap: table %s from %d to %d buckets (%d entries)", verb, oldSize, newSize, t.nentries)
	}
}

// afterMutation enforces the growth/shrink policy (§4.3): while over
// limitGrow, step up; while under limitShrink and shrink is allowed (or
// forced), step down, never below the floor.
func (t *Table[K, V]) afterMutation(forceShrink bool) {
	for t.nentries > t.limitGrow && t.cursize < len(hashsizes)-1 {
		t.resizeTo(t.cursize + 1)
	}
	if !t.allowShrink && !forceShrink {
		return
	}
	for t.nentries < t.limitShrink && t.cursize > t.minsize {
		t.resizeTo(t.cursize - 1)
	}
}

// Copy returns a deep-enough copy of t: a new table with its own bucket
// array and entry pool containing every (key, value) pair of t, equal to
// t by Equal, whose subsequent mutations never affect t.
func (t *Table[K, V]) Copy() *Table[K, V] {
	dst := NewSize[K, V](t.nentries, t.hashFn, t.notEqual)
	dst.allowDupes = t.allowDupes
	dst.allowShrink = t.allowShrink
	dst.log = t.log
	for _, head := range t.buckets {
		for e := head; e != nil; e = e.next {
			dst.insertRaw(e.hash, e.key, e.value)
		}
	}
	dst.afterMutation(false)
	return dst
}

// Clear removes every entry, invoking freeKey/freeValue (if non-nil) on
// each live entry exactly once, then resets the bucket array to the
// table's floor. It is equivalent to ClearEx(0, freeKey, freeValue).
func (t *Table[K, V]) Clear(freeKey func(K), freeValue func(V)) {
	t.ClearEx(0, freeKey, freeValue)
}

// ClearEx removes every entry, invoking freeKey/freeValue (if non-nil) on
// each live entry exactly once, then resets the bucket array sized to
// hold at least reserve entries without an immediate resize, raising the
// table's floor the same way Reserve does. This saves the extra
// bucket-array allocation a Clear followed by a separate Reserve would
// make when the caller already knows the next batch's rough size.
func (t *Table[K, V]) ClearEx(reserve int, freeKey func(K), freeValue func(V)) {
	for _, head := range t.buckets {
		for e := head; e != nil; {
			next := e.next
			if freeKey != nil {
				freeKey(e.key)
			}
			if freeValue != nil {
				freeValue(e.value)
			}
			t.pool.Free(e)
			e = next
		}
	}
	target := t.minsize
	if s := scheduleFloor(reserve); s > target {
		target = s
		t.minsize = s
	}
	t.buckets = make([]*entry[K, V], hashsizes[target])
	t.cursize = target
	t.recomputeThresholds()
	t.nentries = 0
}

// Destroy invokes Clear and then releases the entry pool's chunks. The
// table must not be used again afterward.
func (t *Table[K, V]) Destroy(freeKey func(K), freeValue func(V)) {
	t.Clear(freeKey, freeValue)
	t.pool.Destroy()
}

func (t *Table[K, V]) String() string {
	return fmt.Sprintf("chainmap.Table[len=%d buckets=%d]", t.nentries, len(t.buckets))
}
