// Copyright (c) 2019 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package chainset provides Set[K], the key-only counterpart to
// chainmap.Table. Rather than a second entry layout with a debug-only
// flag distinguishing it from a map (the approach the original library
// takes), Set is simply a Table[K, struct{}]: the shared bucket/resize
// engine chainmap already implements, with a zero-width value so there
// is nothing for a stray value-reading code path to read.
package chainset

import (
	"github.com/aristanetworks/chainkv/chainmap"
	"github.com/aristanetworks/chainkv/hashfn"
	"github.com/aristanetworks/chainkv/logger"
)

var present struct{}

// Set is a collection of distinct keys backed by a chained hash table
// with the same dynamic resize policy as chainmap.Table.
type Set[K any] struct {
	t *chainmap.Table[K, struct{}]
}

// Option configures a Set at construction time.
type Option[K any] chainmap.Option[K, struct{}]

func toMapOpts[K any](opts []Option[K]) []chainmap.Option[K, struct{}] {
	out := make([]chainmap.Option[K, struct{}], len(opts))
	for i, o := range opts {
		out[i] = chainmap.Option[K, struct{}](o)
	}
	return out
}

// AllowShrink permits the set to reduce its bucket count as keys are
// removed.
func AllowShrink[K any]() Option[K] {
	return Option[K](chainmap.AllowShrink[K, struct{}]())
}

// WithLogger attaches a logger.Logger that receives resize-transition
// Info lines.
func WithLogger[K any](l logger.Logger) Option[K] {
	return Option[K](chainmap.WithLogger[K, struct{}](l))
}

// New creates an empty set at the smallest schedule step.
func New[K any](hashFn hashfn.HashFunc[K], notEqual hashfn.NotEqualFunc[K], opts ...Option[K]) *Set[K] {
	return &Set[K]{t: chainmap.New(hashFn, notEqual, toMapOpts(opts)...)}
}

// NewSize creates an empty set reserved to hold at least reserve keys
// without an immediate resize.
func NewSize[K any](reserve int, hashFn hashfn.HashFunc[K], notEqual hashfn.NotEqualFunc[K], opts ...Option[K]) *Set[K] {
	return &Set[K]{t: chainmap.NewSize(reserve, hashFn, notEqual, toMapOpts(opts)...)}
}

// Len reports the number of keys in the set.
func (s *Set[K]) Len() int { return s.t.Len() }

// Reserve raises the set's floor so it holds at least n keys without an
// immediate resize.
func (s *Set[K]) Reserve(n int) { s.t.Reserve(n) }

// Add inserts key if not already present, reporting whether it was
// added.
func (s *Set[K]) Add(key K) bool { return s.t.Add(key, present) }

// HasKey reports whether key is a member of the set.
func (s *Set[K]) HasKey(key K) bool { return s.t.HasKey(key) }

// Remove deletes key from the set, invoking freeKey (if non-nil) on it,
// and reports whether it was present.
func (s *Set[K]) Remove(key K, freeKey func(K)) bool {
	return s.t.Remove(key, freeKey, nil)
}

// Clear removes every key, invoking freeKey (if non-nil) on each.
func (s *Set[K]) Clear(freeKey func(K)) {
	s.t.Clear(freeKey, nil)
}

// ClearEx removes every key, invoking freeKey (if non-nil) on each, then
// reserves capacity for at least reserve keys without an immediate
// resize.
func (s *Set[K]) ClearEx(reserve int, freeKey func(K)) {
	s.t.ClearEx(reserve, freeKey, nil)
}

// FlagSet turns on f (chainmap.FlagAllowShrink; chainmap.FlagAllowDupes
// has no meaning for a set of distinct keys) effective immediately.
func (s *Set[K]) FlagSet(f chainmap.Flag) { s.t.FlagSet(f) }

// FlagClear turns off f, effective immediately.
func (s *Set[K]) FlagClear(f chainmap.Flag) { s.t.FlagClear(f) }

// Destroy invokes Clear and releases the underlying entry pool.
func (s *Set[K]) Destroy(freeKey func(K)) {
	s.t.Destroy(freeKey, nil)
}

// Copy returns a deep-enough copy of s whose subsequent mutations do not
// affect s.
func (s *Set[K]) Copy() *Set[K] {
	return &Set[K]{t: s.t.Copy()}
}

// Iterator walks every key of a Set exactly once.
type Iterator[K any] struct {
	it *chainmap.Iterator[K, struct{}]
}

// Iterate returns an iterator positioned before the first key.
func (s *Set[K]) Iterate() *Iterator[K] {
	return &Iterator[K]{it: s.t.Iterate()}
}

// Step advances the iterator and reports whether a key was found.
func (it *Iterator[K]) Step() bool { return it.it.Step() }

// Key returns the current key. Valid only after a Step that returned
// true.
func (it *Iterator[K]) Key() K { return it.it.Key() }

// Table exposes the underlying chainmap.Table[K, struct{}] for callers
// that want to use the package-level relation and set-algebra functions
// (chainmap.Disjoint, chainmap.Union, ...) directly on a Set's storage.
func (s *Set[K]) Table() *chainmap.Table[K, struct{}] { return s.t }

// FromTable wraps an existing Table[K, struct{}] as a Set, the inverse
// of Table.
func FromTable[K any](t *chainmap.Table[K, struct{}]) *Set[K] {
	return &Set[K]{t: t}
}
