// Copyright (c) 2019 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package tableconfig loads a declarative construction policy for a
// chainmap.Table or chainset.Set from YAML, for tools and tests that
// want a profile instead of hand-wiring chainmap.Option values.
package tableconfig

import (
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/aristanetworks/chainkv/chainmap"
	"github.com/aristanetworks/chainkv/hashfn"
)

// HashFamily names one of the standard hash/eq families in the hashfn
// package, for use in YAML configuration where a func value can't
// appear literally.
type HashFamily string

// The hash families tableconfig knows how to resolve by name.
const (
	FamilyPointer HashFamily = "pointer"
	FamilyUint32  HashFamily = "uint32"
	FamilyString  HashFamily = "string"
	FamilyPair    HashFamily = "pair"
)

// PairKey is the composite key type FamilyPair resolves to: two
// independently hashed 32-bit words, combined via hashfn.Pair (XOR, so
// {A: x, B: y} and {A: y, B: x} hash alike and are told apart only by
// equality).
type PairKey struct {
	A, B uint32
}

func pairHash(k PairKey) uint32 {
	return hashfn.Pair(hashfn.Uint32(k.A), hashfn.Uint32(k.B))
}

func pairNotEqual(a, b PairKey) bool {
	return a != b
}

// Config is a table's construction policy, unmarshaled from YAML:
//
//	reserve: 1024
//	allowDupes: false
//	allowShrink: true
//	hashFamily: string
type Config struct {
	Reserve     int        `yaml:"reserve"`
	AllowDupes  bool       `yaml:"allowDupes"`
	AllowShrink bool       `yaml:"allowShrink"`
	HashFamily  HashFamily `yaml:"hashFamily"`
}

// Parse decodes a YAML document into a Config.
func Parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("tableconfig: %w", err)
	}
	return c, nil
}

// StringHashFuncs resolves a Config's named hash family to a
// (hashFn, notEqual) pair usable with a string-keyed table, returning an
// error if the family isn't one String-keyed tables can use.
func (c Config) StringHashFuncs() (hashfn.HashFunc[string], hashfn.NotEqualFunc[string], error) {
	switch c.HashFamily {
	case FamilyString, "":
		return hashfn.String, hashfn.NotEqual[string], nil
	default:
		return nil, nil, fmt.Errorf("tableconfig: hash family %q is not usable with string keys", c.HashFamily)
	}
}

// PointerHashFuncs resolves a Config's named hash family to a
// (hashFn, notEqual) pair usable with a uintptr-keyed table, returning an
// error if the family isn't FamilyPointer.
func (c Config) PointerHashFuncs() (hashfn.HashFunc[uintptr], hashfn.NotEqualFunc[uintptr], error) {
	switch c.HashFamily {
	case FamilyPointer:
		return hashfn.Pointer, hashfn.NotEqual[uintptr], nil
	default:
		return nil, nil, fmt.Errorf("tableconfig: hash family %q is not usable with uintptr keys", c.HashFamily)
	}
}

// Uint32HashFuncs resolves a Config's named hash family to a
// (hashFn, notEqual) pair usable with a uint32-keyed table, returning an
// error if the family isn't FamilyUint32.
func (c Config) Uint32HashFuncs() (hashfn.HashFunc[uint32], hashfn.NotEqualFunc[uint32], error) {
	switch c.HashFamily {
	case FamilyUint32:
		return hashfn.Uint32, hashfn.NotEqual[uint32], nil
	default:
		return nil, nil, fmt.Errorf("tableconfig: hash family %q is not usable with uint32 keys", c.HashFamily)
	}
}

// PairHashFuncs resolves a Config's named hash family to a
// (hashFn, notEqual) pair usable with a PairKey-keyed table, returning an
// error if the family isn't FamilyPair.
func (c Config) PairHashFuncs() (hashfn.HashFunc[PairKey], hashfn.NotEqualFunc[PairKey], error) {
	switch c.HashFamily {
	case FamilyPair:
		return pairHash, pairNotEqual, nil
	default:
		return nil, nil, fmt.Errorf("tableconfig: hash family %q is not usable with PairKey keys", c.HashFamily)
	}
}

// Options returns the chainmap.Option values implied by this Config's
// allowDupes/allowShrink flags.
func Options[K, V any](c Config) []chainmap.Option[K, V] {
	var opts []chainmap.Option[K, V]
	if c.AllowDupes {
		opts = append(opts, chainmap.AllowDupes[K, V]())
	}
	if c.AllowShrink {
		opts = append(opts, chainmap.AllowShrink[K, V]())
	}
	return opts
}

// NewStringTable builds a Table[string, V] per this Config, using the
// configured hash family and reservation. Extra chainmap.Option values
// (e.g. chainmap.WithLogger) are appended after the ones implied by the
// Config itself.
func NewStringTable[V any](c Config, extra ...chainmap.Option[string, V]) (*chainmap.Table[string, V], error) {
	hashFn, notEqual, err := c.StringHashFuncs()
	if err != nil {
		return nil, err
	}
	opts := append(Options[string, V](c), extra...)
	return chainmap.NewSize[string, V](c.Reserve, hashFn, notEqual, opts...), nil
}

// NewPointerTable builds a Table[uintptr, V] per this Config; hashFamily
// must be "pointer".
func NewPointerTable[V any](c Config, extra ...chainmap.Option[uintptr, V]) (*chainmap.Table[uintptr, V], error) {
	hashFn, notEqual, err := c.PointerHashFuncs()
	if err != nil {
		return nil, err
	}
	opts := append(Options[uintptr, V](c), extra...)
	return chainmap.NewSize[uintptr, V](c.Reserve, hashFn, notEqual, opts...), nil
}

// NewUint32Table builds a Table[uint32, V] per this Config; hashFamily
// must be "uint32".
func NewUint32Table[V any](c Config, extra ...chainmap.Option[uint32, V]) (*chainmap.Table[uint32, V], error) {
	hashFn, notEqual, err := c.Uint32HashFuncs()
	if err != nil {
		return nil, err
	}
	opts := append(Options[uint32, V](c), extra...)
	return chainmap.NewSize[uint32, V](c.Reserve, hashFn, notEqual, opts...), nil
}

// NewPairTable builds a Table[PairKey, V] per this Config; hashFamily
// must be "pair".
func NewPairTable[V any](c Config, extra ...chainmap.Option[PairKey, V]) (*chainmap.Table[PairKey, V], error) {
	hashFn, notEqual, err := c.PairHashFuncs()
	if err != nil {
		return nil, err
	}
	opts := append(Options[PairKey, V](c), extra...)
	return chainmap.NewSize[PairKey, V](c.Reserve, hashFn, notEqual, opts...), nil
}
