// Copyright (c) 2016 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package hashfn provides the standard hash and equality families consumed
// by chainmap.Table: pointer identity, fixed-width integers, byte strings,
// and composite pairs. None of this is required reading to use chainmap:
// any func(K) uint32 / NotEqualFunc[K] pair works, these are simply the
// families named by the container's own design notes.
package hashfn

import "golang.org/x/exp/constraints"

// HashFunc computes the full, pre-bucket-reduction hash of a key. The
// result is cached by chainmap.Table alongside the entry so that resize
// and lookup never need to call it twice for the same key.
type HashFunc[K any] func(k K) uint32

// NotEqualFunc reports whether a and b are *unequal*. This is inverted
// from the usual Go convention (a true Equal would read more naturally)
// but matches the calling convention chainmap.Table expects throughout:
// true means "different keys".
type NotEqualFunc[K any] func(a, b K) bool

// NotEqual adapts a comparable type's native != into a NotEqualFunc.
func NotEqual[K comparable](a, b K) bool {
	return a != b
}

// Pointer hashes an address the way CPython 3.3 hashes small pointers:
// a 4-bit rotate to spread the low bits that alignment otherwise zeroes.
func Pointer(addr uintptr) uint32 {
	h := uint32(addr)
	return (h >> 4) | (h << 28)
}

// Uint32 mixes a 32-bit integer with an xor-shift cascade so that keys
// differing only in their high bits still spread across small bucket
// counts.
func Uint32(v uint32) uint32 {
	v ^= v >> 16
	v *= 0x7feb352d
	v ^= v >> 15
	v *= 0x846ca68b
	v ^= v >> 16
	return v
}

// Uint64 folds a 64-bit key down to 32 bits before mixing, so the same
// xor-shift cascade as Uint32 can be reused.
func Uint64(v uint64) uint32 {
	return Uint32(uint32(v ^ (v >> 32)))
}

// quadSeed is the MurmurHash2A seed used by Quad below. Any fixed value
// works; this one matches the constant the family is usually quoted with.
const quadSeed uint32 = 0x9747b28c

// Quad hashes a fixed quadruple of 32-bit integers with a MurmurHash2A-style
// multiply-shift-xor mix, used for composite keys that are exactly four
// words wide (e.g. a 128-bit address).
func Quad(a, b, c, d uint32) uint32 {
	const m = 0x5bd1e995
	const r = 24

	h := quadSeed

	mix := func(h, k uint32) uint32 {
		k *= m
		k ^= k >> r
		k *= m
		h *= m
		h ^= k
		return h
	}
	h = mix(h, a)
	h = mix(h, b)
	h = mix(h, c)
	h = mix(h, d)

	h ^= h >> 13
	h *= m
	h ^= h >> 15
	return h
}

// String hashes a byte string with djb2, matching the original's choice
// of signed bytes in the accumulation (`h = 33*h + int8(c)`), which
// differs slightly from the more common unsigned variant for inputs
// with bytes ≥ 0x80.
func String(s string) uint32 {
	h := uint32(5381)
	for i := 0; i < len(s); i++ {
		h = 33*h + uint32(int8(s[i]))
	}
	return h
}

// Pair combines two independently computed hashes (typically the pointer
// hashes of the two halves of a composite key) via XOR. XOR is
// commutative, so Pair(a, b) == Pair(b, a).
func Pair(a, b uint32) uint32 {
	return a ^ b
}

// Int mixes any integer-kinded key through the Uint32 cascade, letting
// callers key a Table on int, int32, uint16, etc. without writing a
// wrapper per width.
func Int[T constraints.Integer](v T) uint32 {
	return Uint32(uint32(v))
}
