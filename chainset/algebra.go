// Copyright (c) 2019 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package chainset

import "github.com/aristanetworks/chainkv/chainmap"

// Disjoint reports whether a and b share no keys.
func Disjoint[K any](a, b *Set[K]) bool {
	return chainmap.Disjoint(a.t, b.t)
}

// Equal reports whether a and b hold exactly the same keys.
func Equal[K any](a, b *Set[K]) bool {
	return chainmap.Equal(a.t, b.t, func(struct{}, struct{}) bool { return true })
}

// Subset reports whether every key of sub is present in super.
func Subset[K any](sub, super *Set[K]) bool {
	return chainmap.Subset(sub.t, super.t)
}

// Superset reports whether every key of sub is present in super.
func Superset[K any](super, sub *Set[K]) bool {
	return chainmap.Superset(super.t, sub.t)
}

// copyFreeOpts adapts a (copyKey, freeKey) pair to the CopyFreeOpts
// shape chainmap's set-algebra functions expect, with the value side a
// no-op since struct{} carries nothing to copy or free.
func copyFreeOpts[K any](copyKey func(K) K, freeKey func(K)) chainmap.CopyFreeOpts[K, struct{}] {
	return chainmap.CopyFreeOpts[K, struct{}]{CopyKey: copyKey, FreeKey: freeKey}
}

// Union folds every operand's keys into dest (or a copy of operands[0]
// if dest is nil). There is no value to be biased by, so left- and
// right-biased union are the same operation for a set.
func Union[K any](dest *Set[K], copyKey func(K) K, freeKey func(K), operands ...*Set[K]) *Set[K] {
	return applyAlgebra(dest, copyKey, freeKey, operands, chainmap.Union[K, struct{}])
}

// Intersection keeps only the keys present in every operand.
func Intersection[K any](dest *Set[K], copyKey func(K) K, freeKey func(K), operands ...*Set[K]) *Set[K] {
	return applyAlgebra(dest, copyKey, freeKey, operands, chainmap.Intersection[K, struct{}])
}

// Difference removes from dest every key present in any operand.
func Difference[K any](dest *Set[K], copyKey func(K) K, freeKey func(K), operands ...*Set[K]) *Set[K] {
	return applyAlgebra(dest, copyKey, freeKey, operands, chainmap.Difference[K, struct{}])
}

// SymmetricDifference keeps only the keys appearing in exactly one
// operand.
func SymmetricDifference[K any](dest *Set[K], copyKey func(K) K, freeKey func(K), operands ...*Set[K]) *Set[K] {
	return applyAlgebra(dest, copyKey, freeKey, operands, chainmap.SymmetricDifference[K, struct{}])
}

func applyAlgebra[K any](
	dest *Set[K],
	copyKey func(K) K,
	freeKey func(K),
	operands []*Set[K],
	op func(*chainmap.Table[K, struct{}], chainmap.CopyFreeOpts[K, struct{}], ...*chainmap.Table[K, struct{}]) *chainmap.Table[K, struct{}],
) *Set[K] {
	var destTable *chainmap.Table[K, struct{}]
	if dest != nil {
		destTable = dest.t
	}
	tables := make([]*chainmap.Table[K, struct{}], len(operands))
	for i, s := range operands {
		tables[i] = s.t
	}
	result := op(destTable, copyFreeOpts(copyKey, freeKey), tables...)
	return &Set[K]{t: result}
}
