// Copyright (c) 2019 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package chainset

import (
	"sort"
	"testing"

	"github.com/aristanetworks/chainkv/chainmap"
	"github.com/aristanetworks/chainkv/hashfn"
	"github.com/aristanetworks/chainkv/internal/testdiff"
)

func newStrSet(keys ...string) *Set[string] {
	s := New[string](hashfn.String, hashfn.NotEqual[string])
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

func sortedKeys(s *Set[string]) []string {
	var ks []string
	for it := s.Iterate(); it.Step(); {
		ks = append(ks, it.Key())
	}
	sort.Strings(ks)
	return ks
}

func TestAddAndHasKey(t *testing.T) {
	s := newStrSet("a", "b")
	if !s.HasKey("a") {
		t.Fatal("HasKey(a) = false, want true")
	}
	if s.HasKey("c") {
		t.Fatal("HasKey(c) = true, want false")
	}
	if s.Add("a") {
		t.Fatal("Add of existing member reported true")
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
}

func TestRemove(t *testing.T) {
	s := newStrSet("a", "b")
	if !s.Remove("a", nil) {
		t.Fatal("Remove(a) = false, want true")
	}
	if s.HasKey("a") {
		t.Fatal("a still present after Remove")
	}
	if s.Remove("a", nil) {
		t.Fatal("Remove of already-removed key reported true")
	}
}

func TestCopyIndependence(t *testing.T) {
	s := newStrSet("a", "b")
	c := s.Copy()
	c.Add("z")
	if s.HasKey("z") {
		t.Fatal("mutating the copy affected the original set")
	}
}

func TestSetAlgebra(t *testing.T) {
	a := newStrSet("1", "2", "3")
	b := newStrSet("2", "3", "4")
	c := newStrSet("3", "4", "5")

	u := Union[string](nil, nil, nil, a, b)
	if got := sortedKeys(u); len(got) != 4 {
		t.Fatalf("Union keys = %v, want 4 distinct keys", got)
	}

	i := Intersection[string](nil, nil, nil, a, b)
	if got := sortedKeys(i); len(got) != 2 || got[0] != "2" || got[1] != "3" {
		t.Fatalf("Intersection keys = %v, want [2 3]", got)
	}

	d := Difference[string](nil, nil, nil, a, b)
	if got := sortedKeys(d); len(got) != 1 || got[0] != "1" {
		t.Fatalf("Difference keys = %v, want [1]", got)
	}

	sd := SymmetricDifference[string](nil, nil, nil, a, b, c)
	if diff := testdiff.Diff(sortedKeys(sd), []string{"1", "5"}); diff != "" {
		t.Fatalf("SymmetricDifference keys differ:\n%s", diff)
	}
}

func TestSetClearExReservesCapacity(t *testing.T) {
	s := newStrSet("a", "b", "c")
	s.ClearEx(150, nil)
	if s.Len() != 0 {
		t.Fatalf("Len() after ClearEx = %d, want 0", s.Len())
	}
	if s.HasKey("a") {
		t.Fatal("ClearEx left a stale member behind")
	}
	s.Add("z")
	if !s.HasKey("z") {
		t.Fatal("set unusable after ClearEx")
	}
}

func TestSetFlagSetAllowShrink(t *testing.T) {
	s := New[int](func(k int) uint32 { return hashfn.Int(k) }, hashfn.NotEqual[int])
	for i := 0; i < 10000; i++ {
		s.Add(i)
	}
	for i := 0; i < 9500; i++ {
		s.Remove(i, nil)
	}
	lenBefore := s.Table().Len()
	s.FlagSet(chainmap.FlagAllowShrink)
	if s.Table().Len() != lenBefore {
		t.Fatal("FlagSet should not change Len")
	}
	s.FlagClear(chainmap.FlagAllowShrink)
}

func TestSetRelations(t *testing.T) {
	a := newStrSet("1", "2")
	b := newStrSet("1", "2", "3")

	if !Subset(a, b) {
		t.Fatal("Subset(a, b) = false, want true")
	}
	if !Superset(b, a) {
		t.Fatal("Superset(b, a) = false, want true")
	}
	if !Disjoint(a, newStrSet("9")) {
		t.Fatal("Disjoint with an unrelated set = false, want true")
	}
	if Equal(a, b) {
		t.Fatal("Equal(a, b) = true, want false")
	}
	if !Equal(a, a.Copy()) {
		t.Fatal("Equal(a, a.Copy()) = false, want true")
	}
}
