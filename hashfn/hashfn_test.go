// Copyright (c) 2016 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashfn

import (
	"testing"

	"github.com/aristanetworks/chainkv/internal/testdiff"
)

func TestNotEqual(t *testing.T) {
	if NotEqual(1, 1) {
		t.Errorf("NotEqual(1, 1) = true, want false")
	}
	if !NotEqual(1, 2) {
		t.Errorf("NotEqual(1, 2) = false, want true")
	}
}

func TestUint32Deterministic(t *testing.T) {
	if Uint32(42) != Uint32(42) {
		t.Fatal("Uint32 is not deterministic")
	}
	if Uint32(42) == Uint32(43) {
		t.Fatal("Uint32(42) and Uint32(43) collided, suspicious for this test")
	}
}

func TestUint64FoldsHighBits(t *testing.T) {
	// A key that differs only above bit 32 must still hash differently
	// from its low 32 bits alone, otherwise the fold is silently lossy
	// in a way that defeats the whole point of folding.
	a := Uint64(0x0000000000000001)
	b := Uint64(0x0000000100000001)
	if a == b {
		t.Fatal("Uint64 ignored the high 32 bits")
	}
}

func TestQuadSensitiveToOrder(t *testing.T) {
	h1 := Quad(1, 2, 3, 4)
	h2 := Quad(4, 3, 2, 1)
	if h1 == h2 {
		t.Fatal("Quad(1,2,3,4) == Quad(4,3,2,1), want order sensitivity")
	}
}

func TestQuadDeterministic(t *testing.T) {
	got := []uint32{Quad(1, 2, 3, 4), Quad(1, 2, 3, 4)}
	want := []uint32{Quad(1, 2, 3, 4), Quad(1, 2, 3, 4)}
	if diff := testdiff.Diff(got, want); diff != "" {
		t.Fatalf("Quad not deterministic:\n%s", diff)
	}
}

func TestStringMatchesDjb2(t *testing.T) {
	// Reference value computed from h=5381; h=33*h+c over "ab" with
	// signed byte accumulation.
	var h uint32 = 5381
	h = 33*h + uint32(int8('a'))
	h = 33*h + uint32(int8('b'))
	if got := String("ab"); got != h {
		t.Fatalf("String(\"ab\") = %d, want %d", got, h)
	}
}

func TestStringSignedByte(t *testing.T) {
	// A byte ≥ 0x80 must be accumulated as its signed int8 value, not
	// its unsigned value, or this diverges from the original family.
	var h uint32 = 5381
	b := byte(0x80)
	h = 33*h + uint32(int8(b))
	if got := String(string([]byte{0x80})); got != h {
		t.Fatalf("String with high bit set = %d, want %d", got, h)
	}
}

func TestPairXOR(t *testing.T) {
	if got := Pair(0xAAAA, 0xAAAA); got != 0 {
		t.Fatalf("Pair(x, x) = %#x, want 0", got)
	}
	if got := Pair(0xAAAA, 0x5555); got != 0xFFFF {
		t.Fatalf("Pair(0xAAAA, 0x5555) = %#x, want 0xffff", got)
	}
}

func TestIntMatchesUint32ForEachWidth(t *testing.T) {
	if Int(int32(42)) != Uint32(42) {
		t.Fatal("Int[int32] diverged from Uint32")
	}
	if Int(uint16(42)) != Uint32(42) {
		t.Fatal("Int[uint16] diverged from Uint32")
	}
	n := int64(-1)
	if Int(n) != Uint32(uint32(n)) {
		t.Fatal("Int[int64] did not truncate the way Uint32 expects")
	}
}

func TestPointerRotates(t *testing.T) {
	// The low 4 bits of an aligned pointer are typically zero; Pointer
	// rotates right by 4, so those bits move to the top of the word and
	// bit 4 becomes bit 0.
	got := Pointer(0x10)
	want := uint32(0x10) >> 4
	if got != want {
		t.Fatalf("Pointer(0x10) = %#x, want %#x", got, want)
	}
}
