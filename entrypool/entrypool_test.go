// Copyright (c) 2019 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package entrypool

import (
	"fmt"
	"testing"

	"github.com/aristanetworks/chainkv/internal/testdiff"
)

type record struct {
	hash int
	key  string
}

type countingLogger struct {
	infof int
}

func (l *countingLogger) Info(args ...interface{})            {}
func (l *countingLogger) Error(args ...interface{})           {}
func (l *countingLogger) Fatal(args ...interface{})           {}
func (l *countingLogger) Errorf(f string, a ...interface{})   {}
func (l *countingLogger) Fatalf(f string, a ...interface{})   {}
func (l *countingLogger) Infof(f string, a ...interface{}) {
	l.infof++
	_ = fmt.Sprintf(f, a...)
}

func TestAllocFreeReuse(t *testing.T) {
	p := New[record](4, 0)
	a := p.Alloc()
	a.hash = 7
	a.key = "x"
	if p.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", p.Count())
	}
	p.Free(a)
	if p.Count() != 0 {
		t.Fatalf("Count() after Free = %d, want 0", p.Count())
	}
	b := p.Alloc()
	want := &record{}
	if diff := testdiff.Diff(b, want); diff != "" {
		t.Fatalf("reused record not zeroed:\n%s", diff)
	}
}

func TestGrowsInChunks(t *testing.T) {
	p := New[record](4, 1)
	if len(p.chunks) != 1 {
		t.Fatalf("initialChunks=1 did not preallocate one chunk")
	}
	for i := 0; i < 4; i++ {
		p.Alloc()
	}
	if len(p.chunks) != 1 {
		t.Fatalf("allocating exactly perChunk records grew an extra chunk")
	}
	p.Alloc()
	if len(p.chunks) != 2 {
		t.Fatalf("5th alloc with perChunk=4 should have grown a new chunk")
	}
}

func TestClearRetainsChunks(t *testing.T) {
	p := New[record](4, 0)
	recs := make([]*record, 8)
	for i := range recs {
		recs[i] = p.Alloc()
	}
	nchunks := len(p.chunks)
	p.Clear()
	if p.Count() != 0 {
		t.Fatalf("Count() after Clear = %d, want 0", p.Count())
	}
	if len(p.chunks) != nchunks {
		t.Fatalf("Clear released chunks: got %d, want %d", len(p.chunks), nchunks)
	}
	// every slot must be allocable again
	for i := 0; i < nchunks*4; i++ {
		p.Alloc()
	}
	if p.Count() != nchunks*4 {
		t.Fatalf("Count() = %d after re-allocating all slots, want %d", p.Count(), nchunks*4)
	}
}

func TestWithLoggerLogsChunkGrowth(t *testing.T) {
	l := &countingLogger{}
	p := New[record](4, 0, WithLogger[record](l))
	if l.infof != 0 {
		t.Fatalf("infof called %d times before any Alloc, want 0", l.infof)
	}
	p.Alloc()
	if l.infof != 1 {
		t.Fatalf("infof called %d times after first chunk grow, want 1", l.infof)
	}
	for i := 0; i < 4; i++ {
		p.Alloc()
	}
	if l.infof != 2 {
		t.Fatalf("infof called %d times after second chunk grow, want 2", l.infof)
	}
}

func TestDestroy(t *testing.T) {
	p := New[record](4, 2)
	p.Alloc()
	p.Destroy()
	if p.Count() != 0 || len(p.chunks) != 0 {
		t.Fatalf("Destroy left state behind: count=%d chunks=%d", p.Count(), len(p.chunks))
	}
}
