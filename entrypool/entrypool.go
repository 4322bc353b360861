// Copyright (c) 2019 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package entrypool implements the chunked fixed-size record allocator
// that chainmap.Table treats as an external collaborator: it only needs
// alloc/free/clear/destroy/count, so the pool is free to manage storage
// however it likes as long as alloc and free stay O(1) amortized.
package entrypool

import "github.com/aristanetworks/chainkv/logger"

// Pool is the contract chainmap.Table consumes for entry storage. It is
// generic over the record type so a single implementation serves both
// map entries and set entries.
type Pool[T any] interface {
	// Alloc returns a pointer to a zeroed record. The pointer remains
	// valid until passed back to Free, or until Clear/Destroy runs.
	Alloc() *T
	// Free returns rec to the pool for reuse. rec must have come from
	// this pool and must not be used again afterward.
	Free(rec *T)
	// Clear wipes every live record without necessarily releasing the
	// chunks backing them, so a churn-heavy caller can reset state
	// without paying for reallocation on the next burst of inserts.
	Clear()
	// Destroy releases every chunk. The pool must not be used again.
	Destroy()
	// Count reports the number of records currently allocated (not
	// returned to Free). Used only in assertions by callers.
	Count() int
}

// ChunkPool is the concrete Pool implementation: records are carved out
// of fixed-size chunks allocated in bulk, and freed records are tracked
// on a simple free list. A new chunk is only allocated when the free
// list runs dry, so steady-state churn never touches the Go allocator.
type ChunkPool[T any] struct {
	perChunk int
	chunks   [][]T
	free     []*T
	count    int
	log      logger.Logger
}

// Option configures a ChunkPool at construction time.
type Option[T any] func(*ChunkPool[T])

// WithLogger attaches a logger.Logger that receives an Info line every
// time the pool grows by a chunk. Nil (the default) means no logging.
func WithLogger[T any](l logger.Logger) Option[T] {
	return func(p *ChunkPool[T]) { p.log = l }
}

// New creates a pool that allocates perChunk records at a time, with
// initialChunks chunks reserved up front (0 is legal; the first Alloc
// will grow the pool).
func New[T any](perChunk, initialChunks int, opts ...Option[T]) *ChunkPool[T] {
	if perChunk <= 0 {
		perChunk = 64
	}
	p := &ChunkPool[T]{perChunk: perChunk}
	for _, opt := range opts {
		opt(p)
	}
	for i := 0; i < initialChunks; i++ {
		p.growChunk()
	}
	return p
}

func (p *ChunkPool[T]) growChunk() {
	chunk := make([]T, p.perChunk)
	p.chunks = append(p.chunks, chunk)
	for i := range chunk {
		p.free = append(p.free, &chunk[i])
	}
	if p.log != nil {
		p.log.Infof("entrypool: grew to %d chunks (%d records)", len(p.chunks), len(p.chunks)*p.perChunk)
	}
}

// Alloc implements Pool.
func (p *ChunkPool[T]) Alloc() *T {
	if len(p.free) == 0 {
		p.growChunk()
	}
	n := len(p.free) - 1
	rec := p.free[n]
	p.free = p.free[:n]
	p.count++
	return rec
}

// Free implements Pool.
func (p *ChunkPool[T]) Free(rec *T) {
	var zero T
	*rec = zero
	p.free = append(p.free, rec)
	p.count--
}

// Clear implements Pool. It re-walks every chunk and rebuilds the free
// list from scratch, which is O(capacity) but retains the chunks
// themselves for the next round of inserts.
func (p *ChunkPool[T]) Clear() {
	p.free = p.free[:0]
	var zero T
	for ci := range p.chunks {
		chunk := p.chunks[ci]
		for i := range chunk {
			chunk[i] = zero
			p.free = append(p.free, &chunk[i])
		}
	}
	p.count = 0
}

// Destroy implements Pool.
func (p *ChunkPool[T]) Destroy() {
	p.chunks = nil
	p.free = nil
	p.count = 0
}

// Count implements Pool.
func (p *ChunkPool[T]) Count() int {
	return p.count
}
