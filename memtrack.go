// Package memtrack instruments a host memory allocator with per-block
// bookkeeping. Every allocation, reallocation and free is routed
// through a Tracker, which records live blocks in a registry, keeps
// aggregate counters, and optionally emits a trace line tagged with
// the caller's file and line.
//
// The Tracker is not an allocator itself: placement policy belongs to
// the backend package, and the Tracker only wraps whichever backend it
// was constructed with.
package memtrack

import (
	"fmt"
	"sync"

	"github.com/memtrack-go/memtrack/backend"
)

// Tracker is the tracked allocation facade. A single mutex guards the
// registry and the counters as one unit, so every operation observes
// them consistently and the facade is safe for concurrent use; the C
// shims this models carry no synchronization at all.
//
// Create one with New, hand out blocks with Allocate/AllocateZeroed/
// Reallocate, return them with Free, and report with Dump or Close.
type Tracker struct {
	mu    sync.Mutex
	reg   registry
	stats Stats

	alloc         backend.Allocator
	tr            tracer
	legacyRealloc bool
	freeGuard     bool
}

// New creates a Tracker. Without options it wraps the Go-heap
// allocator, traces nothing, and writes diagnostics to stderr.
func New(opts ...Option) *Tracker {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Tracker{
		alloc:         cfg.Allocator,
		tr:            tracer{w: cfg.TraceWriter, on: cfg.Tracing},
		legacyRealloc: cfg.LegacyRealloc,
		freeGuard:     cfg.FreeGuard,
	}
}

// caller captures the call site of the exported operation one frame
// up. Skipped entirely when tracing is off.
func (t *Tracker) caller() Locator {
	if !t.tr.on {
		return Locator{}
	}

	return callerLocator(2)
}

// Allocate requests a block of size bytes. A size of zero or less is a
// no-op returning nil; allocator exhaustion returns nil after emitting
// a diagnostic. On success the block is registered and the counters
// advance.
func (t *Tracker) Allocate(size int) []byte {
	return t.allocate(size, t.caller())
}

func (t *Tracker) allocate(size int, loc Locator) []byte {
	if size <= 0 {
		return nil
	}

	b := t.alloc.Allocate(size)
	if b == nil {
		t.tr.errorf("alloc", "out of memory")

		return nil
	}

	t.mu.Lock()
	t.reg.insert(blockPtr(b), size)
	t.stats.Allocations++
	t.stats.HeapAdded += uint64(size)
	t.mu.Unlock()

	t.tr.calledAt("alloc", loc)

	return b
}

// AllocateZeroed requests a zeroed block of count elements of elemSize
// bytes each. Counter and registry bookkeeping uses elemSize alone,
// matching the calloc accounting of the C shims this package models;
// the full block length is still count*elemSize.
func (t *Tracker) AllocateZeroed(count, elemSize int) []byte {
	return t.allocateZeroed(count, elemSize, t.caller())
}

func (t *Tracker) allocateZeroed(count, elemSize int, loc Locator) []byte {
	if count <= 0 || elemSize <= 0 {
		return nil
	}

	b := t.alloc.AllocateZeroed(count, elemSize)
	if b == nil {
		t.tr.errorf("calloc", "out of memory")

		return nil
	}

	t.mu.Lock()
	t.reg.insert(blockPtr(b), elemSize)
	t.stats.Allocations++
	t.stats.HeapAdded += uint64(elemSize)
	t.mu.Unlock()

	t.tr.calledAt("calloc", loc)

	return b
}

// Reallocate resizes b to size bytes, preserving contents. A size of
// zero or less is a no-op returning nil. A nil b behaves like
// Allocate. By default the stale record for b is retired and its size
// added to HeapFreed; with WithLegacyRealloc the record stays behind,
// pinned, exactly like the insert-only realloc shims this models.
func (t *Tracker) Reallocate(b []byte, size int) []byte {
	return t.reallocate(b, size, t.caller())
}

func (t *Tracker) reallocate(b []byte, size int, loc Locator) []byte {
	if size <= 0 {
		return nil
	}

	oldPtr := blockPtr(b)

	next := t.alloc.Reallocate(size, b)
	if next == nil {
		t.tr.errorf("realloc", "out of memory")

		return nil
	}

	t.mu.Lock()
	if !t.legacyRealloc {
		if oldSize, ok := t.reg.findAndRemove(oldPtr); ok {
			t.stats.HeapFreed += uint64(oldSize)
		}
	}

	t.reg.insert(blockPtr(next), size)
	t.stats.Allocations++
	t.stats.HeapAdded += uint64(size)
	t.mu.Unlock()

	t.tr.calledAt("realloc", loc)

	return next
}

// Free releases b and reports whether it was tracked. The underlying
// release runs even for unmatched blocks unless the tracker was built
// with WithFreeGuard; the permissive default preserves the behavior of
// the shims this models, double-free hazard included. Counters advance
// only on a matched free, so the second Free of the same block reports
// false and leaves Deallocations untouched.
func (t *Tracker) Free(b []byte) bool {
	return t.free(b, t.caller())
}

func (t *Tracker) free(b []byte, loc Locator) bool {
	ptr := blockPtr(b)

	t.mu.Lock()
	size, matched := t.reg.findAndRemove(ptr)
	if matched {
		t.stats.Deallocations++
		t.stats.HeapFreed += uint64(size)
	}
	t.mu.Unlock()

	if matched || !t.freeGuard {
		t.alloc.Free(b)
	}

	t.tr.calledAt("free", loc)

	return matched
}

// StackInit zero-fills a caller-owned region and accounts its length
// under StackAdded. A nil region reports false; an empty non-nil
// region succeeds. The region is never registered: it is not a heap
// block and cannot be freed through the tracker.
func (t *Tracker) StackInit(region []byte) bool {
	return t.stackInit(region, t.caller())
}

func (t *Tracker) stackInit(region []byte, loc Locator) bool {
	if region == nil {
		return false
	}

	for i := range region {
		region[i] = 0
	}

	t.mu.Lock()
	t.stats.StackAdded += uint64(len(region))
	t.mu.Unlock()

	t.tr.calledAt("declare", loc)

	return true
}

// Leaks returns the blocks still tracked, oldest first.
func (t *Tracker) Leaks() []Leak {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.reg.snapshot()
}

// Close writes a leak report for any still-live blocks to the
// diagnostic writer and returns an error summarizing them. A tracker
// with an empty registry closes cleanly. Close does not release the
// leaked blocks; they stay pinned for post-mortem inspection.
func (t *Tracker) Close() error {
	leaks := t.Leaks()
	if len(leaks) == 0 {
		return nil
	}

	total := 0
	for i, l := range leaks {
		t.tr.leakf(i, l)
		total += l.Size
	}

	return fmt.Errorf("memtrack: %d live allocations at close (%d bytes)", len(leaks), total)
}
