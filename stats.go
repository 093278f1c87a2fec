package memtrack

import (
	"fmt"
	"io"
	"unsafe"
)

// Stats is a point-in-time snapshot of the tracker's counters. All
// fields are cumulative and non-decreasing; no operation resets them.
type Stats struct {
	// Allocations counts successful Allocate, AllocateZeroed and
	// Reallocate calls.
	Allocations uint64
	// Deallocations counts matched frees only.
	Deallocations uint64
	// StackAdded is the total bytes zero-filled through StackInit.
	StackAdded uint64
	// HeapAdded is the total bytes requested through successful heap
	// allocations.
	HeapAdded uint64
	// HeapFreed is the total bytes released through matched frees.
	HeapFreed uint64
}

// Leak describes one block still live in the registry.
type Leak struct {
	Ptr  unsafe.Pointer
	Size int
}

// Stats returns a snapshot of the counters.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.stats
}

// Live reports the number of blocks currently tracked.
func (t *Tracker) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.reg.length()
}

// Dump writes the counters to w in a stable field order. A nil writer
// falls back to the tracker's diagnostic writer. Dump never mutates
// and may be called before any allocation.
func (t *Tracker) Dump(w io.Writer) {
	if w == nil {
		w = t.tr.w
	}

	s := t.Stats()

	fmt.Fprintf(w, "[memtrack][dump][info: stack size used %d bytes ]\n", s.StackAdded)
	fmt.Fprintf(w, "[memtrack][dump][info: number of dynamic allocations %d ]\n", s.Allocations)
	fmt.Fprintf(w, "[memtrack][dump][info: number of dynamic deallocations %d ]\n", s.Deallocations)
	fmt.Fprintf(w, "[memtrack][dump][info: heap size added %d bytes ]\n", s.HeapAdded)
	fmt.Fprintf(w, "[memtrack][dump][info: heap size freed %d bytes ]\n", s.HeapFreed)
}
