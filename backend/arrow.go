package backend

import (
	arrowmem "github.com/apache/arrow-go/v18/arrow/memory"
)

// ArrowAllocator adapts an Arrow memory.Allocator so the tracking
// facade can instrument Arrow buffer traffic. Arrow's own allocators
// already align to 64 bytes; this adapter only reshapes the contract
// (nil on invalid size, explicit zeroing for calloc-style requests).
type ArrowAllocator struct {
	mem arrowmem.Allocator
}

// NewArrowAllocator wraps the given Arrow allocator; nil selects
// Arrow's default.
func NewArrowAllocator(mem arrowmem.Allocator) *ArrowAllocator {
	if mem == nil {
		mem = arrowmem.DefaultAllocator
	}

	return &ArrowAllocator{mem: mem}
}

// Allocate returns a block from the wrapped Arrow allocator.
func (a *ArrowAllocator) Allocate(size int) []byte {
	if size <= 0 {
		return nil
	}

	return a.mem.Allocate(size)
}

// AllocateZeroed returns a zeroed block of count*elemSize bytes. The
// cgo-backed Arrow allocator does not guarantee zeroed blocks, so the
// adapter clears explicitly.
func (a *ArrowAllocator) AllocateZeroed(count, elemSize int) []byte {
	total, ok := zeroedLength(count, elemSize)
	if !ok {
		return nil
	}

	b := a.mem.Allocate(total)
	for i := range b {
		b[i] = 0
	}

	return b
}

// Reallocate resizes through the wrapped allocator, which preserves
// contents and releases the old block.
func (a *ArrowAllocator) Reallocate(size int, b []byte) []byte {
	if size <= 0 {
		return nil
	}

	if b == nil {
		return a.Allocate(size)
	}

	return a.mem.Reallocate(size, b)
}

// Free returns the block to the wrapped allocator.
func (a *ArrowAllocator) Free(b []byte) {
	if b == nil {
		return
	}

	a.mem.Free(b)
}
