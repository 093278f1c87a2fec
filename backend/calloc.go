package backend

import "github.com/outcaste-io/ristretto/z"

// CallocAllocator allocates through ristretto's z package, which uses
// manual memory (jemalloc) when the binary is built with the jemalloc
// tag and falls back to the Go heap otherwise. The tag string feeds
// z's own allocation ledger, so leaks show up in z.Allocators() output
// as well as in the tracker's registry.
type CallocAllocator struct {
	tag string
}

// NewCallocAllocator creates a z-backed allocator. The tag labels this
// allocator's blocks in z's accounting.
func NewCallocAllocator(tag string) *CallocAllocator {
	if tag == "" {
		tag = "memtrack"
	}

	return &CallocAllocator{tag: tag}
}

// Allocate returns a zeroed block from z.
func (c *CallocAllocator) Allocate(size int) []byte {
	if size <= 0 {
		return nil
	}

	b := z.Calloc(size, c.tag)
	if len(b) == 0 {
		return nil
	}

	return b
}

// AllocateZeroed returns a zeroed block of count*elemSize bytes.
func (c *CallocAllocator) AllocateZeroed(count, elemSize int) []byte {
	total, ok := zeroedLength(count, elemSize)
	if !ok {
		return nil
	}

	return c.Allocate(total)
}

// Reallocate allocates a new block, copies the old contents, and
// releases the previous block back to z.
func (c *CallocAllocator) Reallocate(size int, b []byte) []byte {
	if size <= 0 {
		return nil
	}

	next := c.Allocate(size)
	if next == nil {
		return nil
	}

	copy(next, b)
	c.Free(b)

	return next
}

// Free returns the block to z.
func (c *CallocAllocator) Free(b []byte) {
	if b == nil {
		return
	}

	z.Free(b)
}

// AllocatedBytes reports the bytes z currently holds for all tags.
// Always zero without the jemalloc build tag.
func (c *CallocAllocator) AllocatedBytes() int64 {
	return z.NumAllocBytes()
}
