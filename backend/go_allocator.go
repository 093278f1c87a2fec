package backend

// GoAllocator allocates blocks from the Go heap. Free is a hand-off to
// the garbage collector: once the caller and the tracker drop their
// references the block is reclaimed on the next collection.
type GoAllocator struct{}

// NewGoAllocator creates a Go-heap backed allocator.
func NewGoAllocator() *GoAllocator {
	return &GoAllocator{}
}

// Allocate returns a zeroed block of the requested size.
func (*GoAllocator) Allocate(size int) []byte {
	if size <= 0 {
		return nil
	}

	return make([]byte, size)
}

// AllocateZeroed returns a zeroed block of count*elemSize bytes.
func (*GoAllocator) AllocateZeroed(count, elemSize int) []byte {
	total, ok := zeroedLength(count, elemSize)
	if !ok {
		return nil
	}

	return make([]byte, total)
}

// Reallocate returns a new block of the requested size carrying over
// the previous contents. The old block is left to the collector.
func (*GoAllocator) Reallocate(size int, b []byte) []byte {
	if size <= 0 {
		return nil
	}

	next := make([]byte, size)
	copy(next, b)

	return next
}

// Free drops the allocator's interest in the block.
func (*GoAllocator) Free(b []byte) {
	// Nothing to release eagerly; the collector reclaims the block
	// once no references remain.
}
