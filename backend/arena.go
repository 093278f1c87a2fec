package backend

import "sync"

const arenaAlignment = 8

// ArenaAllocator carves blocks out of one fixed buffer with a bump
// pointer. Individual blocks are never returned to the arena; Reset
// reclaims the whole buffer at once. Exhaustion surfaces as a nil
// block, which makes the arena useful for exercising out-of-memory
// paths deterministically.
type ArenaAllocator struct {
	mu      sync.Mutex
	buffer  []byte
	current int
	peak    int
}

// NewArenaAllocator creates an arena with the given capacity in bytes.
func NewArenaAllocator(capacity int) *ArenaAllocator {
	if capacity <= 0 {
		capacity = 1
	}

	return &ArenaAllocator{buffer: make([]byte, capacity)}
}

// Allocate returns the next aligned block, or nil once the arena is
// exhausted.
func (a *ArenaAllocator) Allocate(size int) []byte {
	if size <= 0 {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	start := alignUp(a.current, arenaAlignment)
	if start+size > len(a.buffer) {
		return nil
	}

	a.current = start + size
	if a.current > a.peak {
		a.peak = a.current
	}

	return a.buffer[start : start+size : start+size]
}

// AllocateZeroed returns a zeroed block of count*elemSize bytes.
func (a *ArenaAllocator) AllocateZeroed(count, elemSize int) []byte {
	total, ok := zeroedLength(count, elemSize)
	if !ok {
		return nil
	}

	b := a.Allocate(total)
	for i := range b {
		b[i] = 0
	}

	return b
}

// Reallocate bumps out a fresh block and copies the old contents. The
// old block stays occupied until the next Reset.
func (a *ArenaAllocator) Reallocate(size int, b []byte) []byte {
	if size <= 0 {
		return nil
	}

	next := a.Allocate(size)
	if next == nil {
		return nil
	}

	copy(next, b)

	return next
}

// Free is a no-op; arena space is reclaimed only by Reset.
func (a *ArenaAllocator) Free(b []byte) {}

// Reset discards every outstanding block and rewinds the bump pointer.
func (a *ArenaAllocator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.current = 0
}

// Used reports the number of bytes currently consumed.
func (a *ArenaAllocator) Used() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.current
}

// PeakUsage reports the high-water mark of arena consumption.
func (a *ArenaAllocator) PeakUsage() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.peak
}

// alignUp rounds n up to the nearest multiple of alignment, which must
// be a power of two.
func alignUp(n, alignment int) int {
	return (n + alignment - 1) &^ (alignment - 1)
}
