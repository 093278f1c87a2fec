//go:build !unix

package backend

// MmapAllocator is unavailable on this platform; every request fails,
// which the facade surfaces as allocator exhaustion.
type MmapAllocator struct{}

// NewMmapAllocator creates the stub allocator.
func NewMmapAllocator() *MmapAllocator {
	return &MmapAllocator{}
}

// Allocate always fails on non-unix platforms.
func (*MmapAllocator) Allocate(size int) []byte { return nil }

// AllocateZeroed always fails on non-unix platforms.
func (*MmapAllocator) AllocateZeroed(count, elemSize int) []byte { return nil }

// Reallocate always fails on non-unix platforms.
func (*MmapAllocator) Reallocate(size int, b []byte) []byte { return nil }

// Free is a no-op on non-unix platforms.
func (*MmapAllocator) Free(b []byte) {}
