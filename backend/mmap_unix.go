//go:build unix

package backend

import "golang.org/x/sys/unix"

// MmapAllocator serves blocks from anonymous private mappings. Memory
// is returned to the operating system immediately on Free, so a
// use-after-free faults instead of silently corrupting the heap. Kernel
// mappings are zero-filled, which covers the calloc contract for free.
type MmapAllocator struct{}

// NewMmapAllocator creates an mmap-backed allocator.
func NewMmapAllocator() *MmapAllocator {
	return &MmapAllocator{}
}

// Allocate maps a fresh anonymous region of the requested size.
func (*MmapAllocator) Allocate(size int) []byte {
	if size <= 0 {
		return nil
	}

	b, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil
	}

	return b
}

// AllocateZeroed maps count*elemSize bytes; anonymous pages arrive
// zeroed from the kernel.
func (m *MmapAllocator) AllocateZeroed(count, elemSize int) []byte {
	total, ok := zeroedLength(count, elemSize)
	if !ok {
		return nil
	}

	return m.Allocate(total)
}

// Reallocate maps a new region, copies the old contents, and unmaps
// the previous region.
func (m *MmapAllocator) Reallocate(size int, b []byte) []byte {
	if size <= 0 {
		return nil
	}

	next := m.Allocate(size)
	if next == nil {
		return nil
	}

	copy(next, b)
	m.Free(b)

	return next
}

// Free unmaps the region. The slice must be one previously returned by
// this allocator.
func (*MmapAllocator) Free(b []byte) {
	if len(b) == 0 {
		return
	}

	// Best effort: an unmap failure means b was not a live mapping,
	// which the facade already reports as an unmatched free.
	_ = unix.Munmap(b)
}
