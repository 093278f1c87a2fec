// Package backend provides the block allocators the tracking facade
// instruments. Every implementation hands out plain byte slices and
// reports failure by returning nil rather than panicking, so callers
// can distinguish allocator exhaustion from programmer error.
package backend

// Allocator is the contract the tracking facade delegates to.
//
// Allocate, AllocateZeroed and Reallocate return nil when the request
// cannot be satisfied. Reallocate preserves min(len(b), size) bytes of
// the previous block and releases it. Free tolerates nil.
type Allocator interface {
	Allocate(size int) []byte
	AllocateZeroed(count, elemSize int) []byte
	Reallocate(size int, b []byte) []byte
	Free(b []byte)
}

const maxInt = int(^uint(0) >> 1)

// zeroedLength validates a calloc-style request and returns the total
// byte length, guarding against multiplication overflow.
func zeroedLength(count, elemSize int) (int, bool) {
	if count <= 0 || elemSize <= 0 {
		return 0, false
	}

	if count > maxInt/elemSize {
		return 0, false
	}

	return count * elemSize, true
}
