package memtrack

import "io"

// DefaultTracker is the process-wide tracker used by the package-level
// functions. It wraps the Go-heap allocator with tracing off. Programs
// that need different settings replace it once at startup via
// Initialize; the explicit-context API on Tracker remains the primary
// interface.
var DefaultTracker = New()

// Initialize replaces the default tracker. Call before any allocation
// goes through the package-level functions.
func Initialize(opts ...Option) {
	DefaultTracker = New(opts...)
}

// Allocate requests a block from the default tracker.
func Allocate(size int) []byte {
	t := DefaultTracker

	return t.allocate(size, t.caller())
}

// AllocateZeroed requests a zeroed block from the default tracker.
func AllocateZeroed(count, elemSize int) []byte {
	t := DefaultTracker

	return t.allocateZeroed(count, elemSize, t.caller())
}

// Reallocate resizes a block through the default tracker.
func Reallocate(b []byte, size int) []byte {
	t := DefaultTracker

	return t.reallocate(b, size, t.caller())
}

// Free releases a block through the default tracker.
func Free(b []byte) bool {
	t := DefaultTracker

	return t.free(b, t.caller())
}

// StackInit zero-fills a region through the default tracker.
func StackInit(region []byte) bool {
	t := DefaultTracker

	return t.stackInit(region, t.caller())
}

// GetStats snapshots the default tracker's counters.
func GetStats() Stats {
	return DefaultTracker.Stats()
}

// Dump writes the default tracker's counters to w.
func Dump(w io.Writer) {
	DefaultTracker.Dump(w)
}
