package memtrack

import "unsafe"

// record is one live heap allocation. Records are owned exclusively by
// the registry; callers never hold one.
type record struct {
	next *record
	prev *record
	ptr  unsafe.Pointer
	size int
}

// registry is the live-allocation list: doubly linked, anchored at the
// most recently inserted record. Holding a real pointer in each record
// pins the block for the collector, so a live record's identity can
// never be recycled out from under the list.
//
// The registry is not safe for concurrent use; the Tracker serializes
// access together with its counters under one mutex.
type registry struct {
	tail *record
	n    int
}

// insert appends a record for ptr at the tail.
func (r *registry) insert(ptr unsafe.Pointer, size int) {
	rec := &record{ptr: ptr, size: size, prev: r.tail}
	if r.tail != nil {
		r.tail.next = rec
	}

	r.tail = rec
	r.n++
}

// findAndRemove scans from the tail toward the head for the first
// record matching ptr, unlinks it, and returns its size. The scan
// direction favors the free-soon-after-alloc pattern. Reports false
// when ptr is not tracked, including on a repeat removal.
func (r *registry) findAndRemove(ptr unsafe.Pointer) (int, bool) {
	for rec := r.tail; rec != nil; rec = rec.prev {
		if rec.ptr != ptr {
			continue
		}

		if rec.prev != nil {
			rec.prev.next = rec.next
		}

		if rec.next != nil {
			rec.next.prev = rec.prev
		}

		if r.tail == rec {
			r.tail = rec.prev
		}

		rec.next = nil
		rec.prev = nil
		r.n--

		return rec.size, true
	}

	return 0, false
}

// length reports the number of live records.
func (r *registry) length() int {
	return r.n
}

// snapshot copies the live records oldest-first.
func (r *registry) snapshot() []Leak {
	leaks := make([]Leak, 0, r.n)
	for rec := r.tail; rec != nil; rec = rec.prev {
		leaks = append(leaks, Leak{Ptr: rec.ptr, Size: rec.size})
	}

	for i, j := 0, len(leaks)-1; i < j; i, j = i+1, j-1 {
		leaks[i], leaks[j] = leaks[j], leaks[i]
	}

	return leaks
}

// blockPtr returns the identity of a block: the address of its first
// byte. Nil and empty blocks have no identity.
func blockPtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}

	return unsafe.Pointer(&b[0])
}
