package memtrack

import (
	"testing"
	"unsafe"
)

func makeBlocks(n, size int) ([][]byte, []unsafe.Pointer) {
	blocks := make([][]byte, n)
	ptrs := make([]unsafe.Pointer, n)

	for i := range blocks {
		blocks[i] = make([]byte, size)
		ptrs[i] = blockPtr(blocks[i])
	}

	return blocks, ptrs
}

// TestRegistry covers the live-allocation list in isolation
func TestRegistry(t *testing.T) {
	t.Run("EmptyFindRemove", func(t *testing.T) {
		var r registry

		if _, ok := r.findAndRemove(nil); ok {
			t.Error("empty registry should report no match")
		}

		if r.length() != 0 {
			t.Errorf("empty registry length = %d, want 0", r.length())
		}
	})

	t.Run("InsertThenRemove", func(t *testing.T) {
		var r registry

		_, ptrs := makeBlocks(1, 16)
		r.insert(ptrs[0], 16)

		if r.length() != 1 {
			t.Fatalf("length = %d, want 1", r.length())
		}

		size, ok := r.findAndRemove(ptrs[0])
		if !ok {
			t.Fatal("inserted pointer not found")
		}

		if size != 16 {
			t.Errorf("removed size = %d, want 16", size)
		}

		if r.length() != 0 || r.tail != nil {
			t.Error("removing the sole record should reset the registry to empty")
		}
	})

	t.Run("RepeatRemoval", func(t *testing.T) {
		var r registry

		_, ptrs := makeBlocks(1, 8)
		r.insert(ptrs[0], 8)

		if _, ok := r.findAndRemove(ptrs[0]); !ok {
			t.Fatal("first removal should match")
		}

		if _, ok := r.findAndRemove(ptrs[0]); ok {
			t.Error("second removal of the same pointer should report no match")
		}
	})

	t.Run("MiddleRemovalRepairsLinks", func(t *testing.T) {
		var r registry

		_, ptrs := makeBlocks(3, 8)
		for i, p := range ptrs {
			r.insert(p, 8*(i+1))
		}

		if _, ok := r.findAndRemove(ptrs[1]); !ok {
			t.Fatal("middle record not found")
		}

		// Neighbors must still be reachable in both directions.
		if r.tail.prev.next != r.tail {
			t.Error("forward link not repaired after middle removal")
		}

		for _, want := range []unsafe.Pointer{ptrs[2], ptrs[0]} {
			if _, ok := r.findAndRemove(want); !ok {
				t.Errorf("record %p unreachable after middle removal", want)
			}
		}

		if r.length() != 0 {
			t.Errorf("length = %d after removing all records, want 0", r.length())
		}
	})

	t.Run("TailRemovalRepointsTail", func(t *testing.T) {
		var r registry

		_, ptrs := makeBlocks(2, 8)
		r.insert(ptrs[0], 8)
		r.insert(ptrs[1], 8)

		if _, ok := r.findAndRemove(ptrs[1]); !ok {
			t.Fatal("tail record not found")
		}

		if r.tail == nil || r.tail.ptr != ptrs[0] {
			t.Error("tail should point at the remaining record")
		}

		if r.tail.next != nil {
			t.Error("remaining tail should have no next link")
		}
	})

	t.Run("SnapshotOrder", func(t *testing.T) {
		var r registry

		_, ptrs := makeBlocks(3, 4)
		for i, p := range ptrs {
			r.insert(p, i+1)
		}

		leaks := r.snapshot()
		if len(leaks) != 3 {
			t.Fatalf("snapshot length = %d, want 3", len(leaks))
		}

		for i, l := range leaks {
			if l.Ptr != ptrs[i] {
				t.Errorf("snapshot[%d] = %p, want %p (oldest first)", i, l.Ptr, ptrs[i])
			}

			if l.Size != i+1 {
				t.Errorf("snapshot[%d].Size = %d, want %d", i, l.Size, i+1)
			}
		}
	})
}

func TestBlockPtr(t *testing.T) {
	if blockPtr(nil) != nil {
		t.Error("nil block should have no identity")
	}

	if blockPtr([]byte{}) != nil {
		t.Error("empty block should have no identity")
	}

	b := make([]byte, 4)
	if blockPtr(b) != unsafe.Pointer(&b[0]) {
		t.Error("block identity should be the address of the first byte")
	}
}
