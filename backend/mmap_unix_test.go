//go:build unix

package backend

import "testing"

func TestMmapAllocator(t *testing.T) {
	a := NewMmapAllocator()

	t.Run("Roundtrip", func(t *testing.T) { roundtrip(t, a) })
	t.Run("InvalidSizes", func(t *testing.T) { checkInvalidSizes(t, a) })
	t.Run("Zeroed", func(t *testing.T) { checkZeroed(t, a) })

	t.Run("NilFree", func(t *testing.T) {
		a.Free(nil) // must not panic
	})

	t.Run("SubPageSize", func(t *testing.T) {
		b := a.Allocate(1)
		if b == nil {
			t.Fatal("one-byte mapping failed")
		}

		if len(b) != 1 {
			t.Errorf("block length = %d, want 1", len(b))
		}

		b[0] = 0xAA
		a.Free(b)
	})
}
