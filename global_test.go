package memtrack

import (
	"bytes"
	"strings"
	"testing"
)

// TestDefaultTracker exercises the package-level convenience API
func TestDefaultTracker(t *testing.T) {
	saved := DefaultTracker
	defer func() { DefaultTracker = saved }()

	var out bytes.Buffer

	Initialize(WithTracing(true), WithTraceWriter(&out))

	b := Allocate(64)
	if b == nil {
		t.Fatal("allocation failed")
	}

	z := AllocateZeroed(2, 16)
	if z == nil {
		t.Fatal("zeroed allocation failed")
	}

	b = Reallocate(b, 128)
	if b == nil {
		t.Fatal("reallocation failed")
	}

	if !StackInit(make([]byte, 8)) {
		t.Error("stack init failed")
	}

	if !Free(b) || !Free(z) {
		t.Error("frees of tracked blocks should match")
	}

	s := GetStats()
	if s.Allocations != 3 {
		t.Errorf("Allocations = %d, want 3", s.Allocations)
	}

	if s.Deallocations != 2 {
		t.Errorf("Deallocations = %d, want 2", s.Deallocations)
	}

	if s.StackAdded != 8 {
		t.Errorf("StackAdded = %d, want 8", s.StackAdded)
	}

	// Package-level wrappers must report the caller's file, not
	// global.go.
	if !strings.Contains(out.String(), "global_test.go") {
		t.Errorf("trace lines should carry this file's name, got %q", out.String())
	}

	var dump bytes.Buffer
	Dump(&dump)

	if got := strings.Count(dump.String(), "\n"); got != 5 {
		t.Errorf("dump wrote %d lines, want 5", got)
	}

	if err := DefaultTracker.Close(); err != nil {
		t.Errorf("default tracker should close cleanly, got %v", err)
	}
}
