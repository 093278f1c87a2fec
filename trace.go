package memtrack

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"sync"
)

// Locator identifies the call site of a tracking operation: base file
// name and line. It feeds trace lines only and has no effect on
// registry or counter semantics.
type Locator struct {
	File string
	Line int
}

// callerLocator captures the call site skip frames above the caller.
func callerLocator(skip int) Locator {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Locator{File: "unknown"}
	}

	return Locator{File: filepath.Base(file), Line: line}
}

// tracer emits line-oriented diagnostics. Emission is best effort:
// write errors are swallowed and never influence allocation outcomes.
type tracer struct {
	mu sync.Mutex
	w  io.Writer
	on bool
}

// calledAt emits a trace line for op when tracing is enabled.
func (tr *tracer) calledAt(op string, loc Locator) {
	if !tr.on || tr.w == nil {
		return
	}

	tr.mu.Lock()
	fmt.Fprintf(tr.w, "[memtrack][%s][ called at file %s line %d ]\n", op, loc.File, loc.Line)
	tr.mu.Unlock()
}

// errorf emits a diagnostic for op unconditionally.
func (tr *tracer) errorf(op, msg string) {
	if tr.w == nil {
		return
	}

	tr.mu.Lock()
	fmt.Fprintf(tr.w, "[memtrack][%s][error: %s]\n", op, msg)
	tr.mu.Unlock()
}

// leakf emits one leak-report line.
func (tr *tracer) leakf(i int, l Leak) {
	if tr.w == nil {
		return
	}

	tr.mu.Lock()
	fmt.Fprintf(tr.w, "[memtrack][leak][ block %d: %d bytes at %p ]\n", i, l.Size, l.Ptr)
	tr.mu.Unlock()
}
