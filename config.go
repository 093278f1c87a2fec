package memtrack

import (
	"io"
	"os"

	"github.com/memtrack-go/memtrack/backend"
)

// Config holds construction-time settings for a Tracker.
type Config struct {
	// Allocator is the underlying block allocator. Defaults to the
	// Go-heap allocator.
	Allocator backend.Allocator
	// TraceWriter receives trace lines and diagnostics. Defaults to
	// os.Stderr.
	TraceWriter io.Writer
	// Tracing enables per-call trace lines with the caller's file and
	// line. Error diagnostics are emitted regardless of this flag.
	Tracing bool
	// LegacyRealloc keeps the stale registry record of a reallocated
	// block instead of retiring it, reproducing the accounting leak of
	// classic malloc shims that only ever insert on realloc.
	LegacyRealloc bool
	// FreeGuard suppresses the underlying release for blocks the
	// registry does not know. Off by default: an unmatched Free still
	// reaches the underlying allocator.
	FreeGuard bool
}

// Option configures a Tracker at construction time.
type Option func(*Config)

func defaultConfig() *Config {
	return &Config{
		Allocator:   backend.NewGoAllocator(),
		TraceWriter: os.Stderr,
	}
}

// WithAllocator selects the underlying allocator.
func WithAllocator(a backend.Allocator) Option {
	return func(c *Config) {
		if a != nil {
			c.Allocator = a
		}
	}
}

// WithTraceWriter redirects trace lines and diagnostics.
func WithTraceWriter(w io.Writer) Option {
	return func(c *Config) {
		if w != nil {
			c.TraceWriter = w
		}
	}
}

// WithTracing toggles per-call trace lines.
func WithTracing(enabled bool) Option {
	return func(c *Config) { c.Tracing = enabled }
}

// WithLegacyRealloc toggles bug-compatible reallocation bookkeeping.
func WithLegacyRealloc(enabled bool) Option {
	return func(c *Config) { c.LegacyRealloc = enabled }
}

// WithFreeGuard toggles suppression of unmatched underlying frees.
func WithFreeGuard(enabled bool) Option {
	return func(c *Config) { c.FreeGuard = enabled }
}
