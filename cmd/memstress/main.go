// Command memstress drives a randomized allocate/reallocate/free
// workload through a tracker and prints the counter dump and leak
// report. It exists to exercise every backend end to end and to give a
// quick feel for the trace output.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/memtrack-go/memtrack"
	"github.com/memtrack-go/memtrack/backend"
)

func main() {
	var (
		backendName = flag.String("backend", "go", "underlying allocator: go, arena, mmap, calloc, arrow")
		ops         = flag.Int("ops", 10000, "number of workload operations")
		minSize     = flag.Int("min-size", 16, "minimum allocation size in bytes")
		maxSize     = flag.Int("max-size", 4096, "maximum allocation size in bytes")
		liveTarget  = flag.Int("live", 256, "target number of live blocks")
		arenaCap    = flag.Int("arena-cap", 64<<20, "arena capacity in bytes (arena backend only)")
		leave       = flag.Int("leave", 0, "blocks to leave unfreed, to demonstrate the leak report")
		trace       = flag.Bool("trace", false, "emit per-call trace lines")
		legacy      = flag.Bool("legacy-realloc", false, "keep stale registry records on realloc")
		seed        = flag.Int64("seed", 1, "workload random seed")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Tracked allocation workload driver.\n\n")
		fmt.Fprintf(os.Stderr, "OPTIONS:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	alloc, err := pickBackend(*backendName, *arenaCap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "memstress: %v\n", err)
		os.Exit(2)
	}

	tracker := memtrack.New(
		memtrack.WithAllocator(alloc),
		memtrack.WithTracing(*trace),
		memtrack.WithLegacyRealloc(*legacy),
	)

	run(tracker, *ops, *minSize, *maxSize, *liveTarget, *leave, *seed)

	tracker.Dump(os.Stdout)

	if err := tracker.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "memstress: %v\n", err)
		os.Exit(1)
	}
}

func pickBackend(name string, arenaCap int) (backend.Allocator, error) {
	switch name {
	case "go":
		return backend.NewGoAllocator(), nil
	case "arena":
		return backend.NewArenaAllocator(arenaCap), nil
	case "mmap":
		return backend.NewMmapAllocator(), nil
	case "calloc":
		return backend.NewCallocAllocator("memstress"), nil
	case "arrow":
		return backend.NewArrowAllocator(nil), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

func run(tracker *memtrack.Tracker, ops, minSize, maxSize, liveTarget, leave int, seed int64) {
	if maxSize < minSize {
		maxSize = minSize
	}

	rng := rand.New(rand.NewSource(seed))
	live := make([][]byte, 0, liveTarget)

	size := func() int { return minSize + rng.Intn(maxSize-minSize+1) }

	var scratch [128]byte
	tracker.StackInit(scratch[:])

	for i := 0; i < ops; i++ {
		switch {
		case len(live) < liveTarget && rng.Intn(4) != 0:
			var b []byte
			if rng.Intn(8) == 0 {
				b = tracker.AllocateZeroed(1, size())
			} else {
				b = tracker.Allocate(size())
			}

			if b != nil {
				live = append(live, b)
			}
		case len(live) > 0 && rng.Intn(8) == 0:
			j := rng.Intn(len(live))
			if b := tracker.Reallocate(live[j], size()); b != nil {
				live[j] = b
			}
		case len(live) > 0:
			j := rng.Intn(len(live))
			tracker.Free(live[j])
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
		}
	}

	for len(live) > leave {
		tracker.Free(live[len(live)-1])
		live = live[:len(live)-1]
	}
}
