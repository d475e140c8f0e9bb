// Package perf provides lightweight function-level timing counters.
// Tracking is off by default and enabled per invocation; call sites pay
// only an atomic load when disabled.
package perf

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

var enabled atomic.Bool

// Stat accumulates timing data for one tracked function.
type Stat struct {
	Name  string
	Count int64
	Total time.Duration
}

var (
	mu    sync.Mutex
	stats = map[string]*Stat{}
)

// SetEnabled turns tracking on or off.
func SetEnabled(on bool) {
	enabled.Store(on)
}

// Track records one timed call of the named function. Use as:
//
//	defer perf.Track("analyze.Analyze")()
func Track(name string) func() {
	if !enabled.Load() {
		return func() {}
	}

	start := time.Now()
	return func() {
		elapsed := time.Since(start)

		mu.Lock()
		defer mu.Unlock()
		s, ok := stats[name]
		if !ok {
			s = &Stat{Name: name}
			stats[name] = s
		}
		s.Count++
		s.Total += elapsed
	}
}

// Snapshot returns the accumulated stats sorted by total time descending.
func Snapshot() []Stat {
	mu.Lock()
	defer mu.Unlock()

	out := make([]Stat, 0, len(stats))
	for _, s := range stats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

// Reset clears all accumulated stats.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	stats = map[string]*Stat{}
}
