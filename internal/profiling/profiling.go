package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Per-frame accounting of GL calls made through the wrapper.

// Stat is the accumulated cost of one named call within the current frame
type Stat struct {
	Calls int
	Total time.Duration
}

var (
	mu    sync.Mutex
	stats = make(map[string]Stat)
)

// Track returns a stop function that records one call and its elapsed time under name.
// Usage: defer profiling.Track("gpu.DrawElements")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		s := stats[name]
		s.Calls++
		s.Total += d
		stats[name] = s
		mu.Unlock()
	}
}

// ResetFrame clears the counters. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(stats)
	mu.Unlock()
}

// Snapshot returns a copy of the current counters
func Snapshot() map[string]Stat {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]Stat, len(stats))
	for k, v := range stats {
		out[k] = v
	}
	return out
}

// TopN formats the n most expensive calls of the frame.
// Example: "gpu.DrawElements x12 1.4ms, gpu.LoadTexture x1 0.3ms"
func TopN(n int) string {
	ss := Snapshot()
	names := make([]string, 0, len(ss))
	for k := range ss {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := ss[names[i]], ss[names[j]]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return names[i] < names[j]
	})
	if n > len(names) {
		n = len(names)
	}
	parts := make([]string, 0, n)
	for _, name := range names[:n] {
		s := ss[name]
		parts = append(parts, name+" x"+strconv.Itoa(s.Calls)+" "+formatMs(s.Total))
	}
	return strings.Join(parts, ", ")
}

func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	return strconv.FormatFloat(ms, 'f', 1, 64) + "ms"
}
