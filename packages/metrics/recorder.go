// Package metrics provides an opt-in latency recorder for the API client.
// Durations are tracked in HDR histograms so percentile snapshots stay cheap
// even across long sessions.
package metrics

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Recorder accumulates request latencies, overall and per route. It is safe
// for concurrent use and plugs into client.WithRecorder.
type Recorder struct {
	mu        sync.Mutex
	histogram *hdrhistogram.Histogram
	routes    map[string]*hdrhistogram.Histogram
	count     int64
}

// Stats is a percentile snapshot of recorded latencies.
type Stats struct {
	Count int64
	Mean  time.Duration
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
	Max   time.Duration
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		// 1us to 60s range, 3 significant digits
		histogram: hdrhistogram.New(1, 60_000_000, 3),
		routes:    make(map[string]*hdrhistogram.Histogram),
	}
}

// Record implements client.LatencyRecorder.
func (r *Recorder) Record(method, path string, elapsed time.Duration) {
	latencyUs := elapsed.Microseconds()
	if latencyUs < 1 {
		latencyUs = 1
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.count++
	_ = r.histogram.RecordValue(latencyUs)

	route := method + " " + path
	h, ok := r.routes[route]
	if !ok {
		h = hdrhistogram.New(1, 60_000_000, 3)
		r.routes[route] = h
	}
	_ = h.RecordValue(latencyUs)
}

// Snapshot returns overall latency statistics.
func (r *Recorder) Snapshot() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return statsFrom(r.histogram, r.count)
}

// Routes returns per-route statistics keyed by "METHOD path".
func (r *Recorder) Routes() map[string]Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]Stats, len(r.routes))
	for route, h := range r.routes {
		out[route] = statsFrom(h, h.TotalCount())
	}
	return out
}

func statsFrom(h *hdrhistogram.Histogram, count int64) Stats {
	return Stats{
		Count: count,
		Mean:  time.Duration(h.Mean()) * time.Microsecond,
		P50:   time.Duration(h.ValueAtQuantile(50)) * time.Microsecond,
		P95:   time.Duration(h.ValueAtQuantile(95)) * time.Microsecond,
		P99:   time.Duration(h.ValueAtQuantile(99)) * time.Microsecond,
		Max:   time.Duration(h.Max()) * time.Microsecond,
	}
}
