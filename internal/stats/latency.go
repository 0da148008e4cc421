// Package stats records contract-call latencies and summarizes them with
// nearest-rank percentiles.
package stats

import (
	"math"
	"sort"
	"sync"
	"time"
)

// TailLatency holds the percentiles of one set of samples.
type TailLatency struct {
	P50, P95, Max time.Duration
}

// CalculateTailLatency returns the percentiles of latencies without
// reordering the caller's slice.
func CalculateTailLatency(latencies []time.Duration) TailLatency {
	if len(latencies) == 0 {
		return TailLatency{}
	}

	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return TailLatency{
		P50: Percentile(sorted, 0.50),
		P95: Percentile(sorted, 0.95),
		Max: sorted[len(sorted)-1],
	}
}

// Percentile returns the nearest-rank p-quantile (0 < p <= 1) of sorted.
func Percentile(sorted []time.Duration, p float64) time.Duration {
	n := len(sorted)
	if n == 0 {
		return 0
	}

	index := int(math.Ceil(float64(n)*p)) - 1
	index = min(max(index, 0), n-1)
	return sorted[index]
}

// MethodStats summarizes every call of one contract method.
type MethodStats struct {
	Method   string
	Calls    int
	Failures int
	TailLatency
}

// Recorder collects call samples. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	order   []string
	samples map[string][]time.Duration
	fails   map[string]int
}

func NewRecorder() *Recorder {
	return &Recorder{samples: map[string][]time.Duration{}, fails: map[string]int{}}
}

// Record adds one call. Failed calls count toward Failures but not latency.
func (r *Recorder) Record(method string, d time.Duration, failed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, seen := r.samples[method]; !seen {
		r.order = append(r.order, method)
		r.samples[method] = nil
	}
	if failed {
		r.fails[method]++
		return
	}
	r.samples[method] = append(r.samples[method], d)
}

// Summary returns one entry per method in first-seen order.
func (r *Recorder) Summary() []MethodStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]MethodStats, 0, len(r.order))
	for _, m := range r.order {
		lat := r.samples[m]
		out = append(out, MethodStats{
			Method:      m,
			Calls:       len(lat) + r.fails[m],
			Failures:    r.fails[m],
			TailLatency: CalculateTailLatency(lat),
		})
	}
	return out
}
