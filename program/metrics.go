package main

import (
	"sync"
	"sync/atomic"
	"time"
)

type durationRing struct {
	mu    sync.Mutex
	buf   []time.Duration
	idx   int
	count int
}

func newDurationRing(n int) *durationRing {
	if n < 1 {
		n = 1
	}
	return &durationRing{buf: make([]time.Duration, n)}
}

func (r *durationRing) add(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf[r.idx] = d
	r.idx++
	if r.idx >= len(r.buf) {
		r.idx = 0
	}
	if r.count < len(r.buf) {
		r.count++
	}
}

type durationStats struct {
	last time.Duration
	max  time.Duration
	avg  time.Duration
	n    int
}

func (r *durationRing) snapshot() durationStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.count == 0 {
		return durationStats{}
	}
	var sum, longest time.Duration
	for i := 0; i < r.count; i++ {
		d := r.buf[i]
		sum += d
		longest = max(longest, d)
	}

	lastIdx := r.idx - 1
	if lastIdx < 0 {
		lastIdx = len(r.buf) - 1
	}

	return durationStats{
		last: r.buf[lastIdx],
		max:  longest,
		avg:  sum / time.Duration(r.count),
		n:    r.count,
	}
}

// simMetrics counts simulation work. Batches are observed from the
// command goroutine and read by View.
type simMetrics struct {
	enabled atomic.Bool

	batches atomic.Uint64
	trials  atomic.Uint64
	draws   atomic.Uint64
	resets  atomic.Uint64
	busyNs  atomic.Int64

	batchLatency *durationRing
}

func newSimMetrics(window int) *simMetrics {
	return &simMetrics{batchLatency: newDurationRing(window)}
}

func (m *simMetrics) setEnabled(v bool) { m.enabled.Store(v) }
func (m *simMetrics) isEnabled() bool { return m.enabled.Load() }

// observeBatch records a batch of `trials` experiments of n draws each.
func (m *simMetrics) observeBatch(trials, n int, d time.Duration) {
	if !m.isEnabled() || trials <= 0 {
		return
	}
	m.batches.Add(1)
	m.trials.Add(uint64(trials))
	m.draws.Add(uint64(trials) * uint64(n))
	m.busyNs.Add(int64(d))
	m.batchLatency.add(d)
}

func (m *simMetrics) observeReset() {
	if !m.isEnabled() {
		return
	}
	m.resets.Add(1)
}

type snapshot struct {
	batches      uint64
	trials       uint64
	draws        uint64
	resets       uint64
	drawsPerSec  uint64
	batchLatency durationStats
}

func (m *simMetrics) snapshot() snapshot {
	if !m.isEnabled() {
		return snapshot{}
	}
	draws := m.draws.Load()
	rate := uint64(0)
	if busy := time.Duration(m.busyNs.Load()); busy > 0 {
		rate = uint64(float64(draws)/busy.Seconds() + 0.5)
	}
	return snapshot{
		batches:      m.batches.Load(),
		trials:       m.trials.Load(),
		draws:        draws,
		resets:       m.resets.Load(),
		drawsPerSec:  rate,
		batchLatency: m.batchLatency.snapshot(),
	}
}
