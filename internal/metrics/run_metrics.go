package metrics

import (
	"sync/atomic"
	"time"
)

// RunMetrics tracks one sampling run.
type RunMetrics struct {
	FetchLatency *Histogram

	Fetches    atomic.Uint64 // requests issued, rare pick included
	Duplicates atomic.Uint64 // duplicates folded into an existing count
	Discarded  atomic.Uint64 // duplicates thrown away after the budget ran out

	startTime time.Time
}

// NewRunMetrics creates a collector whose clock starts now.
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{
		FetchLatency: NewHistogram(1000),
		startTime:    time.Now(),
	}
}

// RecordFetch records one completed or failed fetch.
func (m *RunMetrics) RecordFetch(d time.Duration) {
	m.Fetches.Add(1)
	m.FetchLatency.Record(d)
}

// IncrementDuplicates counts an absorbed duplicate.
func (m *RunMetrics) IncrementDuplicates() {
	m.Duplicates.Add(1)
}

// IncrementDiscarded counts a discarded duplicate.
func (m *RunMetrics) IncrementDiscarded() {
	m.Discarded.Add(1)
}

// Summary is a point-in-time copy of the metrics.
type Summary struct {
	Fetches    uint64
	Duplicates uint64
	Discarded  uint64
	MeanMs     float64
	P95Ms      float64
	MaxMs      float64
	Elapsed    time.Duration
}

// Summary snapshots the current values.
func (m *RunMetrics) Summary() Summary {
	return Summary{
		Fetches:    m.Fetches.Load(),
		Duplicates: m.Duplicates.Load(),
		Discarded:  m.Discarded.Load(),
		MeanMs:     m.FetchLatency.Mean(),
		P95Ms:      m.FetchLatency.Percentile(95),
		MaxMs:      m.FetchLatency.Max(),
		Elapsed:    time.Since(m.startTime),
	}
}

// LogAttrs returns the summary as slog key/value pairs.
func (s Summary) LogAttrs() []any {
	return []any{
		"fetches", s.Fetches,
		"duplicates", s.Duplicates,
		"discarded", s.Discarded,
		"fetch_mean_ms", s.MeanMs,
		"fetch_p95_ms", s.P95Ms,
		"fetch_max_ms", s.MaxMs,
		"elapsed", s.Elapsed,
	}
}
