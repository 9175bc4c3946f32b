package metrics

import (
	"testing"
	"time"
)

func TestHistogram_Percentile(t *testing.T) {
	h := NewHistogram(100)
	for i := 1; i <= 5; i++ {
		h.Record(time.Duration(i) * 10 * time.Millisecond)
	}

	if got := h.Count(); got != 5 {
		t.Fatalf("Count() = %d, want 5", got)
	}
	if got := h.Mean(); got != 30 {
		t.Errorf("Mean() = %v, want 30", got)
	}
	if got := h.Percentile(50); got != 30 {
		t.Errorf("Percentile(50) = %v, want 30", got)
	}
	if got := h.Percentile(75); got != 40 {
		t.Errorf("Percentile(75) = %v, want 40", got)
	}
	if got := h.Max(); got != 50 {
		t.Errorf("Max() = %v, want 50", got)
	}
}

func TestHistogram_Empty(t *testing.T) {
	h := NewHistogram(0)
	if h.Mean() != 0 || h.Percentile(95) != 0 || h.Max() != 0 {
		t.Error("empty histogram should report zeros")
	}
}

func TestHistogram_Trims(t *testing.T) {
	h := NewHistogram(10)
	for i := 0; i < 11; i++ {
		h.Record(time.Millisecond)
	}
	if got := h.Count(); got != 9 {
		t.Errorf("Count() = %d, want 9 after trimming", got)
	}
}

func TestRunMetrics_Summary(t *testing.T) {
	m := NewRunMetrics()
	m.RecordFetch(20 * time.Millisecond)
	m.RecordFetch(40 * time.Millisecond)
	m.IncrementDuplicates()
	m.IncrementDiscarded()
	m.IncrementDiscarded()

	s := m.Summary()
	if s.Fetches != 2 || s.Duplicates != 1 || s.Discarded != 2 {
		t.Errorf("unexpected counters: %+v", s)
	}
	if s.MeanMs != 30 {
		t.Errorf("MeanMs = %v, want 30", s.MeanMs)
	}
	if len(s.LogAttrs())%2 != 0 {
		t.Error("LogAttrs must return key/value pairs")
	}
}
