package metrics

import (
	"errors"
	"testing"
)

type recordSink struct {
	stats  int
	events int
	closed bool
	err    error
}

func (r *recordSink) RecordStats(Stats) error {
	r.stats++
	return r.err
}

func (r *recordSink) RecordEvent(string) error {
	r.events++
	return nil
}

func (r *recordSink) Close() error {
	r.closed = true
	return nil
}

// TestMultiSink ensures records are forwarded to all sinks.
func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2, NopSink{})
	if err := m.RecordStats(Stats{Tick: 1}); err != nil {
		t.Fatalf("record stats: %v", err)
	}
	if err := m.RecordEvent("pickup"); err != nil {
		t.Fatalf("record event: %v", err)
	}
	if s1.stats != 1 || s2.stats != 1 || s1.events != 1 || s2.events != 1 {
		t.Fatalf("records not forwarded")
	}
	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !s1.closed || !s2.closed {
		t.Fatalf("sinks not closed")
	}
}

func TestMultiSinkStopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	s1 := &recordSink{err: boom}
	s2 := &recordSink{}
	if err := NewMultiSink(s1, s2).RecordStats(Stats{}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if s2.stats != 0 {
		t.Fatalf("second sink should not be called")
	}
}

func TestStatsProviderFunc(t *testing.T) {
	p := StatsProviderFunc(func() Stats { return Stats{Tick: 7} })
	if p.Stats().Tick != 7 {
		t.Fatalf("unexpected tick")
	}
}
