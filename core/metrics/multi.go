package metrics

import "errors"

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordStats forwards the snapshot to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordStats(st Stats) error {
	for _, s := range m.Sinks {
		if err := s.RecordStats(st); err != nil {
			return err
		}
	}
	return nil
}

// RecordEvent forwards the event to the sinks implementing EventRecorder.
func (m *MultiSink) RecordEvent(eventType string) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(EventRecorder); ok {
			if err := rec.RecordEvent(eventType); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes every sink implementing Closer.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if c, ok := s.(Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
