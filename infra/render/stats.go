package render

import (
	"context"
	"fmt"

	"github.com/kilianp07/taxisim/core/metrics"
)

// StatsPublisher pushes the current stats to a metrics sink.
type StatsPublisher struct {
	stats metrics.StatsProvider
	sink  metrics.MetricsSink
	every int
}

// NewStatsPublisher records stats on sink every n ticks.
func NewStatsPublisher(stats metrics.StatsProvider, sink metrics.MetricsSink, every int) *StatsPublisher {
	if every < 1 {
		every = 1
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &StatsPublisher{stats: stats, sink: sink, every: every}
}

func (p *StatsPublisher) Act(context.Context) error {
	st := p.stats.Stats()
	if st.Tick%p.every != 0 {
		return nil
	}
	if err := p.sink.RecordStats(st); err != nil {
		return fmt.Errorf("record stats: %w", err)
	}
	return nil
}
