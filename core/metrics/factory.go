package metrics

import (
	"errors"

	"github.com/kilianp07/taxisim/core/factory"
)

var sinks = factory.NewRegistry[MetricsSink]()

// RegisterMetricsSink makes a sink type available to NewMetricsSink.
func RegisterMetricsSink(name string, f factory.Factory[MetricsSink]) error {
	return sinks.Register(name, f)
}

// MetricsSinkTypes lists the registered sink types.
func MetricsSinkTypes() []string { return sinks.Names() }

// NewMetricsSink builds the sinks listed in cfgs. No entry yields a NopSink,
// several entries a MultiSink. Sinks already built are closed when a later
// entry fails.
func NewMetricsSink(cfgs []factory.ModuleConfig) (MetricsSink, error) {
	switch len(cfgs) {
	case 0:
		return NopSink{}, nil
	case 1:
		return sinks.Create(cfgs[0])
	}
	multi := &MultiSink{Sinks: make([]MetricsSink, 0, len(cfgs))}
	for _, c := range cfgs {
		s, err := sinks.Create(c)
		if err != nil {
			return nil, errors.Join(err, multi.Close())
		}
		multi.Sinks = append(multi.Sinks, s)
	}
	return multi, nil
}
