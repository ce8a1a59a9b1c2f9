// Package metrics defines the statistics published by the simulation and the
// sinks recording them. Sinks like PromSink and InfluxSink (in infra/metrics)
// receive one Stats snapshot per tick and, when they implement EventRecorder,
// every simulation event. NewMetricsSink returns a MultiSink automatically
// when multiple sinks are configured.
package metrics
