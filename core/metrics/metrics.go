package metrics

// Stats is a snapshot of the simulation counters at the end of a tick. These
// are the figures the original statistics panel displayed.
type Stats struct {
	Tick              int `json:"tick"`
	Pickups           int `json:"pickups"`
	Dropoffs          int `json:"dropoffs"`
	MissedPickups     int `json:"missed_pickups"`
	PassengersCreated int `json:"passengers_created"`
	ActiveVehicles    int `json:"active_vehicles"`
	FleetSize         int `json:"fleet_size"`
	IdleTicks         int `json:"idle_ticks"`
	WaitingPassengers int `json:"waiting_passengers"`
}

// StatsProvider returns the current Stats.
type StatsProvider interface {
	Stats() Stats
}

// StatsProviderFunc adapts a function to StatsProvider.
type StatsProviderFunc func() Stats

func (f StatsProviderFunc) Stats() Stats { return f() }

// MetricsSink records per-tick statistics for observability purposes.
type MetricsSink interface {
	RecordStats(Stats) error
}

// EventRecorder is implemented by sinks counting simulation events by type.
type EventRecorder interface {
	RecordEvent(eventType string) error
}

// Closer is implemented by sinks holding resources.
type Closer interface {
	Close() error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordStats(Stats) error  { return nil }
func (NopSink) RecordEvent(string) error { return nil }
