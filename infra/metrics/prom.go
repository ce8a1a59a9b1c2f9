package metrics

import (
	"errors"

	coremetrics "github.com/kilianp07/taxisim/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink exposes simulation counters as Prometheus metrics.
type PromSink struct {
	tick     prometheus.Gauge
	pickups  prometheus.Gauge
	dropoffs prometheus.Gauge
	missed   prometheus.Gauge
	created  prometheus.Gauge
	active   prometheus.Gauge
	fleet    prometheus.Gauge
	idle     prometheus.Gauge
	waiting  prometheus.Gauge
	events   *prometheus.CounterVec
}

// NewPromSink registers the simulation metrics on the default Prometheus registerer.
// The HTTP endpoint is started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Metrics that
// are already registered are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{}
	gauges := []struct {
		dst  *prometheus.Gauge
		name string
		help string
	}{
		{&s.tick, "taxisim_tick", "Current simulation tick"},
		{&s.pickups, "taxisim_pickups_total", "Passengers collected so far"},
		{&s.dropoffs, "taxisim_dropoffs_total", "Passengers delivered so far"},
		{&s.missed, "taxisim_missed_pickups_total", "Requests dropped because no vehicle was free"},
		{&s.created, "taxisim_passengers_created_total", "Passengers created by the source"},
		{&s.active, "taxisim_active_vehicles", "Vehicles that are not free"},
		{&s.fleet, "taxisim_fleet_size", "Vehicles in the fleet"},
		{&s.idle, "taxisim_idle_ticks_total", "Sum of idle ticks over the fleet"},
		{&s.waiting, "taxisim_waiting_passengers", "Passengers assigned but not yet collected"},
	}
	for _, g := range gauges {
		gauge, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{Name: g.name, Help: g.help}))
		if err != nil {
			return nil, err
		}
		*g.dst = gauge
	}

	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "taxisim_events_total",
		Help: "Simulation events by type",
	}, []string{"type"})
	if err := reg.Register(events); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		events = are.ExistingCollector.(*prometheus.CounterVec)
	}
	s.events = events
	return s, nil
}

func registerGauge(reg prometheus.Registerer, g prometheus.Gauge) (prometheus.Gauge, error) {
	if err := reg.Register(g); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(prometheus.Gauge), nil
		}
		return nil, err
	}
	return g, nil
}

// RecordStats sets every gauge from the snapshot.
func (s *PromSink) RecordStats(st coremetrics.Stats) error {
	s.tick.Set(float64(st.Tick))
	s.pickups.Set(float64(st.Pickups))
	s.dropoffs.Set(float64(st.Dropoffs))
	s.missed.Set(float64(st.MissedPickups))
	s.created.Set(float64(st.PassengersCreated))
	s.active.Set(float64(st.ActiveVehicles))
	s.fleet.Set(float64(st.FleetSize))
	s.idle.Set(float64(st.IdleTicks))
	s.waiting.Set(float64(st.WaitingPassengers))
	return nil
}

// RecordEvent increments the event counter for the given type.
func (s *PromSink) RecordEvent(eventType string) error {
	s.events.WithLabelValues(eventType).Inc()
	return nil
}
