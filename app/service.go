package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/google/uuid"

	"github.com/kilianp07/taxisim/config"
	"github.com/kilianp07/taxisim/core/city"
	"github.com/kilianp07/taxisim/core/dispatch"
	"github.com/kilianp07/taxisim/core/events"
	coremetrics "github.com/kilianp07/taxisim/core/metrics"
	"github.com/kilianp07/taxisim/core/report"
	"github.com/kilianp07/taxisim/core/simulation"
	"github.com/kilianp07/taxisim/core/source"
	"github.com/kilianp07/taxisim/infra/logger"
	"github.com/kilianp07/taxisim/infra/metrics"
	"github.com/kilianp07/taxisim/infra/render"
	"github.com/kilianp07/taxisim/internal/eventbus"
)

// Service wires the city, the fleet, the passenger source, the observers and
// the tick loop of one simulation run.
type Service struct {
	RunID   string
	City    *city.City
	Company *dispatch.Company
	Source  *source.PassengerSource
	Sim     *simulation.Simulation

	cfg       config.SimulationConfig
	promAddr  string
	bus       *eventbus.Bus[events.Event]
	sink      coremetrics.MetricsSink
	renderers render.Multi
	stop      []func()
	log       logger.Logger
}

// Option customises a Service.
type Option func(*serviceOptions)

type serviceOptions struct {
	out io.Writer
}

// WithOutput sends text frames to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(o *serviceOptions) { o.out = w }
}

// New creates a Service from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	var o serviceOptions
	for _, opt := range opts {
		opt(&o)
	}
	runID := uuid.NewString()
	logg := logger.New("service")
	sim := cfg.Simulation

	c, err := city.New(sim.Width, sim.Height)
	if err != nil {
		return nil, fmt.Errorf("city: %w", err)
	}
	bus := eventbus.New[events.Event]()
	company, err := dispatch.NewCompany(c, dispatch.WithLogger(logger.New("company")), dispatch.WithEvents(bus))
	if err != nil {
		return nil, fmt.Errorf("company: %w", err)
	}
	if err := company.SetupVehicles(sim.FleetSize, rand.New(rand.NewSource(sim.Seed))); err != nil {
		return nil, fmt.Errorf("fleet: %w", err)
	}
	src, err := source.NewPassengerSource(c, company, source.Config{
		Seed:                sim.Seed,
		CreationProbability: sim.CreationProbability,
		Logger:              logger.New("source"),
		Events:              bus,
	})
	if err != nil {
		return nil, fmt.Errorf("passenger source: %w", err)
	}

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	svc := &Service{
		RunID:    runID,
		City:     c,
		Company:  company,
		Source:   src,
		cfg:      sim,
		promAddr: cfg.Metrics.PrometheusAddr,
		bus:      bus,
		sink:     sink,
		log:      logg,
	}
	svc.stop = append(svc.stop,
		metrics.StartEventCollector(bus, sink, logg),
		bus.Subscribe(svc.logEvent),
	)

	renderers, err := render.Build(cfg.Render.Modules, render.Deps{
		City:  c,
		Stats: coremetrics.StatsProviderFunc(svc.Stats),
		Sink:  sink,
		Out:   o.out,
	})
	if err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("renderers: %w", err)
	}
	svc.renderers = renderers

	vehicles := make([]simulation.Actor, 0, sim.FleetSize)
	for _, v := range company.Vehicles() {
		vehicles = append(vehicles, v)
	}
	var stage simulation.Actor
	if len(renderers) > 0 {
		stage = renderers
	}
	svc.Sim = simulation.New(simulation.Stages{Vehicles: vehicles, Generator: src, Renderer: stage}, logger.New("simulation"))

	logg.Infow("simulation ready", map[string]any{
		"run_id":     runID,
		"width":      sim.Width,
		"height":     sim.Height,
		"fleet_size": sim.FleetSize,
		"seed":       sim.Seed,
	})
	return svc, nil
}

func (s *Service) logEvent(e events.Event) {
	s.log.Debugw("event", map[string]any{"type": e.Type(), "tick": s.Stats().Tick})
}

// Stats returns the live counters of the run.
func (s *Service) Stats() coremetrics.Stats {
	tick := 0
	if s.Sim != nil {
		tick = s.Sim.Ticks()
	}
	return report.Snapshot(tick, s.Company, s.Source)
}

// Summary reports the run so far.
func (s *Service) Summary() report.Summary {
	return report.Summarize(s.RunID, s.Sim.Ticks(), s.Company, s.Source)
}

// Run plays the configured number of ticks, or stops early when ctx is
// canceled. The Prometheus endpoint, when configured, lives as long as Run.
func (s *Service) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if s.promAddr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr, nil); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	err := s.Sim.Run(ctx, s.cfg.Ticks, s.cfg.TickDelay())
	sum := s.Summary()
	s.log.Infow("simulation finished", map[string]any{
		"run_id":   s.RunID,
		"ticks":    sum.Ticks,
		"created":  sum.PassengersCreated,
		"pickups":  sum.Pickups,
		"dropoffs": sum.Dropoffs,
		"missed":   sum.MissedPickups,
	})
	return err
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	for _, stop := range s.stop {
		stop()
	}
	s.stop = nil
	s.bus.Close()
	var errs []error
	errs = append(errs, s.renderers.Close())
	if c, ok := s.sink.(coremetrics.Closer); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
