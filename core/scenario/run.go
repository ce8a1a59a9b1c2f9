package scenario

import (
	"context"
	"errors"
	"fmt"

	"github.com/kilianp07/taxisim/core/city"
	"github.com/kilianp07/taxisim/core/dispatch"
	"github.com/kilianp07/taxisim/core/events"
	"github.com/kilianp07/taxisim/core/logger"
	"github.com/kilianp07/taxisim/core/metrics"
	"github.com/kilianp07/taxisim/core/report"
	"github.com/kilianp07/taxisim/core/simulation"
	"github.com/kilianp07/taxisim/core/source"
)

// RendererFunc builds the renderer stage once the city exists.
type RendererFunc func(reg city.Registry, stats metrics.StatsProvider) (simulation.Actor, error)

// Options configures Prepare. Every field is optional.
type Options struct {
	Logger   logger.Logger
	Events   events.Publisher
	Renderer RendererFunc
}

// Run is a prepared scenario.
type Run struct {
	Scenario *Scenario
	City     *city.City
	Company  *dispatch.Company
	Source   *source.ScriptedSource
	Sim      *simulation.Simulation
}

// Prepare builds the city, the fleet and the scripted source of sc.
func Prepare(sc *Scenario, opts Options) (*Run, error) {
	log := logger.OrNop(opts.Logger)
	c, err := city.New(sc.Width, sc.Height)
	if err != nil {
		return nil, err
	}
	comp, err := dispatch.NewCompany(c, dispatch.WithLogger(log), dispatch.WithEvents(opts.Events))
	if err != nil {
		return nil, err
	}
	for _, p := range sc.Vehicles {
		if _, err := comp.AddTaxi(p); err != nil {
			return nil, err
		}
	}
	reqs := make([]source.Request, len(sc.Requests))
	for i, r := range sc.Requests {
		reqs[i] = source.Request{Tick: r.Tick, Pickup: r.Pickup, Destination: r.Destination}
	}
	src, err := source.NewScriptedSource(c, comp, reqs, log, opts.Events)
	if err != nil {
		return nil, err
	}

	run := &Run{Scenario: sc, City: c, Company: comp, Source: src}
	var renderer simulation.Actor
	if opts.Renderer != nil {
		renderer, err = opts.Renderer(c, metrics.StatsProviderFunc(run.Stats))
		if err != nil {
			return nil, fmt.Errorf("renderer: %w", err)
		}
	}
	actors := make([]simulation.Actor, 0, len(sc.Vehicles))
	for _, v := range comp.Vehicles() {
		actors = append(actors, v)
	}
	run.Sim = simulation.New(simulation.Stages{Vehicles: actors, Generator: src, Renderer: renderer}, log)
	return run, nil
}

// Stats returns the counters after the last completed tick.
func (r *Run) Stats() metrics.Stats {
	return report.Snapshot(r.Sim.Ticks(), r.Company, r.Source)
}

// Execute runs every tick of the scenario without delay.
func (r *Run) Execute(ctx context.Context) (report.Summary, error) {
	err := r.Sim.Run(ctx, r.Scenario.Ticks, 0)
	return report.Summarize(r.Scenario.Name, r.Sim.Ticks(), r.Company, r.Source), err
}

// Verify compares the summary with the expectations of the scenario.
func (r *Run) Verify(s report.Summary) error {
	exp := r.Scenario.Expected
	var errs []error
	check := func(name string, want *int, got int) {
		if want != nil && *want != got {
			errs = append(errs, fmt.Errorf("%s: want %d, got %d", name, *want, got))
		}
	}
	check("created", exp.Created, s.PassengersCreated)
	check("pickups", exp.Pickups, s.Pickups)
	check("dropoffs", exp.Dropoffs, s.Dropoffs)
	check("missed", exp.Missed, s.MissedPickups)
	check("idle_ticks", exp.IdleTicks, s.IdleTicks)
	for id, want := range exp.Positions {
		found := false
		for _, v := range s.Vehicles {
			if v.ID != id {
				continue
			}
			found = true
			if v.X != want.X || v.Y != want.Y {
				errs = append(errs, fmt.Errorf("%s: want %s, got location %d,%d", id, want, v.X, v.Y))
			}
		}
		if !found {
			errs = append(errs, fmt.Errorf("%s: no such vehicle", id))
		}
	}
	return errors.Join(errs...)
}
