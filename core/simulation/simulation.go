// Package simulation drives the tick loop.
//
// A tick runs every actor exactly once in a fixed order: all fleet vehicles
// in creation order, then the passenger generator, then the renderer. The
// renderer acting last means it always observes the final state of the tick.
package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/kilianp07/taxisim/core/logger"
)

// Actor takes part in the simulation and acts once per tick.
type Actor interface {
	Act(ctx context.Context) error
}

// ActorFunc adapts a function to the Actor interface.
type ActorFunc func(ctx context.Context) error

func (f ActorFunc) Act(ctx context.Context) error { return f(ctx) }

// Stages lists the participants of a tick. The field order is the execution
// order and is fixed: Vehicles, then Generator, then Renderer. Generator and
// Renderer are optional.
type Stages struct {
	Vehicles  []Actor
	Generator Actor
	Renderer  Actor
}

// Simulation steps its actors in the order defined by Stages.
type Simulation struct {
	actors []Actor
	ticks  int
	log    logger.Logger
}

// New flattens stages into the tick order.
func New(stages Stages, log logger.Logger) *Simulation {
	actors := make([]Actor, 0, len(stages.Vehicles)+2)
	for _, v := range stages.Vehicles {
		if v != nil {
			actors = append(actors, v)
		}
	}
	if stages.Generator != nil {
		actors = append(actors, stages.Generator)
	}
	if stages.Renderer != nil {
		actors = append(actors, stages.Renderer)
	}
	return &Simulation{actors: actors, log: logger.OrNop(log)}
}

// Ticks returns the number of the current tick: the tick being run while
// actors act, the last completed tick otherwise.
func (s *Simulation) Ticks() int { return s.ticks }

// Step runs one tick. The first actor error aborts the tick and is returned.
func (s *Simulation) Step(ctx context.Context) error {
	s.ticks++
	for i, a := range s.actors {
		if err := a.Act(ctx); err != nil {
			return fmt.Errorf("tick %d actor %d: %w", s.ticks, i, err)
		}
	}
	return nil
}

// Run performs n ticks, sleeping delay between them so a renderer can keep
// up. The delay carries no meaning for the simulation and may be zero. Run
// returns early with ctx.Err() when the context is cancelled.
func (s *Simulation) Run(ctx context.Context, n int, delay time.Duration) error {
	s.log.Infof("running %d ticks with %d actors", n, len(s.actors))
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(ctx); err != nil {
			s.log.Errorf("simulation stopped: %v", err)
			return err
		}
		if delay <= 0 || i == n-1 {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	s.log.Infof("simulation finished after %d ticks", s.ticks)
	return nil
}
