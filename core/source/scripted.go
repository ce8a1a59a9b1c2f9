package source

import (
	"context"
	"fmt"
	"sort"

	"github.com/kilianp07/taxisim/core/city"
	"github.com/kilianp07/taxisim/core/events"
	"github.com/kilianp07/taxisim/core/logger"
	"github.com/kilianp07/taxisim/core/model"
)

// Request is a pickup submitted by a ScriptedSource during a given tick.
type Request struct {
	Tick        int
	Pickup      model.Position
	Destination model.Position
}

// ScriptedSource replays a fixed list of requests. Ticks are counted from 1,
// the first call to Act.
type ScriptedSource struct {
	ledger
	requests []Request
	next     int
	tick     int
}

// NewScriptedSource validates the requests and returns a source replaying them
// in tick order. Requests sharing a tick keep their relative order.
func NewScriptedSource(reg city.Registry, req Requester, requests []Request, l logger.Logger, bus events.Publisher) (*ScriptedSource, error) {
	led, err := newLedger(reg, req, l, bus)
	if err != nil {
		return nil, err
	}
	rs := make([]Request, len(requests))
	copy(rs, requests)
	for i, r := range rs {
		if r.Tick < 1 {
			return nil, fmt.Errorf("%w: request %d scheduled at tick %d", model.ErrInvalidArgument, i, r.Tick)
		}
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].Tick < rs[j].Tick })
	return &ScriptedSource{ledger: led, requests: rs}, nil
}

// Act submits the requests scheduled for the current tick.
func (s *ScriptedSource) Act(ctx context.Context) error {
	s.tick++
	for s.next < len(s.requests) && s.requests[s.next].Tick == s.tick {
		r := s.requests[s.next]
		s.next++
		p, err := model.NewPassenger(r.Pickup, r.Destination)
		if err != nil {
			return fmt.Errorf("scripted request at tick %d: %w", r.Tick, err)
		}
		if err := s.submit(p); err != nil {
			return err
		}
	}
	return nil
}

// Remaining returns the number of requests not yet submitted.
func (s *ScriptedSource) Remaining() int { return len(s.requests) - s.next }
