// Package source creates passengers and submits their pickup requests to the
// taxi company.
package source

import (
	"fmt"

	"github.com/kilianp07/taxisim/core/city"
	"github.com/kilianp07/taxisim/core/events"
	"github.com/kilianp07/taxisim/core/logger"
	"github.com/kilianp07/taxisim/core/model"
)

// Requester accepts pickup requests. dispatch.Company implements it.
type Requester interface {
	RequestPickup(*model.Passenger) (bool, error)
}

// Counters exposes the running totals of a passenger source.
type Counters interface {
	// PassengersCreated counts every passenger submitted to the company.
	PassengersCreated() int
	// MissedPickups counts requests dropped because no vehicle was free.
	MissedPickups() int
}

// ledger submits passengers and keeps the counters shared by all sources.
type ledger struct {
	city      city.Registry
	requester Requester
	logger    logger.Logger
	bus       events.Publisher

	created int
	missed  int
}

func newLedger(reg city.Registry, req Requester, l logger.Logger, bus events.Publisher) (ledger, error) {
	if reg == nil {
		return ledger{}, fmt.Errorf("%w: nil city", model.ErrInvalidArgument)
	}
	if req == nil {
		return ledger{}, fmt.Errorf("%w: nil company", model.ErrInvalidArgument)
	}
	return ledger{city: reg, requester: req, logger: logger.OrNop(l), bus: bus}, nil
}

// submit requests a pickup for p. A passenger nobody can collect is lost.
func (l *ledger) submit(p *model.Passenger) error {
	l.created++
	events.Publish(l.bus, events.PassengerCreatedEvent{
		PassengerID: p.ID(),
		Pickup:      p.Pickup(),
		Destination: p.Destination(),
	})
	ok, err := l.requester.RequestPickup(p)
	if err != nil {
		return fmt.Errorf("request pickup: %w", err)
	}
	if !ok {
		l.missed++
		l.logger.Debugw("pickup missed", map[string]any{
			"passenger_id": p.ID(),
			"pickup":       p.Pickup().String(),
			"missed_total": l.missed,
		})
		events.Publish(l.bus, events.MissedPickupEvent{PassengerID: p.ID(), Pickup: p.Pickup()})
		return nil
	}
	if err := l.city.AddItem(p); err != nil {
		return fmt.Errorf("register passenger: %w", err)
	}
	return nil
}

func (l *ledger) PassengersCreated() int { return l.created }
func (l *ledger) MissedPickups() int     { return l.missed }
