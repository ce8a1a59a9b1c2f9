package dispatch

import (
	"context"
	"fmt"

	"github.com/kilianp07/taxisim/core/model"
)

// Taxi carries a single passenger at a time.
//
// States: free (no target, no passenger), en route to a pickup (target set,
// no passenger) and carrying (target is the passenger's destination).
type Taxi struct {
	id        string
	company   ArrivalHandler
	location  model.Position
	target    *model.Position
	passenger *model.Passenger
	idleTicks int
}

// NewTaxi creates a free taxi at location reporting arrivals to company.
func NewTaxi(id string, company ArrivalHandler, location model.Position) (*Taxi, error) {
	if company == nil {
		return nil, fmt.Errorf("%w: nil company", model.ErrInvalidArgument)
	}
	if err := location.Validate(); err != nil {
		return nil, fmt.Errorf("taxi location: %w", err)
	}
	return &Taxi{id: id, company: company, location: location}, nil
}

func (t *Taxi) ID() string                  { return t.id }
func (t *Taxi) Location() model.Position    { return t.location }
func (t *Taxi) Passenger() *model.Passenger { return t.passenger }
func (t *Taxi) IdleTicks() int              { return t.idleTicks }

func (t *Taxi) Target() (model.Position, bool) {
	if t.target == nil {
		return model.Position{}, false
	}
	return *t.target, true
}

// IsFree reports whether the taxi has neither a target nor a passenger.
func (t *Taxi) IsFree() bool {
	return t.target == nil && t.passenger == nil
}

// SetPickupLocation sends a free taxi to loc.
func (t *Taxi) SetPickupLocation(loc model.Position) error {
	if !t.IsFree() {
		return fmt.Errorf("taxi %s: %w", t.id, ErrVehicleNotFree)
	}
	if err := loc.Validate(); err != nil {
		return fmt.Errorf("pickup location: %w", err)
	}
	t.setTarget(loc)
	return nil
}

// Pickup boards p and heads for its destination.
func (t *Taxi) Pickup(p *model.Passenger) error {
	if p == nil {
		return fmt.Errorf("%w: nil passenger", model.ErrInvalidArgument)
	}
	if t.passenger != nil {
		return fmt.Errorf("taxi %s: %w", t.id, ErrAlreadyCarrying)
	}
	t.passenger = p
	t.setTarget(p.Destination())
	return nil
}

// OffloadPassenger drops the passenger and clears the target.
func (t *Taxi) OffloadPassenger() {
	t.passenger = nil
	t.target = nil
}

// Act moves the taxi one step toward its target. A free taxi only records an
// idle tick. Reaching the target notifies the company before Act returns.
func (t *Taxi) Act(ctx context.Context) error {
	if t.IsFree() {
		t.idleTicks++
	}
	if t.target == nil {
		return nil
	}
	target := *t.target
	next := t.location.Step(target)
	t.location = next
	if next != target {
		return nil
	}
	if p := t.passenger; p != nil {
		if err := t.company.ArrivedAtDestination(t, p); err != nil {
			return fmt.Errorf("taxi %s drop-off: %w", t.id, err)
		}
		t.OffloadPassenger()
		return nil
	}
	if err := t.company.ArrivedAtPickup(t); err != nil {
		return fmt.Errorf("taxi %s pickup: %w", t.id, err)
	}
	return nil
}

// Glyph is 'T' for an empty taxi and 'C' while carrying a passenger.
func (t *Taxi) Glyph() rune {
	if t.passenger != nil {
		return 'C'
	}
	return 'T'
}

func (t *Taxi) String() string {
	return fmt.Sprintf("taxi %s at %s", t.id, t.location)
}

func (t *Taxi) setTarget(p model.Position) {
	t.target = &p
}
