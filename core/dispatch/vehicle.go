package dispatch

import (
	"context"

	"github.com/kilianp07/taxisim/core/model"
)

// Vehicle is a member of the company fleet.
type Vehicle interface {
	ID() string
	Location() model.Position
	// Target returns the position the vehicle heads for, if any.
	Target() (model.Position, bool)
	// Passenger returns the passenger on board, or nil.
	Passenger() *model.Passenger
	IsFree() bool
	SetPickupLocation(model.Position) error
	Pickup(*model.Passenger) error
	OffloadPassenger()
	IdleTicks() int
	// Act advances the vehicle by one tick.
	Act(ctx context.Context) error
}

// ArrivalHandler is notified by vehicles reaching their target. Company
// implements it.
type ArrivalHandler interface {
	ArrivedAtPickup(v Vehicle) error
	ArrivedAtDestination(v Vehicle, p *model.Passenger) error
}
