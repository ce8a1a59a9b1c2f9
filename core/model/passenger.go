package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Passenger is a request to travel from a pickup point to a destination.
// A passenger is immutable once created.
type Passenger struct {
	id          string
	pickup      Position
	destination Position
}

// NewPassenger validates both positions and returns a passenger. Pickup and
// destination must differ.
func NewPassenger(pickup, destination Position) (*Passenger, error) {
	if err := pickup.Validate(); err != nil {
		return nil, fmt.Errorf("pickup: %w", err)
	}
	if err := destination.Validate(); err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}
	if pickup == destination {
		return nil, fmt.Errorf("%w: pickup and destination are both %s", ErrInvalidArgument, pickup)
	}
	return &Passenger{
		id:          uuid.NewString(),
		pickup:      pickup,
		destination: destination,
	}, nil
}

// ID uniquely identifies the passenger in logs and events.
func (p *Passenger) ID() string { return p.id }

// Pickup returns where the passenger waits.
func (p *Passenger) Pickup() Position { return p.pickup }

// Destination returns where the passenger wants to go.
func (p *Passenger) Destination() Position { return p.destination }

// Location returns the pickup point, where a waiting passenger is drawn.
func (p *Passenger) Location() Position { return p.pickup }

// Glyph is the map symbol for a waiting passenger.
func (p *Passenger) Glyph() rune { return 'P' }

func (p *Passenger) String() string {
	return fmt.Sprintf("passenger travelling from %s to %s", p.pickup, p.destination)
}
