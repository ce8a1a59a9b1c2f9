package events

import "github.com/kilianp07/taxisim/core/model"

// Event is implemented by every event published on the simulation bus.
type Event interface {
	// Type is a stable identifier used as a metrics label.
	Type() string
}

// PassengerCreatedEvent is published when a source creates a passenger.
type PassengerCreatedEvent struct {
	PassengerID string
	Pickup      model.Position
	Destination model.Position
}

// AssignmentEvent is published when a vehicle is sent to a pickup point.
type AssignmentEvent struct {
	VehicleID   string
	PassengerID string
	From        model.Position
	Pickup      model.Position
}

// MissedPickupEvent is published when no vehicle was free for a request.
type MissedPickupEvent struct {
	PassengerID string
	Pickup      model.Position
}

// PickupEvent is published when a vehicle collects its passenger.
type PickupEvent struct {
	VehicleID   string
	PassengerID string
	At          model.Position
}

// DropoffEvent is published when a vehicle delivers its passenger.
type DropoffEvent struct {
	VehicleID   string
	PassengerID string
	At          model.Position
}

const (
	TypePassengerCreated = "passenger_created"
	TypeAssignment       = "assignment"
	TypeMissedPickup     = "missed_pickup"
	TypePickup           = "pickup"
	TypeDropoff          = "dropoff"
)

func (PassengerCreatedEvent) Type() string { return TypePassengerCreated }
func (AssignmentEvent) Type() string       { return TypeAssignment }
func (MissedPickupEvent) Type() string     { return TypeMissedPickup }
func (PickupEvent) Type() string           { return TypePickup }
func (DropoffEvent) Type() string          { return TypeDropoff }

// Publisher is satisfied by eventbus.Bus[Event].
type Publisher interface {
	Publish(Event)
}

// Publish sends e when p is non-nil.
func Publish(p Publisher, e Event) {
	if p != nil {
		p.Publish(e)
	}
}
