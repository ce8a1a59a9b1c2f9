// Package events defines the simulation events emitted on the event bus.
//
// Available event types:
//   - PassengerCreatedEvent: a passenger source produced a new request
//   - AssignmentEvent: the company assigned a free vehicle to a request
//   - MissedPickupEvent: no vehicle was free, the request was dropped
//   - PickupEvent: a vehicle collected its assigned passenger
//   - DropoffEvent: a vehicle delivered its passenger
package events
