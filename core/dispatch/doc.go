// Package dispatch implements the taxi company: the fleet, the assignment of
// free vehicles to pickup requests and the vehicle movement state machine.
//
// Key components:
//   - Company: owns the fleet and the pending assignments, counts pickups and
//     drop-offs.
//   - Vehicle: the behaviour the company relies on. Taxi is the only
//     implementation and carries a single passenger.
//
// Assignment flow:
//  1. A passenger source calls Company.RequestPickup.
//  2. The first free vehicle in creation order is sent to the pickup point.
//  3. On arrival the vehicle calls Company.ArrivedAtPickup, the passenger
//     leaves the city registry and boards the vehicle.
//  4. On reaching the destination the vehicle calls
//     Company.ArrivedAtDestination and offloads the passenger.
//
// Arrival callbacks run synchronously inside Vehicle.Act, so every state
// change belonging to a tick is complete before the next actor acts.
package dispatch
