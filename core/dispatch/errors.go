package dispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrVehicleNotFree is returned when a pickup is assigned to a vehicle
	// that already has a target or a passenger.
	ErrVehicleNotFree = errors.New("vehicle is not free")
	// ErrAlreadyCarrying is returned when a vehicle is asked to pick up a
	// passenger while carrying another.
	ErrAlreadyCarrying = errors.New("vehicle already carries a passenger")
	// ErrMissingPassenger is matched by MissingPassengerError. It signals
	// broken assignment bookkeeping and must never be retried.
	ErrMissingPassenger = errors.New("missing passenger")
)

// MissingPassengerError reports a vehicle arriving at a pickup point with no
// recorded assignment.
type MissingPassengerError struct {
	VehicleID string
}

func (e *MissingPassengerError) Error() string {
	return fmt.Sprintf("missing passenger at pickup for vehicle %s", e.VehicleID)
}

// Is makes errors.Is(err, ErrMissingPassenger) hold.
func (e *MissingPassengerError) Is(target error) bool {
	return target == ErrMissingPassenger
}
