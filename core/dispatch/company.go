package dispatch

import (
	"fmt"
	"math/rand"

	"github.com/kilianp07/taxisim/core/city"
	"github.com/kilianp07/taxisim/core/events"
	"github.com/kilianp07/taxisim/core/logger"
	"github.com/kilianp07/taxisim/core/model"
)

// Company operates the fleet and assigns free vehicles to pickup requests.
// It is not safe for concurrent use; the simulation drives it from a single
// goroutine.
type Company struct {
	city        city.Registry
	vehicles    []Vehicle
	assignments map[Vehicle]*model.Passenger
	logger      logger.Logger
	bus         events.Publisher

	totalPickups     int
	totalDropoffs    int
	totalAssignments int
}

// Option configures a Company.
type Option func(*Company)

// WithLogger sets the logger used for assignment diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(c *Company) { c.logger = logger.OrNop(l) }
}

// WithEvents publishes assignment, pickup and drop-off events on p.
func WithEvents(p events.Publisher) Option {
	return func(c *Company) { c.bus = p }
}

// NewCompany creates a company without vehicles operating in reg.
func NewCompany(reg city.Registry, opts ...Option) (*Company, error) {
	if reg == nil {
		return nil, fmt.Errorf("%w: nil city", model.ErrInvalidArgument)
	}
	c := &Company{
		city:        reg,
		assignments: make(map[Vehicle]*model.Passenger),
		logger:      logger.NopLogger{},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// AddTaxi creates a taxi at loc, adds it to the fleet and registers it in the
// city. Vehicle IDs follow creation order: taxi-001, taxi-002, ...
func (c *Company) AddTaxi(loc model.Position) (*Taxi, error) {
	id := fmt.Sprintf("taxi-%03d", len(c.vehicles)+1)
	t, err := NewTaxi(id, c, loc)
	if err != nil {
		return nil, err
	}
	if err := c.city.AddItem(t); err != nil {
		return nil, fmt.Errorf("register %s: %w", id, err)
	}
	c.vehicles = append(c.vehicles, t)
	return t, nil
}

// SetupVehicles adds n taxis at positions drawn from rng within the city
// bounds. The same rng seed always yields the same fleet.
func (c *Company) SetupVehicles(n int, rng *rand.Rand) error {
	if rng == nil {
		return fmt.Errorf("%w: nil rng", model.ErrInvalidArgument)
	}
	for i := 0; i < n; i++ {
		loc := model.Position{X: rng.Intn(c.city.Width()), Y: rng.Intn(c.city.Height())}
		if _, err := c.AddTaxi(loc); err != nil {
			return err
		}
	}
	c.logger.Infof("fleet ready with %d vehicles", len(c.vehicles))
	return nil
}

// RequestPickup assigns the first free vehicle, in creation order, to p.
// It returns false when no vehicle is free; the request is then dropped and
// the caller records the miss. An error means the fleet bookkeeping is broken.
func (c *Company) RequestPickup(p *model.Passenger) (bool, error) {
	if p == nil {
		return false, fmt.Errorf("%w: nil passenger", model.ErrInvalidArgument)
	}
	v := c.scheduleVehicle()
	if v == nil {
		c.logger.Debugw("no free vehicle", map[string]any{"passenger_id": p.ID()})
		return false, nil
	}
	from := v.Location()
	if err := v.SetPickupLocation(p.Pickup()); err != nil {
		return false, fmt.Errorf("assign %s: %w", v.ID(), err)
	}
	c.assignments[v] = p
	c.totalAssignments++
	c.logger.Debugw("vehicle assigned", map[string]any{
		"vehicle_id":   v.ID(),
		"passenger_id": p.ID(),
		"pickup":       p.Pickup().String(),
		"eta_ticks":    from.Distance(p.Pickup()),
	})
	events.Publish(c.bus, events.AssignmentEvent{
		VehicleID:   v.ID(),
		PassengerID: p.ID(),
		From:        from,
		Pickup:      p.Pickup(),
	})
	return true, nil
}

// ArrivedAtPickup hands the assigned passenger to v. A vehicle without a
// recorded assignment yields a *MissingPassengerError.
func (c *Company) ArrivedAtPickup(v Vehicle) error {
	if v == nil {
		return fmt.Errorf("%w: nil vehicle", model.ErrInvalidArgument)
	}
	p, ok := c.assignments[v]
	if !ok {
		return &MissingPassengerError{VehicleID: v.ID()}
	}
	delete(c.assignments, v)
	c.city.RemoveItem(p)
	if err := v.Pickup(p); err != nil {
		return fmt.Errorf("pickup %s: %w", p.ID(), err)
	}
	c.totalPickups++
	c.logger.Debugw("passenger picked up", map[string]any{
		"vehicle_id":   v.ID(),
		"passenger_id": p.ID(),
		"destination":  p.Destination().String(),
	})
	events.Publish(c.bus, events.PickupEvent{VehicleID: v.ID(), PassengerID: p.ID(), At: v.Location()})
	return nil
}

// ArrivedAtDestination records the delivery of p. The vehicle offloads the
// passenger itself.
func (c *Company) ArrivedAtDestination(v Vehicle, p *model.Passenger) error {
	if v == nil {
		return fmt.Errorf("%w: nil vehicle", model.ErrInvalidArgument)
	}
	if p == nil {
		return fmt.Errorf("%w: nil passenger", model.ErrInvalidArgument)
	}
	c.totalDropoffs++
	c.logger.Debugw("passenger dropped off", map[string]any{
		"vehicle_id":   v.ID(),
		"passenger_id": p.ID(),
	})
	events.Publish(c.bus, events.DropoffEvent{VehicleID: v.ID(), PassengerID: p.ID(), At: v.Location()})
	return nil
}

// Vehicles returns the fleet in creation order.
func (c *Company) Vehicles() []Vehicle {
	out := make([]Vehicle, len(c.vehicles))
	copy(out, c.vehicles)
	return out
}

func (c *Company) TotalPickups() int  { return c.totalPickups }
func (c *Company) TotalDropoffs() int { return c.totalDropoffs }

// TotalAssignments counts every successful RequestPickup since creation.
func (c *Company) TotalAssignments() int { return c.totalAssignments }

// TotalIdleTicks sums the idle ticks of the whole fleet.
func (c *Company) TotalIdleTicks() int {
	total := 0
	for _, v := range c.vehicles {
		total += v.IdleTicks()
	}
	return total
}

// ActiveVehicleCount returns the number of vehicles that are not free.
func (c *Company) ActiveVehicleCount() int {
	n := 0
	for _, v := range c.vehicles {
		if !v.IsFree() {
			n++
		}
	}
	return n
}

// PendingAssignments returns the number of vehicles en route to a pickup.
func (c *Company) PendingAssignments() int { return len(c.assignments) }

// AssignmentFor returns the passenger v is on its way to collect.
func (c *Company) AssignmentFor(v Vehicle) (*model.Passenger, bool) {
	p, ok := c.assignments[v]
	return p, ok
}

func (c *Company) scheduleVehicle() Vehicle {
	for _, v := range c.vehicles {
		if v.IsFree() {
			return v
		}
	}
	return nil
}
