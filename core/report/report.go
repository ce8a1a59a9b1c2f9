// Package report summarises a simulation run from the company and source
// counters.
package report

import (
	"github.com/kilianp07/taxisim/core/dispatch"
	"github.com/kilianp07/taxisim/core/metrics"
	"github.com/kilianp07/taxisim/core/source"
	"gonum.org/v1/gonum/stat"
)

// VehicleRow describes one vehicle at the end of a run.
type VehicleRow struct {
	ID        string `json:"id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	IdleTicks int    `json:"idle_ticks"`
	Free      bool   `json:"free"`
}

// Summary is the end-of-run report. Utilization is the share of vehicle
// ticks not spent idle; MissRate is MissedPickups over PassengersCreated.
type Summary struct {
	RunID             string       `json:"run_id,omitempty"`
	Ticks             int          `json:"ticks"`
	FleetSize         int          `json:"fleet_size"`
	PassengersCreated int          `json:"passengers_created"`
	Assignments       int          `json:"assignments"`
	Pickups           int          `json:"pickups"`
	Dropoffs          int          `json:"dropoffs"`
	MissedPickups     int          `json:"missed_pickups"`
	ActiveVehicles    int          `json:"active_vehicles"`
	WaitingPassengers int          `json:"waiting_passengers"`
	IdleTicks         int          `json:"idle_ticks"`
	IdleMean          float64      `json:"idle_mean"`
	IdleStdDev        float64      `json:"idle_stddev"`
	Utilization       float64      `json:"utilization"`
	MissRate          float64      `json:"miss_rate"`
	Vehicles          []VehicleRow `json:"vehicles"`
}

// Snapshot returns the live counters after tick.
func Snapshot(tick int, c *dispatch.Company, src source.Counters) metrics.Stats {
	st := metrics.Stats{
		Tick:              tick,
		Pickups:           c.TotalPickups(),
		Dropoffs:          c.TotalDropoffs(),
		ActiveVehicles:    c.ActiveVehicleCount(),
		FleetSize:         len(c.Vehicles()),
		IdleTicks:         c.TotalIdleTicks(),
		WaitingPassengers: c.PendingAssignments(),
	}
	if src != nil {
		st.PassengersCreated = src.PassengersCreated()
		st.MissedPickups = src.MissedPickups()
	}
	return st
}

// Summarize builds the report of a run that lasted ticks ticks.
func Summarize(runID string, ticks int, c *dispatch.Company, src source.Counters) Summary {
	st := Snapshot(ticks, c, src)
	s := Summary{
		RunID:             runID,
		Ticks:             ticks,
		FleetSize:         st.FleetSize,
		PassengersCreated: st.PassengersCreated,
		Assignments:       c.TotalAssignments(),
		Pickups:           st.Pickups,
		Dropoffs:          st.Dropoffs,
		MissedPickups:     st.MissedPickups,
		ActiveVehicles:    st.ActiveVehicles,
		WaitingPassengers: st.WaitingPassengers,
		IdleTicks:         st.IdleTicks,
	}

	vs := c.Vehicles()
	idle := make([]float64, len(vs))
	s.Vehicles = make([]VehicleRow, len(vs))
	for i, v := range vs {
		loc := v.Location()
		idle[i] = float64(v.IdleTicks())
		s.Vehicles[i] = VehicleRow{ID: v.ID(), X: loc.X, Y: loc.Y, IdleTicks: v.IdleTicks(), Free: v.IsFree()}
	}
	switch len(idle) {
	case 0:
	case 1:
		s.IdleMean = idle[0]
	default:
		s.IdleMean, s.IdleStdDev = stat.MeanStdDev(idle, nil)
	}
	if total := ticks * len(vs); total > 0 {
		s.Utilization = 1 - float64(s.IdleTicks)/float64(total)
	}
	if s.PassengersCreated > 0 {
		s.MissRate = float64(s.MissedPickups) / float64(s.PassengersCreated)
	}
	return s
}
