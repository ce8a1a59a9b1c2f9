package config

import (
	"fmt"
	"time"

	"github.com/kilianp07/taxisim/core/source"
)

// SimulationConfig sizes the grid and the fleet and paces the run.
type SimulationConfig struct {
	Width               int     `json:"width"`
	Height              int     `json:"height"`
	FleetSize           int     `json:"fleet_size"`
	Seed                int64   `json:"seed"`
	CreationProbability float64 `json:"creation_probability"`
	Ticks               int     `json:"ticks"`
	TickDelayMS         int     `json:"tick_delay_ms"`
	// ZeroDelay disables pacing; tick_delay_ms 0 would be replaced by the default.
	ZeroDelay bool `json:"zero_delay"`
}

// SetDefaults applies the values of the original demo: a 35x35 city with
// three taxis.
func (c *SimulationConfig) SetDefaults() {
	if c.Width == 0 {
		c.Width = 35
	}
	if c.Height == 0 {
		c.Height = 35
	}
	if c.FleetSize == 0 {
		c.FleetSize = 3
	}
	if c.Seed == 0 {
		c.Seed = source.DefaultSeed
	}
	if c.CreationProbability == 0 {
		c.CreationProbability = source.DefaultCreationProbability
	}
	if c.Ticks == 0 {
		c.Ticks = 5000
	}
	if c.TickDelayMS == 0 && !c.ZeroDelay {
		c.TickDelayMS = 100
	}
}

// Validate checks ranges.
func (c SimulationConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("grid %dx%d must be positive", c.Width, c.Height)
	}
	if c.Width*c.Height < 2 {
		return fmt.Errorf("grid %dx%d needs at least two cells", c.Width, c.Height)
	}
	if c.FleetSize < 0 {
		return fmt.Errorf("fleet_size %d is negative", c.FleetSize)
	}
	if c.CreationProbability < 0 || c.CreationProbability > 1 {
		return fmt.Errorf("creation_probability %v outside [0,1]", c.CreationProbability)
	}
	if c.Ticks < 0 {
		return fmt.Errorf("ticks %d is negative", c.Ticks)
	}
	if c.TickDelayMS < 0 {
		return fmt.Errorf("tick_delay_ms %d is negative", c.TickDelayMS)
	}
	return nil
}

// TickDelay returns the pause between two ticks.
func (c SimulationConfig) TickDelay() time.Duration {
	if c.ZeroDelay {
		return 0
	}
	return time.Duration(c.TickDelayMS) * time.Millisecond
}
