// Package scenario loads scripted simulation runs from YAML and checks their
// outcome against expected counters.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/taxisim/core/model"
)

// RequestDef is a pickup request submitted at Tick (counted from 1).
type RequestDef struct {
	Tick        int            `yaml:"tick"`
	Pickup      model.Position `yaml:"pickup"`
	Destination model.Position `yaml:"destination"`
}

// Expected lists the counters checked after the run. Unset fields are not
// checked.
type Expected struct {
	Created   *int                      `yaml:"created,omitempty"`
	Pickups   *int                      `yaml:"pickups,omitempty"`
	Dropoffs  *int                      `yaml:"dropoffs,omitempty"`
	Missed    *int                      `yaml:"missed,omitempty"`
	IdleTicks *int                      `yaml:"idle_ticks,omitempty"`
	Positions map[string]model.Position `yaml:"positions,omitempty"`
}

// Scenario is a deterministic run: a grid, taxis at fixed positions and a list
// of scripted requests.
type Scenario struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description,omitempty"`
	Width       int              `yaml:"width"`
	Height      int              `yaml:"height"`
	Vehicles    []model.Position `yaml:"vehicles"`
	Requests    []RequestDef     `yaml:"requests"`
	Ticks       int              `yaml:"ticks"`
	Expected    Expected         `yaml:"expected"`
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Decode parses and validates a scenario. Unknown keys are rejected.
func Decode(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the grid, the positions and the request ticks.
func (s *Scenario) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: grid %dx%d", model.ErrInvalidArgument, s.Width, s.Height)
	}
	if s.Ticks < 0 {
		return fmt.Errorf("%w: ticks %d", model.ErrInvalidArgument, s.Ticks)
	}
	var errs []error
	for i, v := range s.Vehicles {
		if !s.inside(v) {
			errs = append(errs, fmt.Errorf("vehicle %d: %s outside grid", i, v))
		}
	}
	for i, r := range s.Requests {
		if r.Tick < 1 {
			errs = append(errs, fmt.Errorf("request %d: tick %d", i, r.Tick))
		}
		if !s.inside(r.Pickup) || !s.inside(r.Destination) {
			errs = append(errs, fmt.Errorf("request %d: outside grid", i))
		}
		if r.Pickup == r.Destination {
			errs = append(errs, fmt.Errorf("request %d: pickup equals destination", i))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", model.ErrInvalidArgument, err)
	}
	return nil
}

func (s *Scenario) inside(p model.Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < s.Width && p.Y < s.Height
}
