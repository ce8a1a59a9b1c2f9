package config

import (
	"fmt"

	"github.com/kilianp07/taxisim/core/factory"
)

// RenderConfig lists the renderers run at the end of each tick, e.g.
//
//	render:
//	  modules:
//	    - type: text
//	      conf: {every: 10}
type RenderConfig struct {
	Modules []factory.ModuleConfig `json:"modules"`
}

// Validate checks that every module names a type.
func (c RenderConfig) Validate() error {
	for i, m := range c.Modules {
		if m.Type == "" {
			return fmt.Errorf("module %d has no type", i)
		}
	}
	return nil
}
