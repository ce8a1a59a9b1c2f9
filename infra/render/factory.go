package render

import (
	"fmt"
	"io"
	"os"

	"github.com/kilianp07/taxisim/core/city"
	"github.com/kilianp07/taxisim/core/factory"
	"github.com/kilianp07/taxisim/core/metrics"
	"github.com/kilianp07/taxisim/core/simulation"
)

// Deps are the collaborators shared by every renderer built from config.
type Deps struct {
	City  city.Registry
	Stats metrics.StatsProvider
	Sink  metrics.MetricsSink
	// Out receives text frames when a text renderer sets no file. Defaults to os.Stdout.
	Out io.Writer
}

type textConf struct {
	Every int    `json:"every"`
	Path  string `json:"path"`
}

type framesConf struct {
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

type statsConf struct {
	Every int `json:"every"`
}

func newRegistry(d Deps) *factory.Registry[simulation.Actor] {
	reg := factory.NewRegistry[simulation.Actor]()
	_ = reg.Register("text", func(conf map[string]any) (simulation.Actor, error) {
		var c textConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Path == "" {
			return NewTextRenderer(d.City, d.Stats, d.Out, c.Every), nil
		}
		f, err := os.Create(c.Path)
		if err != nil {
			return nil, err
		}
		return &closingActor{Actor: NewTextRenderer(d.City, d.Stats, f, c.Every), Closer: f}, nil
	})
	_ = reg.Register("frames", func(conf map[string]any) (simulation.Actor, error) {
		c := framesConf{MaxSizeMB: 100}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Path == "" {
			return nil, fmt.Errorf("frames: path is required")
		}
		return NewRotatingFrameWriter(c.Path, c.MaxSizeMB, c.MaxBackups, c.MaxAgeDays, d.City, d.Stats), nil
	})
	_ = reg.Register("stats", func(conf map[string]any) (simulation.Actor, error) {
		var c statsConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewStatsPublisher(d.Stats, d.Sink, c.Every), nil
	})
	return reg
}

// Types lists the renderer types accepted by Build.
func Types() []string { return newRegistry(Deps{}).Names() }

// Build creates the renderers described by cfgs, in order.
func Build(cfgs []factory.ModuleConfig, d Deps) (Multi, error) {
	if d.City == nil || d.Stats == nil {
		return nil, fmt.Errorf("render: city and stats are required")
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	reg := newRegistry(d)
	out := make(Multi, 0, len(cfgs))
	for _, c := range cfgs {
		r, err := reg.Create(c)
		if err != nil {
			_ = out.Close()
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

type closingActor struct {
	simulation.Actor
	io.Closer
}
