package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

//nolint:gocyclo
func TestLoad(t *testing.T) {
	path := writeFile(t, "config.yaml", `simulation:
  width: 20
  height: 15
  fleet_size: 4
  seed: 7
  creation_probability: 0.2
  ticks: 100
  tick_delay_ms: 5
logging:
  level: debug
  format: console
metrics:
  prometheus_addr: ":9100"
  sinks:
    - type: "nop"
render:
  modules:
    - type: text
      conf:
        every: 10
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"width", cfg.Simulation.Width, 20},
		{"height", cfg.Simulation.Height, 15},
		{"fleet_size", cfg.Simulation.FleetSize, 4},
		{"seed", cfg.Simulation.Seed, int64(7)},
		{"creation_probability", cfg.Simulation.CreationProbability, 0.2},
		{"ticks", cfg.Simulation.Ticks, 100},
		{"tick_delay", cfg.Simulation.TickDelay(), 5 * time.Millisecond},
		{"level", cfg.Logging.Level, "debug"},
		{"format", cfg.Logging.Format, "console"},
		{"prometheus_addr", cfg.Metrics.PrometheusAddr, ":9100"},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"render", len(cfg.Render.Modules) == 1 && cfg.Render.Modules[0].Type == "text", true},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
	assert.EqualValues(t, 10, cfg.Render.Modules[0].Conf["every"])
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.json", `{}`))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 35, cfg.Simulation.Width)
	assert.Equal(t, 35, cfg.Simulation.Height)
	assert.Equal(t, 3, cfg.Simulation.FleetSize)
	assert.Equal(t, int64(12345), cfg.Simulation.Seed)
	assert.Equal(t, 0.06, cfg.Simulation.CreationProbability)
	assert.Equal(t, 5000, cfg.Simulation.Ticks)
	assert.Equal(t, 100*time.Millisecond, cfg.Simulation.TickDelay())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TAXISIM_SIMULATION__FLEET_SIZE", "9")
	t.Setenv("TAXISIM_LOGGING__LEVEL", "warn")
	t.Setenv("TAXISIM_SIMULATION__ZERO_DELAY", "true")

	cfg, err := Load(writeFile(t, "config.yaml", "simulation:\n  fleet_size: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Simulation.FleetSize)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Zero(t, cfg.Simulation.TickDelay())

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Simulation.FleetSize)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeFile(t, "config.toml", ""))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	cases := map[string]string{
		"probability": "simulation:\n  creation_probability: 1.5\n",
		"level":       "logging:\n  level: loud\n",
		"format":      "logging:\n  format: xml\n",
		"fleet":       "simulation:\n  fleet_size: -1\n",
		"one cell":    "simulation:\n  width: 1\n  height: 1\n",
		"sink":        "metrics:\n  sinks:\n    - conf: {}\n",
		"render":      "render:\n  modules:\n    - conf: {}\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.yaml", data))
			assert.Error(t, err)
		})
	}
}
