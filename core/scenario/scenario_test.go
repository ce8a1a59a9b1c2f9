package scenario

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/taxisim/core/city"
	"github.com/kilianp07/taxisim/core/events"
	"github.com/kilianp07/taxisim/core/metrics"
	"github.com/kilianp07/taxisim/core/model"
	"github.com/kilianp07/taxisim/core/simulation"
	"github.com/kilianp07/taxisim/internal/eventbus"
)

func TestScenarios(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, f := range files {
		sc, err := Load(f)
		require.NoError(t, err, f)
		t.Run(sc.Name, func(t *testing.T) {
			run, err := Prepare(sc, Options{})
			require.NoError(t, err)
			sum, err := run.Execute(context.Background())
			require.NoError(t, err)
			assert.NoError(t, run.Verify(sum))
			assert.Equal(t, sum.PassengersCreated, sum.MissedPickups+sum.Assignments)
		})
	}
}

func TestSingleTripTimeline(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "single_trip.yaml"))
	require.NoError(t, err)

	bus := eventbus.New[events.Event]()
	type stamped struct {
		tick int
		typ  string
	}
	var run *Run
	var seen []stamped
	bus.Subscribe(func(e events.Event) { seen = append(seen, stamped{run.Sim.Ticks(), e.Type()}) })

	run, err = Prepare(sc, Options{Events: bus})
	require.NoError(t, err)
	_, err = run.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []stamped{
		{1, events.TypePassengerCreated},
		{1, events.TypeAssignment},
		{6, events.TypePickup},
		{10, events.TypeDropoff},
	}, seen)
}

func TestRendererSeesEveryTick(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "single_trip.yaml"))
	require.NoError(t, err)

	var ticks []int
	var last metrics.Stats
	run, err := Prepare(sc, Options{Renderer: func(reg city.Registry, stats metrics.StatsProvider) (simulation.Actor, error) {
		assert.Equal(t, 10, reg.Width())
		return simulation.ActorFunc(func(context.Context) error {
			last = stats.Stats()
			ticks = append(ticks, last.Tick)
			return nil
		}), nil
	}})
	require.NoError(t, err)
	_, err = run.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, ticks)
	assert.Equal(t, 1, last.Dropoffs)
	assert.Equal(t, 1, last.FleetSize)
}

func TestVerifyReportsMismatches(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "single_trip.yaml"))
	require.NoError(t, err)
	sc.Ticks = 6
	run, err := Prepare(sc, Options{})
	require.NoError(t, err)
	sum, err := run.Execute(context.Background())
	require.NoError(t, err)

	err = run.Verify(sum)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dropoffs: want 1, got 0")
	assert.Contains(t, err.Error(), "taxi-001: want location 9,9, got location 5,5")

	sc.Expected.Positions["taxi-009"] = model.Position{}
	assert.Contains(t, run.Verify(sum).Error(), "taxi-009: no such vehicle")
}

func TestDecodeValidation(t *testing.T) {
	cases := map[string]string{
		"bad grid":       "width: 0\nheight: 3\n",
		"unknown key":    "width: 3\nheight: 3\ncolour: red\n",
		"vehicle off":    "width: 3\nheight: 3\nvehicles: [{x: 3, y: 0}]\n",
		"tick zero":      "width: 3\nheight: 3\nrequests: [{tick: 0, pickup: {x: 0, y: 0}, destination: {x: 1, y: 1}}]\n",
		"same endpoints": "width: 3\nheight: 3\nrequests: [{tick: 1, pickup: {x: 1, y: 1}, destination: {x: 1, y: 1}}]\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
	_, err := Decode(strings.NewReader("width: 3\nheight: 3\nvehicles: [{x: 3, y: 0}]\n"))
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load("no-file.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}
