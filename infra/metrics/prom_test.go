package metrics

import (
	"testing"

	coremetrics "github.com/kilianp07/taxisim/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromSink_RecordStats(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	st := coremetrics.Stats{Tick: 42, Pickups: 3, Dropoffs: 2, MissedPickups: 1, PassengersCreated: 5,
		ActiveVehicles: 2, FleetSize: 3, IdleTicks: 17, WaitingPassengers: 1}
	require.NoError(t, sink.RecordStats(st))

	assert.Equal(t, 42.0, testutil.ToFloat64(sink.tick))
	assert.Equal(t, 3.0, testutil.ToFloat64(sink.pickups))
	assert.Equal(t, 2.0, testutil.ToFloat64(sink.dropoffs))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.missed))
	assert.Equal(t, 5.0, testutil.ToFloat64(sink.created))
	assert.Equal(t, 2.0, testutil.ToFloat64(sink.active))
	assert.Equal(t, 3.0, testutil.ToFloat64(sink.fleet))
	assert.Equal(t, 17.0, testutil.ToFloat64(sink.idle))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.waiting))
}

func TestPromSink_RecordEvent(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordEvent("pickup"))
	require.NoError(t, sink.RecordEvent("pickup"))
	require.NoError(t, sink.RecordEvent("dropoff"))

	assert.Equal(t, 2.0, testutil.ToFloat64(sink.events.WithLabelValues("pickup")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.events.WithLabelValues("dropoff")))
}

func TestPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, first.RecordEvent("assignment"))
	assert.Equal(t, 1.0, testutil.ToFloat64(second.events.WithLabelValues("assignment")))

	require.NoError(t, second.RecordStats(coremetrics.Stats{Tick: 7}))
	assert.Equal(t, 7.0, testutil.ToFloat64(first.tick))
}
