package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/taxisim/core/report"
)

func sample() report.Summary {
	return report.Summary{
		RunID:             "r1",
		Ticks:             10,
		FleetSize:         2,
		PassengersCreated: 3,
		Pickups:           1,
		MissedPickups:     1,
		Utilization:       0.25,
		Vehicles: []report.VehicleRow{
			{ID: "taxi-001", X: 1, Y: 2, IdleTicks: 5, Free: true},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sample()))
	var got report.Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sample(), got)
	assert.Contains(t, buf.String(), `"missed_pickups": 1`)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample()))
	out := buf.String()
	assert.Contains(t, out, "metric,value\nrun_id,r1\nticks,10\n")
	assert.Contains(t, out, "utilization,0.25\n")
}

func TestWriteVehiclesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVehiclesCSV(&buf, sample().Vehicles))
	assert.Equal(t, "vehicle_id,x,y,idle_ticks,free\ntaxi-001,1,2,5,true\n", buf.String())
}

func TestWriteFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sample()))
	assert.Contains(t, buf.String(), "metric,value")
	buf.Reset()
	require.NoError(t, Write(&buf, "", sample()))
	assert.Contains(t, buf.String(), `"run_id": "r1"`)
	assert.Error(t, Write(&buf, "xml", sample()))
}
