// Package export writes run reports in machine readable formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/kilianp07/taxisim/core/report"
)

// Format names accepted by Write.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Write dispatches to WriteJSON or WriteCSV.
func Write(w io.Writer, format string, s report.Summary) error {
	switch format {
	case FormatJSON, "":
		return WriteJSON(w, s)
	case FormatCSV:
		return WriteCSV(w, s)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// WriteJSON writes the summary to w as indented JSON.
func WriteJSON(w io.Writer, s report.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteCSV writes the run totals as metric,value rows.
func WriteCSV(w io.Writer, s report.Summary) error {
	cw := csv.NewWriter(w)
	rows := [][]string{
		{"metric", "value"},
		{"run_id", s.RunID},
		{"ticks", strconv.Itoa(s.Ticks)},
		{"fleet_size", strconv.Itoa(s.FleetSize)},
		{"passengers_created", strconv.Itoa(s.PassengersCreated)},
		{"assignments", strconv.Itoa(s.Assignments)},
		{"pickups", strconv.Itoa(s.Pickups)},
		{"dropoffs", strconv.Itoa(s.Dropoffs)},
		{"missed_pickups", strconv.Itoa(s.MissedPickups)},
		{"active_vehicles", strconv.Itoa(s.ActiveVehicles)},
		{"waiting_passengers", strconv.Itoa(s.WaitingPassengers)},
		{"idle_ticks", strconv.Itoa(s.IdleTicks)},
		{"idle_mean", formatFloat(s.IdleMean)},
		{"idle_stddev", formatFloat(s.IdleStdDev)},
		{"utilization", formatFloat(s.Utilization)},
		{"miss_rate", formatFloat(s.MissRate)},
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// WriteVehiclesCSV writes one row per vehicle.
func WriteVehiclesCSV(w io.Writer, vs []report.VehicleRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"vehicle_id", "x", "y", "idle_ticks", "free"}); err != nil {
		return err
	}
	for _, v := range vs {
		rec := []string{
			v.ID,
			strconv.Itoa(v.X),
			strconv.Itoa(v.Y),
			strconv.Itoa(v.IdleTicks),
			strconv.FormatBool(v.Free),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
