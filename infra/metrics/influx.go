package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/taxisim/core/metrics"
	"github.com/kilianp07/taxisim/infra/logger"
)

// InfluxConfig holds the connection settings of an InfluxSink.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
	// RunID tags every point so several runs can share a bucket.
	RunID string `json:"run_id"`
}

// InfluxSink writes per-tick statistics and events to InfluxDB.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	runID    string
	now      func() time.Time
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		runID:    cfg.RunID,
		now:      time.Now,
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a NopSink
// when the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

func (s *InfluxSink) point(measurement string) *write.Point {
	p := write.NewPointWithMeasurement(measurement)
	if s.runID != "" {
		p = p.AddTag("run_id", s.runID)
	}
	return p
}

// RecordStats writes one tick_stats point.
func (s *InfluxSink) RecordStats(st coremetrics.Stats) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := s.point("tick_stats").
		AddField("tick", st.Tick).
		AddField("pickups", st.Pickups).
		AddField("dropoffs", st.Dropoffs).
		AddField("missed_pickups", st.MissedPickups).
		AddField("passengers_created", st.PassengersCreated).
		AddField("active_vehicles", st.ActiveVehicles).
		AddField("fleet_size", st.FleetSize).
		AddField("idle_ticks", st.IdleTicks).
		AddField("waiting_passengers", st.WaitingPassengers).
		SetTime(s.now())
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordEvent writes a simulation_event point tagged with the event type.
func (s *InfluxSink) RecordEvent(eventType string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := s.point("simulation_event").
		AddTag("type", eventType).
		AddField("count", 1).
		SetTime(s.now())
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}
