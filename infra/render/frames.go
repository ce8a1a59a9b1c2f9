package render

import (
	"context"
	"encoding/json"
	"io"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/kilianp07/taxisim/core/city"
	"github.com/kilianp07/taxisim/core/metrics"
)

// FrameItem is one item of the grid in a recorded frame.
type FrameItem struct {
	Kind string `json:"kind"`
	ID   string `json:"id,omitempty"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// RecordedFrame is a single JSON line written by FrameWriter.
type RecordedFrame struct {
	Tick  int           `json:"tick"`
	Items []FrameItem   `json:"items"`
	Stats metrics.Stats `json:"stats"`
}

type identified interface {
	ID() string
}

// FrameWriter appends one JSON frame per tick to a writer.
type FrameWriter struct {
	reg    city.Registry
	stats  metrics.StatsProvider
	enc    *json.Encoder
	closer io.Closer
}

// NewFrameWriter writes frames to w. If w is an io.Closer, Close closes it.
func NewFrameWriter(w io.Writer, reg city.Registry, stats metrics.StatsProvider) *FrameWriter {
	fw := &FrameWriter{reg: reg, stats: stats, enc: json.NewEncoder(w)}
	if c, ok := w.(io.Closer); ok {
		fw.closer = c
	}
	return fw
}

// NewRotatingFrameWriter writes frames to path, rotating the file once it
// grows beyond maxSizeMB.
func NewRotatingFrameWriter(path string, maxSizeMB, maxBackups, maxAgeDays int, reg city.Registry, stats metrics.StatsProvider) *FrameWriter {
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}
	return NewFrameWriter(lj, reg, stats)
}

// Act encodes the current frame.
func (f *FrameWriter) Act(context.Context) error {
	st := f.stats.Stats()
	items := f.reg.Items()
	frame := RecordedFrame{Tick: st.Tick, Items: make([]FrameItem, 0, len(items)), Stats: st}
	for _, it := range items {
		loc := it.Location()
		fi := FrameItem{X: loc.X, Y: loc.Y, Kind: "?"}
		if d, ok := it.(city.Drawable); ok {
			fi.Kind = string(d.Glyph())
		}
		if id, ok := it.(identified); ok {
			fi.ID = id.ID()
		}
		frame.Items = append(frame.Items, fi)
	}
	return f.enc.Encode(frame)
}

// Close closes the underlying writer when it supports it.
func (f *FrameWriter) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}
