package render

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kilianp07/taxisim/core/city"
	"github.com/kilianp07/taxisim/core/metrics"
)

const emptyCell = '.'

// TextRenderer draws the grid as ASCII art followed by a stats line.
type TextRenderer struct {
	reg   city.Registry
	stats metrics.StatsProvider
	out   io.Writer
	every int
}

// NewTextRenderer writes a frame to out every n ticks. n <= 1 draws every tick.
func NewTextRenderer(reg city.Registry, stats metrics.StatsProvider, out io.Writer, every int) *TextRenderer {
	if every < 1 {
		every = 1
	}
	return &TextRenderer{reg: reg, stats: stats, out: out, every: every}
}

// Act draws the current frame when the tick is due.
func (r *TextRenderer) Act(context.Context) error {
	st := r.stats.Stats()
	if st.Tick%r.every != 0 {
		return nil
	}
	_, err := io.WriteString(r.out, Frame(r.reg, st))
	return err
}

// Frame renders the registry as text. Items drawn later cover earlier ones on
// the same cell; items without a glyph are drawn as '?'.
func Frame(reg city.Registry, st metrics.Stats) string {
	w, h := reg.Width(), reg.Height()
	grid := make([][]rune, h)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(string(emptyCell), w))
	}
	for _, it := range reg.Items() {
		loc := it.Location()
		if loc.X < 0 || loc.Y < 0 || loc.X >= w || loc.Y >= h {
			continue
		}
		g := '?'
		if d, ok := it.(city.Drawable); ok {
			g = d.Glyph()
		}
		grid[loc.Y][loc.X] = g
	}

	var b strings.Builder
	b.WriteString(StatsLine(st))
	b.WriteByte('\n')
	for _, row := range grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// StatsLine formats the counters shown above each frame.
func StatsLine(st metrics.Stats) string {
	return fmt.Sprintf("tick %d | created %d | collected %d | dropped off %d | missed %d | active %d/%d",
		st.Tick, st.PassengersCreated, st.Pickups, st.Dropoffs, st.MissedPickups, st.ActiveVehicles, st.FleetSize)
}
