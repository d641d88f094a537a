package timeline

import (
	"time"

	"github.com/alexanderramin/tiendo/internal/dates"
)

// Options configures a single-project layout.
type Options struct {
	// Slots defaults to DefaultSlots.
	Slots []TaskSlot
	// Scaler defaults to the percent scaler.
	Scaler Scaler
	// Now positions the today marker; zero means time.Now.
	Now time.Time
	// PadDays widens the span on both sides.
	PadDays int
}

// row is the lane-dependent part of a plan, shared with the overview.
type row struct {
	points    []EventPoint
	lines     []ConnectingLine
	labels    []DurationLabel
	fallbacks int
}

// Build lays out one project. It reports false when no milestone parsed,
// which callers should treat as "nothing to show" rather than an error.
func Build(src MilestoneSource, opts Options) (*RenderPlan, bool) {
	slots := opts.Slots
	if slots == nil {
		slots = DefaultSlots()
	}
	sc := opts.Scaler
	if sc == nil {
		sc = NewPercentScaler()
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	ex := Extract(src, slots)
	span, ok := SpanOf(ex.Events)
	if !ok {
		return nil, false
	}
	span = span.Pad(opts.PadDays)

	r := layoutRow(ex, span, sc, sc.Mode() == ModePercent)
	return &RenderPlan{
		Mode:            sc.Mode(),
		Span:            span,
		Width:           sc.Width(span),
		EventPoints:     r.points,
		ConnectingLines: r.lines,
		DurationLabels:  r.labels,
		Today:           Today(now, span, sc),
		Stats: Stats{
			Events:        len(r.points),
			LaneFallbacks: r.fallbacks,
		},
	}, true
}

// layoutRow positions events and intervals with a fresh lane state. When
// fullAtStart is set, events on the span's first day show the full
// DD/MM/YYYY so the reader can anchor the year.
func layoutRow(ex Extraction, span Span, sc Scaler, fullAtStart bool) row {
	lanes := NewLaneAssigner(sc)
	points := make([]EventPoint, 0, len(ex.Events))
	for _, ev := range ex.Events {
		pos := sc.Scale(dates.DayCount(span.Start, ev.Date), span)
		lane := lanes.Place(ev.TaskName, ev.Role, pos)

		display := dates.ShortOf(ev.DateStr)
		if fullAtStart && ev.Date.Equal(span.Start) {
			display = ev.DateStr
		}
		points = append(points, EventPoint{
			TaskName:    ev.TaskName,
			Label:       ev.Label,
			LabelLines:  SplitLabel(ev.Label),
			DisplayDate: display,
			SourceDate:  ev.DateStr,
			Position:    pos,
			Lane:        lane,
			Color:       ev.Color,
			Role:        ev.Role,
		})
	}

	lines, labels := Intervals(ex.Tasks, lanes, span, sc)
	return row{points: points, lines: lines, labels: labels, fallbacks: lanes.Fallbacks()}
}
