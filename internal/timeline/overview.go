package timeline

import (
	"sync"
	"time"

	"github.com/alexanderramin/tiendo/internal/dates"
)

// Overview geometry, in pixels.
const (
	RowHeight        = 220
	LabelColumnWidth = 100
	HeaderHeight     = 40
)

// OverviewInput is one project row.
type OverviewInput struct {
	ID     string
	Name   string
	Source MilestoneSource
}

// OverviewOptions configures a portfolio layout.
type OverviewOptions struct {
	Slots        []TaskSlot
	PixelsPerDay float64
	// PadDays defaults to DefaultPadDays; pass a negative value for none.
	PadDays int
	Now     time.Time
}

// MonthMarker is a vertical grid line at the first day of a month.
type MonthMarker struct {
	Label    string    `json:"label"`
	Date     time.Time `json:"date"`
	Position float64   `json:"position"`
}

// OverviewRow is one project's share of the overview. Lanes are packed
// independently per row.
type OverviewRow struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	EventPoints     []EventPoint     `json:"event_points"`
	ConnectingLines []ConnectingLine `json:"connecting_lines"`
	DurationLabels  []DurationLabel  `json:"duration_labels"`
	LaneFallbacks   int              `json:"lane_fallbacks"`
}

// Overview is the multi-project plan: one pixel scale and one span shared
// by every row.
type Overview struct {
	Span             Span          `json:"span"`
	Width            float64       `json:"width"`
	PixelsPerDay     float64       `json:"pixels_per_day"`
	RowHeight        int           `json:"row_height"`
	LabelColumnWidth int           `json:"label_column_width"`
	HeaderHeight     int           `json:"header_height"`
	Months           []MonthMarker `json:"months"`
	Today            *TodayMarker  `json:"today,omitempty"`
	Rows             []OverviewRow `json:"rows"`
}

// BuildOverview lays out several projects against a common axis spanning
// every parseable milestone of every project, drawn or not. It reports
// false when no project has a single parseable milestone.
func BuildOverview(inputs []OverviewInput, opts OverviewOptions) (*Overview, bool) {
	slots := opts.Slots
	if slots == nil {
		slots = DefaultSlots()
	}
	pad := opts.PadDays
	if pad == 0 {
		pad = DefaultPadDays
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	sc := NewPixelScaler(opts.PixelsPerDay)

	extractions := make([]Extraction, len(inputs))
	var lo, hi time.Time
	found := false
	for i, in := range inputs {
		extractions[i] = Extract(in.Source, slots)
		for _, d := range MilestoneDates(in.Source, slots) {
			if !found || d.Before(lo) {
				lo = d
			}
			if !found || d.After(hi) {
				hi = d
			}
			found = true
		}
	}
	if !found {
		return nil, false
	}
	span := NewSpan(lo, hi).Pad(pad)

	rows := make([]OverviewRow, len(inputs))
	var wg sync.WaitGroup
	for i := range inputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := layoutRow(extractions[i], span, sc, false)
			rows[i] = OverviewRow{
				ID:              inputs[i].ID,
				Name:            inputs[i].Name,
				EventPoints:     r.points,
				ConnectingLines: r.lines,
				DurationLabels:  r.labels,
				LaneFallbacks:   r.fallbacks,
			}
		}(i)
	}
	wg.Wait()

	return &Overview{
		Span:             span,
		Width:            sc.Width(span),
		PixelsPerDay:     sc.PixelsPerDay,
		RowHeight:        RowHeight,
		LabelColumnWidth: LabelColumnWidth,
		HeaderHeight:     HeaderHeight,
		Months:           MonthMarkers(span, sc),
		Today:            Today(now, span, sc),
		Rows:             rows,
	}, true
}

// MonthMarkers returns a marker for the first of every month from the
// span start's month through the span end. The first marker may sit left
// of the axis origin.
func MonthMarkers(span Span, sc Scaler) []MonthMarker {
	var out []MonthMarker
	for m := dates.FirstOfMonth(span.Start); !m.After(span.End); m = m.AddDate(0, 1, 0) {
		out = append(out, MonthMarker{
			Label:    dates.MonthLabel(m),
			Date:     m,
			Position: sc.Scale(dates.DayCount(span.Start, m), span),
		})
	}
	return out
}

// LaneFallbacks totals overflow placements across all rows.
func (o *Overview) LaneFallbacks() int {
	n := 0
	for _, r := range o.Rows {
		n += r.LaneFallbacks
	}
	return n
}
