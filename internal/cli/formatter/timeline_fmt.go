package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/tiendo/internal/contract"
	"github.com/alexanderramin/tiendo/internal/dates"
	"github.com/alexanderramin/tiendo/internal/timeline"
)

// DefaultTimelineWidth is the text timeline width when the terminal size
// is unknown.
const DefaultTimelineWidth = 100

// A strip is one timeline drawn around a horizontal axis: two lanes above,
// a bar row each side of the axis, two lanes below.
const (
	stripHeight = 11
	stripAxis   = 5
)

// laneRows returns the date and label row offsets of a lane from the axis.
func laneRows(l timeline.Lane) (date, label int) {
	switch l {
	case timeline.LaneInnerAbove:
		return -2, -3
	case timeline.LaneOuterAbove:
		return -4, -5
	case timeline.LaneInnerBelow:
		return 2, 3
	default:
		return 4, 5
	}
}

func barRow(l timeline.Lane) int {
	if l.Above() {
		return -1
	}
	return 1
}

type strip struct {
	points   []timeline.EventPoint
	lines    []timeline.ConnectingLine
	labels   []timeline.DurationLabel
	col      func(pos float64) int
	maxLabel int
}

// drawStrip draws s with its axis on row axisY spanning columns x0..x1.
func drawStrip(c *Canvas, axisY, x0, x1 int, s strip) {
	c.HLine(x0, x1, axisY, '─', tagAxis)

	for _, l := range s.lines {
		left := s.col(l.Left)
		c.HLine(left, max(s.col(l.Left+l.Width), left), axisY+barRow(l.Lane), '━', l.Color)
	}
	for _, d := range s.labels {
		left, right := s.col(d.Left), s.col(d.Left+d.Width)
		if right-left+1 >= len([]rune(d.Text)) {
			c.Centered((left+right)/2, axisY+barRow(d.Lane), d.Text, d.Color)
		}
	}

	for _, p := range s.points {
		x := s.col(p.Position)
		dateRow, labelRow := laneRows(p.Lane)
		c.Centered(x, axisY+dateRow, p.DisplayDate, p.Color)

		text := Truncate(strings.Join(p.LabelLines, " "), s.maxLabel)
		n := len([]rune(text))
		start := max(x-n/2, 0)
		if c.Free(start, start+n-1, axisY+labelRow) {
			c.Centered(x, axisY+labelRow, text, tagDim)
		}
	}

	// Stems run from the axis to the date row wherever nothing is drawn.
	for _, p := range s.points {
		x := s.col(p.Position)
		dateRow, _ := laneRows(p.Lane)
		step := 1
		if dateRow < 0 {
			step = -1
		}
		for dy := step; dy != dateRow; dy += step {
			if c.Free(x, x, axisY+dy) {
				c.Set(x, axisY+dy, '│', p.Color)
			}
		}
	}
	for _, p := range s.points {
		c.Set(s.col(p.Position), axisY, '●', p.Color)
	}
}

// drawTodayColumn marks x on every blank cell of rows top..bottom.
func drawTodayColumn(c *Canvas, x, top, bottom int) {
	for y := top; y <= bottom; y++ {
		if c.Free(x, x, y) {
			c.Set(x, y, '┊', tagToday)
		}
	}
}

func todayCaption(label string) string {
	return "▼ Hôm nay " + label
}

// PlanCanvas draws a single-project plan across width columns. Row 0
// carries the today caption; the strip follows.
func PlanCanvas(plan *timeline.RenderPlan, width int) *Canvas {
	if width < 20 {
		width = DefaultTimelineWidth
	}
	extent := plan.Width
	if plan.Mode == timeline.ModePercent || extent <= 0 {
		extent = 100
	}
	perUnit := float64(width-1) / extent
	col := func(pos float64) int { return int(math.Round(pos * perUnit)) }

	labelUnits := timeline.LabelWidthPixels
	if plan.Mode == timeline.ModePercent {
		labelUnits = timeline.LabelWidthPercent
	}

	c := NewCanvas(width, stripHeight+1)
	drawStrip(c, 1+stripAxis, 0, width-1, strip{
		points:   plan.EventPoints,
		lines:    plan.ConnectingLines,
		labels:   plan.DurationLabels,
		col:      col,
		maxLabel: max(int(labelUnits*perUnit), 5),
	})
	if plan.Today != nil {
		x := col(plan.Today.Position)
		c.Centered(x, 0, todayCaption(plan.Today.Label), tagToday)
		drawTodayColumn(c, x, 1, stripHeight)
	}
	return c
}

// FormatTimeline renders a project timeline view for the terminal.
func FormatTimeline(view *contract.TimelineView, width int) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s  %s", view.ShortID, view.Name)))
	b.WriteString("\n\n")

	if !view.Show || view.Plan == nil {
		b.WriteString(Dim("Chưa có mốc thời gian hợp lệ để hiển thị."))
		b.WriteString("\n")
		return b.String()
	}

	plan := view.Plan
	for _, line := range PlanCanvas(plan, width).Render() {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s → %s (%d ngày, %s)\n",
		Dim("Khoảng:"),
		dates.FormatFull(plan.Span.Start),
		dates.FormatFull(plan.Span.End),
		plan.Span.TotalDays,
		plan.Mode)
	if plan.Stats.LaneFallbacks > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("%d nhãn phải dùng làn dự phòng", plan.Stats.LaneFallbacks)))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatIntervals lists every paired task with its duration.
func FormatIntervals(plan *timeline.RenderPlan) string {
	if plan == nil || len(plan.DurationLabels) == 0 {
		return ""
	}
	rows := make([][]string, 0, len(plan.DurationLabels))
	for _, d := range plan.DurationLabels {
		rows = append(rows, []string{TagStyle(d.Color).Render("━━"), d.TaskName, fmt.Sprintf("%d", d.Days)})
	}
	return Table{Headers: []string{"", "TASK", "DAYS"}, Rows: rows, Right: map[int]bool{2: true}}.Render()
}
