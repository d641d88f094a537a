package formatter

import (
	"math"
	"strings"

	"github.com/alexanderramin/tiendo/internal/contract"
	"github.com/alexanderramin/tiendo/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

const (
	// DefaultDaysPerColumn compresses the overview so a year fits in
	// roughly 180 columns.
	DefaultDaysPerColumn = 2
	// NameColumnWidth is the sticky project-name column.
	NameColumnWidth = 16

	// OverviewRowHeight is the number of canvas rows per project.
	OverviewRowHeight = stripHeight + rowGap

	overviewHeader = 2
	rowGap         = 1
)

// OverviewLayout is a portfolio overview drawn onto a canvas, with the
// project name for each canvas row kept apart so callers can pin it while
// scrolling horizontally.
type OverviewLayout struct {
	Canvas *Canvas
	Names  []string
	IDs    []string
	// Header is the number of leading rows holding month captions.
	Header int

	perCol float64
}

// Column maps an overview position to its canvas column.
func (l *OverviewLayout) Column(pos float64) int {
	return int(math.Round(pos / l.perCol))
}

// LayoutOverview draws ov at daysPerCol days per character column.
func LayoutOverview(ov *timeline.Overview, daysPerCol int) *OverviewLayout {
	if daysPerCol < 1 {
		daysPerCol = DefaultDaysPerColumn
	}
	perCol := ov.PixelsPerDay * float64(daysPerCol)
	if perCol <= 0 {
		perCol = timeline.DefaultPixelsPerDay * float64(daysPerCol)
	}
	height := RowTop(len(ov.Rows))
	l := &OverviewLayout{
		Names:  make([]string, height),
		IDs:    make([]string, height),
		Header: overviewHeader,
		perCol: perCol,
	}
	col := l.Column
	width := col(ov.Width) + 1
	l.Canvas = NewCanvas(width, height)
	c := l.Canvas

	for _, m := range ov.Months {
		x := col(m.Position)
		if x < 0 {
			continue
		}
		c.Set(x, 1, '┬', tagDim)
		if c.Free(x, x+len(m.Label)-1, 0) {
			c.Text(x, 0, m.Label, tagDim)
		}
	}

	maxLabel := max(int(timeline.LabelWidthPixels/perCol), 5)
	for i, row := range ov.Rows {
		top := RowTop(i)
		axis := top + stripAxis
		drawStrip(c, axis, 0, width-1, strip{
			points:   row.EventPoints,
			lines:    row.ConnectingLines,
			labels:   row.DurationLabels,
			col:      col,
			maxLabel: maxLabel,
		})
		for _, m := range ov.Months {
			if x := col(m.Position); x >= 0 && x < width && c.rows[axis][x].r == '─' {
				c.Set(x, axis, '┼', tagAxis)
			}
		}
		l.Names[axis] = row.Name
		for y := top; y < top+stripHeight; y++ {
			l.IDs[y] = row.ID
		}
		l.Names[axis+1] = row.ID
	}

	if ov.Today != nil {
		x := col(ov.Today.Position)
		drawTodayColumn(c, x, 1, height-1)
		c.Set(x, 1, '▼', tagToday)
	}
	return l
}

// Lines renders columns [from, from+width) with the name column pinned on
// the left, nameWidth cells wide.
func (l *OverviewLayout) Lines(from, width, nameWidth int) []string {
	return l.render(from, width, nameWidth, l.Names)
}

// PinnedLines is Lines for a window showing canvas rows [top, top+visible).
// When the project cut by the top edge has its name line out of view, the
// name is repeated on the first visible row.
func (l *OverviewLayout) PinnedLines(from, width, nameWidth, top, visible int) []string {
	names := l.Names
	if i, ok := l.RowAt(top); ok {
		axis := RowTop(i) + stripAxis
		if axis < top || axis >= top+visible {
			names = append([]string(nil), l.Names...)
			names[top] = l.Names[axis]
		}
	}
	return l.render(from, width, nameWidth, names)
}

// RowAt returns the project whose strip covers canvas row y.
func (l *OverviewLayout) RowAt(y int) (int, bool) {
	if y < l.Header || y >= len(l.IDs) || l.IDs[y] == "" {
		return 0, false
	}
	return (y - l.Header) / OverviewRowHeight, true
}

func (l *OverviewLayout) render(from, width, nameWidth int, names []string) []string {
	body := l.Canvas.Window(from, width)
	out := make([]string, len(body))
	for y, line := range body {
		name := Truncate(names[y], nameWidth-1)
		pad := strings.Repeat(" ", max(nameWidth-lipgloss.Width(name), 0))
		style := StyleBold
		if y > 0 && names[y-1] != "" && names[y-1] != names[y] {
			style = StyleDim
		}
		out[y] = style.Render(name) + pad + line
	}
	return out
}

// RowTop returns the first canvas row of the i-th project.
func RowTop(i int) int {
	return overviewHeader + i*OverviewRowHeight
}

// FormatOverview renders the whole portfolio overview, unscrolled.
func FormatOverview(view *contract.OverviewView, daysPerCol int) string {
	var b strings.Builder
	b.WriteString(Header("Tổng quan tiến độ"))
	b.WriteString("\n\n")

	if !view.Show || view.Overview == nil {
		b.WriteString(Dim("Không có dự án nào có mốc thời gian hợp lệ."))
		b.WriteString("\n")
		return b.String()
	}

	l := LayoutOverview(view.Overview, daysPerCol)
	if today := view.Overview.Today; today != nil {
		b.WriteString(strings.Repeat(" ", NameColumnWidth))
		b.WriteString(StyleRed.Render(todayCaption(today.Label)))
		b.WriteString("\n")
	}
	for _, line := range l.Lines(0, l.Canvas.Width(), NameColumnWidth) {
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}
	if len(view.Skipped) > 0 {
		b.WriteString("\n")
		b.WriteString(Dim("Bỏ qua (không có mốc hợp lệ): " + strings.Join(view.Skipped, ", ")))
		b.WriteString("\n")
	}
	return b.String()
}
