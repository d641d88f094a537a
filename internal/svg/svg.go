// Package svg draws timeline render plans as standalone SVG documents.
package svg

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/alexanderramin/tiendo/internal/timeline"
)

// palette maps color tags to fills. Unknown tags draw grey.
var palette = map[domain.ColorTag]string{
	domain.ColorGreen:    "#27ae60",
	domain.ColorPurple:   "#8e44ad",
	domain.ColorRed:      "#c0392b",
	domain.ColorBlue:     "#2980b9",
	domain.ColorOrange:   "#e67e22",
	domain.ColorPink:     "#e84393",
	domain.ColorCyan:     "#00a8b5",
	domain.ColorDarkBlue: "#1f3a93",
}

// Hex returns the fill for tag.
func Hex(tag domain.ColorTag) string {
	if c, ok := palette[tag]; ok {
		return c
	}
	return "#7f8c8d"
}

const (
	fontFamily = "Arial, sans-serif"
	axisColor  = "#34495e"
	todayColor = "#e74c3c"
	gridColor  = "#dfe6e9"
	textColor  = "#2d3436"

	// DefaultCanvasWidth is the drawing width for percent-mode plans.
	DefaultCanvasWidth = 1200.0
	marginX            = 40.0
	rowHeight          = float64(timeline.RowHeight)
	lineHeight         = 13.0
)

// laneOffset is the vertical distance from the axis to a lane's label
// baseline. Negative offsets are above the axis.
func laneOffset(l timeline.Lane) float64 {
	switch l {
	case timeline.LaneInnerAbove:
		return -38
	case timeline.LaneOuterAbove:
		return -80
	case timeline.LaneInnerBelow:
		return 38
	default:
		return 80
	}
}

// barOffset is where a lane's connecting line runs, just inside the labels.
func barOffset(l timeline.Lane) float64 {
	if l.Above() {
		return laneOffset(l) + 10
	}
	return laneOffset(l) - 10
}

// Options controls plan rendering.
type Options struct {
	// CanvasWidth is the drawing width in percent mode; pixel mode uses the
	// plan's own width.
	CanvasWidth float64
	Title       string
}

// RenderPlan draws a single-project plan.
func RenderPlan(plan *timeline.RenderPlan, opts Options) string {
	canvas := opts.CanvasWidth
	if canvas <= 0 {
		canvas = DefaultCanvasWidth
	}
	x := func(pos float64) float64 { return marginX + pos }
	width := plan.Width + 2*marginX
	if plan.Mode == timeline.ModePercent {
		x = func(pos float64) float64 { return marginX + pos/100*canvas }
		width = canvas + 2*marginX
	}
	scaleWidth := func(w float64) float64 { return x(w) - x(0) }

	top := 0.0
	if opts.Title != "" {
		top = 30
	}
	height := top + rowHeight

	var b strings.Builder
	header(&b, width, height)
	if opts.Title != "" {
		fmt.Fprintf(&b, `<text x="%.1f" y="20" class="title">%s</text>`+"\n", marginX, escapeXML(opts.Title))
	}
	axisY := top + rowHeight/2
	drawRow(&b, rowData{
		points: plan.EventPoints,
		lines:  plan.ConnectingLines,
		labels: plan.DurationLabels,
	}, axisY, x(0), x(plan.Width), x, scaleWidth)
	if plan.Today != nil {
		drawToday(&b, x(plan.Today.Position), top, height, plan.Today.Label)
	}
	b.WriteString("</svg>\n")
	return b.String()
}

// RenderOverview draws the portfolio view: a month header, one row per
// project and a name column on the left.
func RenderOverview(ov *timeline.Overview) string {
	left := float64(ov.LabelColumnWidth)
	head := float64(ov.HeaderHeight)
	rh := float64(ov.RowHeight)
	width := left + ov.Width + marginX
	height := head + rh*float64(len(ov.Rows))
	x := func(pos float64) float64 { return left + pos }
	scaleWidth := func(w float64) float64 { return w }

	var b strings.Builder
	header(&b, width, height)

	for _, m := range ov.Months {
		mx := x(m.Position)
		if mx < left {
			continue
		}
		fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
			mx, head-10, mx, height, gridColor)
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" class="month">%s</text>`+"\n", mx+3, head-16, escapeXML(m.Label))
	}

	for i, row := range ov.Rows {
		rowTop := head + rh*float64(i)
		if i%2 == 1 {
			fmt.Fprintf(&b, `<rect x="0" y="%.1f" width="%.1f" height="%.1f" fill="#f8f9fa"/>`+"\n", rowTop, width, rh)
		}
		fmt.Fprintf(&b, `<text x="8" y="%.1f" class="row-name">%s</text>`+"\n", rowTop+rh/2+4, escapeXML(row.Name))
		drawRow(&b, rowData{
			points: row.EventPoints,
			lines:  row.ConnectingLines,
			labels: row.DurationLabels,
		}, rowTop+rh/2, x(0), x(ov.Width), x, scaleWidth)
	}

	if ov.Today != nil {
		drawToday(&b, x(ov.Today.Position), head-10, height, ov.Today.Label)
	}
	b.WriteString("</svg>\n")
	return b.String()
}

type rowData struct {
	points []timeline.EventPoint
	lines  []timeline.ConnectingLine
	labels []timeline.DurationLabel
}

func header(b *strings.Builder, width, height float64) {
	fmt.Fprintf(b, `<?xml version="1.0" encoding="UTF-8"?>
<svg width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<defs>
<style>
.title { font-family: %s; font-size: 15px; font-weight: bold; fill: %s; }
.label { font-family: %s; font-size: 11px; fill: %s; }
.date { font-family: %s; font-size: 10px; font-weight: bold; }
.duration { font-family: %s; font-size: 10px; font-style: italic; }
.month { font-family: %s; font-size: 11px; fill: %s; }
.row-name { font-family: %s; font-size: 12px; font-weight: bold; fill: %s; }
.today { font-family: %s; font-size: 10px; fill: %s; }
</style>
</defs>
`, width, height, width, height,
		fontFamily, textColor,
		fontFamily, textColor,
		fontFamily,
		fontFamily,
		fontFamily, axisColor,
		fontFamily, textColor,
		fontFamily, todayColor)
}

func drawRow(b *strings.Builder, row rowData, axisY, x0, x1 float64, x func(float64) float64, scaleWidth func(float64) float64) {
	fmt.Fprintf(b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`+"\n",
		x0, axisY, x1, axisY, axisColor)

	for _, l := range row.lines {
		y := axisY + barOffset(l.Lane)
		lx := x(l.Left)
		fmt.Fprintf(b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="3" stroke-opacity="0.6"/>`+"\n",
			lx, y, lx+scaleWidth(l.Width), y, Hex(l.Color))
	}

	for _, d := range row.labels {
		y := axisY + barOffset(d.Lane)
		if d.Lane.Above() {
			y -= 4
		} else {
			y += 12
		}
		cx := x(d.Left) + scaleWidth(d.Width)/2
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" text-anchor="middle" class="duration" fill="%s">%s</text>`+"\n",
			cx, y, Hex(d.Color), escapeXML(d.Text))
	}

	for _, p := range row.points {
		drawPoint(b, p, x(p.Position), axisY)
	}
}

// drawPoint draws the axis marker, the leader to the lane and the label
// block. The date sits nearest the axis; label lines stack outward.
func drawPoint(b *strings.Builder, p timeline.EventPoint, px, axisY float64) {
	color := Hex(p.Color)
	laneY := axisY + laneOffset(p.Lane)

	fmt.Fprintf(b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1" stroke-dasharray="2,2"/>`+"\n",
		px, axisY, px, laneY, color)
	fmt.Fprintf(b, `<circle cx="%.1f" cy="%.1f" r="5" fill="%s" stroke="#ffffff" stroke-width="1.5"/>`+"\n",
		px, axisY, color)

	lines := append([]string{p.DisplayDate}, p.LabelLines...)
	step := lineHeight
	y := laneY + 4
	if p.Lane.Above() {
		step = -lineHeight
		y = laneY
	}
	for i, text := range lines {
		class := "label"
		fill := ""
		if i == 0 {
			class = "date"
			fill = fmt.Sprintf(` fill="%s"`, color)
		}
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" text-anchor="middle" class="%s"%s>%s</text>`+"\n",
			px, y+float64(i)*step, class, fill, escapeXML(text))
	}
}

func drawToday(b *strings.Builder, tx, top, bottom float64, label string) {
	fmt.Fprintf(b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5" stroke-dasharray="6,4"/>`+"\n",
		tx, top, tx, bottom, todayColor)
	fmt.Fprintf(b, `<text x="%.1f" y="%.1f" text-anchor="middle" class="today">%s</text>`+"\n",
		tx, top+10, escapeXML("Hôm nay "+label))
}

// escapeXML escapes the five XML special characters.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
