package formatter

import (
	"strings"

	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Chrome tags for canvas cells that are not task colored.
const (
	tagNone  domain.ColorTag = ""
	tagAxis  domain.ColorTag = "~axis"
	tagToday domain.ColorTag = "~today"
	tagDim   domain.ColorTag = "~dim"
)

type cell struct {
	r   rune
	tag domain.ColorTag
}

// Canvas is a fixed grid of character cells. Timelines are drawn onto it
// at column resolution and then rendered, whole or as a horizontal window.
type Canvas struct {
	width int
	rows  [][]cell
}

// NewCanvas allocates a blank width x height grid.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{width: width, rows: make([][]cell, height)}
	for y := range c.rows {
		c.rows[y] = make([]cell, width)
		for x := range c.rows[y] {
			c.rows[y][x].r = ' '
		}
	}
	return c
}

// Width is the grid width in cells.
func (c *Canvas) Width() int { return c.width }

// Height is the number of rows.
func (c *Canvas) Height() int { return len(c.rows) }

// Set writes one cell; out-of-range writes are dropped.
func (c *Canvas) Set(x, y int, r rune, tag domain.ColorTag) {
	if y < 0 || y >= len(c.rows) || x < 0 || x >= c.width {
		return
	}
	c.rows[y][x] = cell{r: r, tag: tag}
}

// Text writes s starting at column x, clipped at both edges.
func (c *Canvas) Text(x, y int, s string, tag domain.ColorTag) {
	for i, r := range []rune(s) {
		c.Set(x+i, y, r, tag)
	}
}

// Centered writes s centred on column x, shifted inward so it stays on the
// grid when it would otherwise hang off an edge.
func (c *Canvas) Centered(x, y int, s string, tag domain.ColorTag) {
	n := len([]rune(s))
	start := x - n/2
	if start+n > c.width {
		start = c.width - n
	}
	start = max(start, 0)
	c.Text(start, y, s, tag)
}

// HLine fills columns x0..x1 inclusive on row y.
func (c *Canvas) HLine(x0, x1, y int, r rune, tag domain.ColorTag) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		c.Set(x, y, r, tag)
	}
}

// Free reports whether columns x0..x1 on row y are blank.
func (c *Canvas) Free(x0, x1, y int) bool {
	if y < 0 || y >= len(c.rows) {
		return false
	}
	for x := max(x0, 0); x <= x1 && x < c.width; x++ {
		if c.rows[y][x].r != ' ' {
			return false
		}
	}
	return true
}

// Render returns every row styled, trailing blanks trimmed.
func (c *Canvas) Render() []string {
	return c.Window(0, c.width)
}

// Window renders columns [from, from+width) of every row.
func (c *Canvas) Window(from, width int) []string {
	from = max(from, 0)
	to := min(from+width, c.width)
	out := make([]string, len(c.rows))
	for y, row := range c.rows {
		if from >= to {
			continue
		}
		out[y] = renderRun(row[from:to])
	}
	return out
}

// Plain returns the grid without styling, for tests and pipes.
func (c *Canvas) Plain() []string {
	out := make([]string, len(c.rows))
	for y, row := range c.rows {
		rs := make([]rune, len(row))
		for x, cl := range row {
			rs[x] = cl.r
		}
		out[y] = strings.TrimRight(string(rs), " ")
	}
	return out
}

func renderRun(row []cell) string {
	end := len(row)
	for end > 0 && row[end-1].r == ' ' {
		end--
	}
	var b strings.Builder
	for i := 0; i < end; {
		j := i
		var seg []rune
		for j < end && row[j].tag == row[i].tag {
			seg = append(seg, row[j].r)
			j++
		}
		b.WriteString(cellStyle(row[i].tag).Render(string(seg)))
		i = j
	}
	return b.String()
}

func cellStyle(tag domain.ColorTag) lipgloss.Style {
	switch tag {
	case tagNone:
		return lipgloss.NewStyle()
	case tagAxis:
		return StyleFg
	case tagToday:
		return StyleRed.Bold(true)
	case tagDim:
		return StyleDim
	default:
		return TagStyle(tag)
	}
}
