package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tiendo/internal/cli/formatter"
	"github.com/alexanderramin/tiendo/internal/contract"
	"github.com/alexanderramin/tiendo/internal/dates"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type browserKeyMap struct {
	Left     key.Binding
	Right    key.Binding
	Start    key.Binding
	End      key.Binding
	Today    key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
}

func defaultBrowserKeys() browserKeyMap {
	return browserKeyMap{
		Left:     key.NewBinding(key.WithKeys("left", "h")),
		Right:    key.NewBinding(key.WithKeys("right", "l")),
		Start:    key.NewBinding(key.WithKeys("home", "0")),
		End:      key.NewBinding(key.WithKeys("end", "$")),
		Today:    key.NewBinding(key.WithKeys("t")),
		Up:       key.NewBinding(key.WithKeys("up", "k")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", " ")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// browserModel scrolls the portfolio overview in both directions with the
// month header and project names pinned.
type browserModel struct {
	view   *contract.OverviewView
	layout *formatter.OverviewLayout
	keys   browserKeyMap
	vp     viewport.Model

	// offset is the first visible timeline column, row the project at
	// the top of the viewport.
	offset   int
	row      int
	width    int
	height   int
	ready    bool
	quitting bool
}

const browserChrome = 2

func newBrowserModel(view *contract.OverviewView, daysPerCol int) browserModel {
	// Vertical movement is by whole projects; the viewport only displays.
	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.KeyMap{}
	return browserModel{
		view:   view,
		layout: formatter.LayoutOverview(view.Overview, daysPerCol),
		keys:   defaultBrowserKeys(),
		vp:     vp,
	}
}

func (m browserModel) Init() tea.Cmd { return nil }

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-m.layout.Header-browserChrome, 1)
		if !m.ready {
			m.ready = true
			m.offset = m.todayOffset()
		}
		m.offset = m.clamp(m.offset)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Left):
			m.offset = m.clamp(m.offset - m.step())
		case key.Matches(msg, m.keys.Right):
			m.offset = m.clamp(m.offset + m.step())
		case key.Matches(msg, m.keys.Start):
			m.offset = 0
		case key.Matches(msg, m.keys.End):
			m.offset = m.clamp(m.layout.Canvas.Width())
		case key.Matches(msg, m.keys.Today):
			m.offset = m.todayOffset()
		case key.Matches(msg, m.keys.Up):
			m.row = m.clampRow(m.row - 1)
		case key.Matches(msg, m.keys.Down):
			m.row = m.clampRow(m.row + 1)
		case key.Matches(msg, m.keys.PageUp):
			m.row = m.clampRow(m.row - m.rowsPerPage())
		case key.Matches(msg, m.keys.PageDown):
			m.row = m.clampRow(m.row + m.rowsPerPage())
		default:
			return m, nil
		}
		m.refresh()
		return m, nil
	}
	return m, nil
}

// bodyWidth is the number of timeline columns visible beside the names.
func (m browserModel) bodyWidth() int {
	return max(m.width-formatter.NameColumnWidth, 1)
}

func (m browserModel) step() int {
	return max(m.bodyWidth()/4, 1)
}

func (m browserModel) clamp(offset int) int {
	return max(min(offset, m.layout.Canvas.Width()-m.bodyWidth()), 0)
}

func (m browserModel) clampRow(row int) int {
	return max(min(row, len(m.view.Overview.Rows)-1), 0)
}

// rowsPerPage is how many whole projects fit in the viewport, at least one.
func (m browserModel) rowsPerPage() int {
	return max(m.vp.Height/formatter.OverviewRowHeight, 1)
}

// todayOffset centres the today column, or starts at the left edge.
func (m browserModel) todayOffset() int {
	today := m.view.Overview.Today
	if today == nil {
		return 0
	}
	return m.clamp(m.layout.Column(today.Position) - m.bodyWidth()/2)
}

// refresh scrolls the viewport to the top of m.row and redraws the body,
// pinning the name of a project whose name line is out of view.
func (m *browserModel) refresh() {
	h := m.layout.Header
	lines := m.layout.Lines(m.offset, m.bodyWidth(), formatter.NameColumnWidth)
	m.vp.SetContent(strings.Join(lines[h:], "\n"))
	m.vp.SetYOffset(formatter.RowTop(m.row) - h)

	lines = m.layout.PinnedLines(m.offset, m.bodyWidth(), formatter.NameColumnWidth, h+m.vp.YOffset, m.vp.Height)
	m.vp.SetContent(strings.Join(lines[h:], "\n"))
}

func (m browserModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading…"
	}

	var b strings.Builder
	span := m.view.Overview.Span
	title := fmt.Sprintf("%s  %s → %s  %d dự án",
		formatter.StyleHeader.Render("TỔNG QUAN"),
		dates.FormatFull(span.Start), dates.FormatFull(span.End),
		len(m.view.Overview.Rows))
	if today := m.view.Overview.Today; today != nil {
		title += "  " + formatter.StyleRed.Render("Hôm nay "+today.Label)
	}
	b.WriteString(title + "\n")

	header := m.layout.Lines(m.offset, m.bodyWidth(), formatter.NameColumnWidth)[:m.layout.Header]
	b.WriteString(strings.Join(header, "\n") + "\n")
	b.WriteString(m.vp.View() + "\n")
	b.WriteString(formatter.Dim(fmt.Sprintf("←/→ cuộn  ↑/↓ dự án  t hôm nay  q thoát  [%d/%d]",
		m.offset, max(m.layout.Canvas.Width()-m.bodyWidth(), 0))))
	return b.String()
}
