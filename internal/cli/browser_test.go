package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/alexanderramin/tiendo/internal/cli/formatter"
	"github.com/alexanderramin/tiendo/internal/contract"
	"github.com/alexanderramin/tiendo/internal/dates"
	"github.com/alexanderramin/tiendo/internal/teatest"
	"github.com/alexanderramin/tiendo/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func overviewFixture(t *testing.T, withToday bool) *contract.OverviewView {
	t.Helper()
	app, repo := testApp(t)
	seedScheduled(t, repo)
	require.NoError(t, repo.Create(context.Background(), testutil.NewTestProject("SCL kiến trúc Thư viện",
		testutil.WithShortID("SCL02"), testutil.WithConstruction("01/09/2024", "15/03/2025"))))

	req := contract.OverviewRequest{}
	if !withToday {
		far := dates.MustParse("01/01/2030")
		req.Now = &far
	}
	view, err := app.Timeline.Overview(context.Background(), req)
	require.NoError(t, err)
	require.True(t, view.Show)
	return view
}

func browserOf(d *teatest.Driver) browserModel {
	return d.Model.(browserModel)
}

func TestBrowser_StartsCentredOnToday(t *testing.T) {
	view := overviewFixture(t, true)
	d := teatest.New(t, newBrowserModel(view, 1), teatest.WithSize(80, 20))
	d.DrainInit()

	m := browserOf(d)
	require.True(t, m.ready)
	todayCol := m.layout.Column(view.Overview.Today.Position)
	assert.Greater(t, m.offset, 0)
	assert.InDelta(t, todayCol-m.bodyWidth()/2, m.offset, 1)

	out := stripANSI(d.View())
	assert.Contains(t, out, "TỔNG QUAN")
	assert.Contains(t, out, "Hôm nay 15/09")
	assert.Contains(t, out, "Trụ sở", "names stay pinned while scrolled")
}

func TestBrowser_HorizontalScrollClamps(t *testing.T) {
	view := overviewFixture(t, false)
	d := teatest.New(t, newBrowserModel(view, 1), teatest.WithSize(60, 20))
	d.DrainInit()
	assert.Equal(t, 0, browserOf(d).offset, "no today marker starts at the left edge")

	d.Press(tea.KeyLeft)
	assert.Equal(t, 0, browserOf(d).offset)

	d.Press(tea.KeyRight)
	step := browserOf(d).step()
	assert.Equal(t, step, browserOf(d).offset)

	d.PressKey('$')
	m := browserOf(d)
	last := m.layout.Canvas.Width() - m.bodyWidth()
	assert.Equal(t, last, m.offset)

	d.Press(tea.KeyRight)
	assert.Equal(t, last, browserOf(d).offset)

	d.PressKey('0')
	assert.Equal(t, 0, browserOf(d).offset)
}

func TestBrowser_VerticalMovesByProject(t *testing.T) {
	view := overviewFixture(t, true)
	d := teatest.New(t, newBrowserModel(view, 2), teatest.WithSize(100, 10))
	d.DrainInit()

	m := browserOf(d)
	require.True(t, m.vp.AtTop())
	assert.Contains(t, stripANSI(d.View()), "Trụ sở")

	d.Press(tea.KeyDown)
	m = browserOf(d)
	assert.Equal(t, 1, m.row)
	assert.Equal(t, formatter.RowTop(1)-m.layout.Header, m.vp.YOffset)
	assert.Contains(t, stripANSI(d.View()), "Thư viện")

	for range 3 {
		d.Press(tea.KeyPgDown)
	}
	assert.Equal(t, 1, browserOf(d).row, "stops at the last project")
	assert.Contains(t, stripANSI(d.View()), "Thư viện")

	d.Press(tea.KeyPgUp)
	assert.Equal(t, 0, browserOf(d).row)
	assert.True(t, browserOf(d).vp.AtTop())
}

func TestBrowser_PinsNameWhenAxisIsOffScreen(t *testing.T) {
	view := overviewFixture(t, true)
	// Three body lines: the strip's name line sits below them.
	d := teatest.New(t, newBrowserModel(view, 2), teatest.WithSize(100, 7))
	d.DrainInit()
	require.Equal(t, 3, browserOf(d).vp.Height)

	assert.Contains(t, stripANSI(browserOf(d).vp.View()), "Trụ sở")

	d.PressKey('j')
	body := stripANSI(browserOf(d).vp.View())
	assert.True(t, strings.HasPrefix(body, "Thư viện"), body)
	assert.NotContains(t, body, "Trụ sở")
}

func TestBrowser_Resize(t *testing.T) {
	view := overviewFixture(t, true)
	d := teatest.New(t, newBrowserModel(view, 2), teatest.WithSize(100, 10))
	d.DrainInit()
	d.Press(tea.KeyDown)

	d.Resize(140, 40)
	m := browserOf(d)
	assert.Equal(t, 140, m.vp.Width)
	assert.Equal(t, 40-m.layout.Header-browserChrome, m.vp.Height)
	assert.Equal(t, 1, m.row, "resizing keeps the current project")
}

func TestBrowser_Quit(t *testing.T) {
	view := overviewFixture(t, true)
	d := teatest.New(t, newBrowserModel(view, 2), teatest.WithSize(80, 20))
	d.DrainInit()

	d.PressKey('q')
	assert.True(t, d.Quitting)
	assert.Empty(t, d.View())
}

func TestBrowser_ViewBeforeSize(t *testing.T) {
	view := overviewFixture(t, true)
	m := newBrowserModel(view, 2)
	assert.True(t, strings.HasPrefix(m.View(), "loading"))
}
