package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tiendo/internal/dates"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDays describes a calendar date relative to today in Vietnamese,
// e.g. "còn 3 ngày" or "trễ 12 ngày".
func RelativeDays(t, now time.Time) string {
	days := dates.DayCount(dates.Today(now), t)
	switch {
	case days == 0:
		return "hôm nay"
	case days == 1:
		return "ngày mai"
	case days == -1:
		return "hôm qua"
	case days > 0:
		return fmt.Sprintf("còn %d ngày", days)
	default:
		return fmt.Sprintf("trễ %d ngày", -days)
	}
}

// RelativeDaysStyled colors RelativeDays by urgency.
func RelativeDaysStyled(t, now time.Time) string {
	text := RelativeDays(t, now)
	days := dates.DayCount(dates.Today(now), t)
	switch {
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// HumanTimestamp renders an import or audit timestamp in local time.
func HumanTimestamp(t time.Time) string {
	return t.Local().Format("02/01/2006 15:04")
}

// TruncID shortens a UUID for table display.
func TruncID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Truncate clips s to max display cells, ending in an ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 || lipgloss.Width(s) <= max {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > max {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
