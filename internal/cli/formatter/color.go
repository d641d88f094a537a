package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/alexanderramin/tiendo/internal/progress"
	"github.com/alexanderramin/tiendo/internal/svg"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired chrome palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TagStyle colors text with a task's palette entry, the same hex the SVG
// renderer uses.
func TagStyle(tag domain.ColorTag) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(svg.Hex(tag)))
}

// PhaseStyle returns the style for a project phase.
func PhaseStyle(phase progress.Phase) lipgloss.Style {
	switch phase {
	case progress.PhaseOverdue:
		return StyleRed
	case progress.PhaseDueSoon, progress.PhaseMissingAcceptance:
		return StyleYellow
	case progress.PhaseOnTrack:
		return StyleGreen
	case progress.PhaseSettling:
		return StyleBlue
	case progress.PhaseSettled:
		return StylePurple
	default:
		return StyleDim
	}
}

var phaseCaptions = map[progress.Phase]string{
	progress.PhaseSettled:           "SETTLED",
	progress.PhaseSettling:          "SETTLING",
	progress.PhasePreparing:         "PREPARING",
	progress.PhaseMissingAcceptance: "NO ACCEPTANCE",
	progress.PhaseNotStarted:        "NOT STARTED",
	progress.PhaseOverdue:           "OVERDUE",
	progress.PhaseDueSoon:           "DUE SOON",
	progress.PhaseOnTrack:           "ON TRACK",
}

// PhaseIndicator returns a colored marker such as "● OVERDUE".
func PhaseIndicator(phase progress.Phase) string {
	caption, ok := phaseCaptions[phase]
	if !ok {
		caption = strings.ToUpper(string(phase))
	}
	return PhaseStyle(phase).Render("● " + caption)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
