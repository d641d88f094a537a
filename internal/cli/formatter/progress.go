package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tiendo/internal/progress"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a construction progress bar like [████░░░░]  45%,
// colored by the project's phase.
func RenderProgress(status progress.Status, width int) string {
	pct := status.Percentage
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if width < 2 {
		width = 2
	}

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %3d%%", PhaseStyle(status.Phase).Render(bar), pct)
}
