package timeline

import (
	"time"

	"github.com/alexanderramin/tiendo/internal/dates"
)

// Today places the today marker, or returns nil when now falls outside the
// span. now is reduced to its UTC calendar date first.
func Today(now time.Time, span Span, sc Scaler) *TodayMarker {
	today := dates.Today(now)
	if !span.Contains(today) {
		return nil
	}
	return &TodayMarker{
		Position: sc.Scale(dates.DayCount(span.Start, today), span),
		Label:    dates.FormatShort(today),
	}
}
