// Package dates handles the DD/MM/YYYY calendar strings carried on project
// records. All instants are UTC midnight; the source string stays the
// display authority wherever one exists.
package dates

import (
	"fmt"
	"math"
	"time"
)

// Layout is the only accepted input format.
const Layout = "02/01/2006"

const day = 24 * time.Hour

// Parse reads a strict DD/MM/YYYY string. Malformed strings and impossible
// calendar dates (31/02/2024) report false.
func Parse(s string) (time.Time, bool) {
	if len(s) != len(Layout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	// time.Parse range-checks the day of month, this guards against any
	// normalisation slipping through.
	if t.Format(Layout) != s {
		return time.Time{}, false
	}
	return t, true
}

// MustParse is Parse for literals in tests and fixtures.
func MustParse(s string) time.Time {
	t, ok := Parse(s)
	if !ok {
		panic(fmt.Sprintf("dates: invalid DD/MM/YYYY %q", s))
	}
	return t
}

// Valid reports whether s parses.
func Valid(s string) bool {
	_, ok := Parse(s)
	return ok
}

// DayCount returns round((b-a)/1 day). Negative when b precedes a.
func DayCount(a, b time.Time) int {
	return int(math.Round(float64(b.Sub(a)) / float64(day)))
}

// FormatShort renders DD/MM.
func FormatShort(t time.Time) string {
	return t.Format("02/01")
}

// FormatFull renders DD/MM/YYYY.
func FormatFull(t time.Time) string {
	return t.Format(Layout)
}

// ShortOf trims a DD/MM/YYYY source string to its DD/MM prefix without
// reparsing it.
func ShortOf(raw string) string {
	if len(raw) < 5 {
		return raw
	}
	return raw[:5]
}

// Today returns UTC midnight of now's UTC calendar date.
func Today(now time.Time) time.Time {
	u := now.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays shifts t by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// FirstOfMonth returns the first day of t's month at UTC midnight.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthLabel renders the overview month marker text, e.g. T6/2024.
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("T%d/%d", int(t.Month()), t.Year())
}
