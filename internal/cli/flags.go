package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tiendo/internal/dates"
	"github.com/alexanderramin/tiendo/internal/timeline"
	"github.com/spf13/pflag"
)

// outputFormat selects how a command writes its result.
type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatSVG  outputFormat = "svg"
)

// formatFlag is a pflag.Value restricted to a fixed set of formats.
type formatFlag struct {
	value   outputFormat
	allowed []outputFormat
}

var _ pflag.Value = (*formatFlag)(nil)

func newFormatFlag(allowed ...outputFormat) *formatFlag {
	return &formatFlag{value: allowed[0], allowed: allowed}
}

func (f *formatFlag) String() string { return string(f.value) }

func (f *formatFlag) Set(s string) error {
	for _, a := range f.allowed {
		if strings.EqualFold(s, string(a)) {
			f.value = a
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", f.choices())
}

func (f *formatFlag) Type() string { return "format" }

func (f *formatFlag) choices() string {
	parts := make([]string, len(f.allowed))
	for i, a := range f.allowed {
		parts[i] = string(a)
	}
	return strings.Join(parts, "|")
}

// modeFlag parses --mode into a timeline.Mode.
type modeFlag struct {
	value timeline.Mode
}

var _ pflag.Value = (*modeFlag)(nil)

func (m *modeFlag) String() string {
	if m.value == "" {
		return string(timeline.ModePercent)
	}
	return string(m.value)
}

func (m *modeFlag) Set(s string) error {
	mode, ok := timeline.ParseMode(s)
	if !ok {
		return fmt.Errorf("must be percent or pixel")
	}
	m.value = mode
	return nil
}

func (m *modeFlag) Type() string { return "mode" }

// dateFlag holds an optional DD/MM/YYYY date.
type dateFlag struct {
	value *time.Time
}

var _ pflag.Value = (*dateFlag)(nil)

func (d *dateFlag) String() string {
	if d.value == nil {
		return ""
	}
	return dates.FormatFull(*d.value)
}

func (d *dateFlag) Set(s string) error {
	t, ok := dates.Parse(s)
	if !ok {
		return fmt.Errorf("must be a DD/MM/YYYY date")
	}
	d.value = &t
	return nil
}

func (d *dateFlag) Type() string { return "date" }

// at returns the pinned date at noon so day arithmetic stays on that
// calendar day, or nil when unset.
func (d *dateFlag) at() *time.Time {
	if d.value == nil {
		return nil
	}
	t := d.value.Add(12 * time.Hour)
	return &t
}
