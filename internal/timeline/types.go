// Package timeline lays out project milestones as labelled points on a
// horizontal axis. It turns raw DD/MM/YYYY strings into a RenderPlan:
// event points stacked into four lanes, connecting lines with day-count
// labels for paired tasks, and a today marker. The package does no I/O
// and holds no state between calls.
package timeline

import (
	"time"

	"github.com/alexanderramin/tiendo/internal/domain"
)

// EventRole distinguishes the opening and closing milestone of a task.
type EventRole string

const (
	RoleStart EventRole = "start"
	RoleEnd   EventRole = "end"
)

// TimedEvent is one parsed milestone.
type TimedEvent struct {
	TaskName string
	Label    string
	Date     time.Time
	DateStr  string
	Color    domain.ColorTag
	Role     EventRole
}

// Task is the per-slot view kept for interval rendering. Start and End are
// nil when the source string was missing or malformed.
type Task struct {
	Name       string
	StartLabel string
	EndLabel   string
	Color      domain.ColorTag
	Standalone bool
	Start      *time.Time
	End        *time.Time
	StartStr   string
	EndStr     string
}

// Extraction is the output of Extract: events in chronological order plus
// the tasks they came from, in slot order.
type Extraction struct {
	Events []TimedEvent
	Tasks  []Task
}

// Lane is a label row. Lanes 1 and 2 sit above the axis, 3 and 4 below;
// odd lanes are the inner rows nearest the axis.
type Lane int

const (
	LaneInnerAbove Lane = 1
	LaneOuterAbove Lane = 2
	LaneInnerBelow Lane = 3
	LaneOuterBelow Lane = 4
)

// LanePreference is the order in which free lanes are tried.
var LanePreference = [...]Lane{LaneInnerAbove, LaneInnerBelow, LaneOuterAbove, LaneOuterBelow}

// Above reports whether the lane is drawn above the axis.
func (l Lane) Above() bool { return l <= LaneOuterAbove }

// Inner reports whether the lane is adjacent to the axis.
func (l Lane) Inner() bool { return l == LaneInnerAbove || l == LaneInnerBelow }

// Span is the rendered date range.
type Span struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	TotalDays int       `json:"total_days"`
}

// EventPoint is a positioned milestone marker with its label.
type EventPoint struct {
	TaskName    string          `json:"task_name"`
	Label       string          `json:"label"`
	LabelLines  []string        `json:"label_lines"`
	DisplayDate string          `json:"display_date"`
	SourceDate  string          `json:"source_date"`
	Position    float64         `json:"position"`
	Lane        Lane            `json:"lane"`
	Color       domain.ColorTag `json:"color"`
	Role        EventRole       `json:"role"`
}

// ConnectingLine spans a paired task from its start to its end position.
type ConnectingLine struct {
	TaskName string          `json:"task_name"`
	Left     float64         `json:"left"`
	Width    float64         `json:"width"`
	Lane     Lane            `json:"lane"`
	Color    domain.ColorTag `json:"color"`
}

// DurationLabel is the "(N ngày)" caption centred over a connecting line.
type DurationLabel struct {
	TaskName string          `json:"task_name"`
	Text     string          `json:"text"`
	Days     int             `json:"days"`
	Left     float64         `json:"left"`
	Width    float64         `json:"width"`
	Lane     Lane            `json:"lane"`
	Color    domain.ColorTag `json:"color"`
}

// TodayMarker is the vertical line for the current date.
type TodayMarker struct {
	Position float64 `json:"position"`
	Label    string  `json:"label"`
}

// Stats summarises a layout run.
type Stats struct {
	Events        int `json:"events"`
	LaneFallbacks int `json:"lane_fallbacks"`
}

// RenderPlan is everything a renderer needs to draw one timeline. All
// coordinates come from a single Scaler over a single Span.
type RenderPlan struct {
	Mode            Mode             `json:"mode"`
	Span            Span             `json:"span"`
	Width           float64          `json:"width"`
	EventPoints     []EventPoint     `json:"event_points"`
	ConnectingLines []ConnectingLine `json:"connecting_lines"`
	DurationLabels  []DurationLabel  `json:"duration_labels"`
	Today           *TodayMarker     `json:"today,omitempty"`
	Stats           Stats            `json:"stats"`
}
