package app

import (
	"time"

	"github.com/alexanderramin/tiendo/internal/timeline"
)

// TimelineRequest asks for the single-project plan.
type TimelineRequest struct {
	ProjectID string
	Mode      timeline.Mode
	// PixelsPerDay applies to pixel mode; zero means the default scale.
	PixelsPerDay float64
	// PadDays widens the pixel-mode span; zero means the default pad and a
	// negative value disables it. Percent mode is never padded.
	PadDays int
	Now     *time.Time
}

func NewTimelineRequest(projectID string) TimelineRequest {
	return TimelineRequest{ProjectID: projectID, Mode: timeline.ModePercent}
}

// TimelineView is the answer for one project. Show is false when none of
// its milestones parsed; Plan is nil in that case.
type TimelineView struct {
	ProjectID string               `json:"project_id"`
	ShortID   string               `json:"short_id"`
	Name      string               `json:"name"`
	Show      bool                 `json:"show"`
	Plan      *timeline.RenderPlan `json:"plan,omitempty"`
	Cached    bool                 `json:"-"`
}

// OverviewRequest selects the projects drawn on the portfolio view. An
// empty ProjectIDs means every active project.
type OverviewRequest struct {
	ProjectIDs      []string
	IncludeArchived bool
	PixelsPerDay    float64
	PadDays         int
	Now             *time.Time
}

// OverviewView is the answer for the portfolio view.
type OverviewView struct {
	Show     bool               `json:"show"`
	Overview *timeline.Overview `json:"overview,omitempty"`
	Skipped  []string           `json:"skipped,omitempty"`
}

type TimelineErrorCode string

const (
	TimelineErrInvalidMode TimelineErrorCode = "INVALID_MODE"
	TimelineErrNoProjects  TimelineErrorCode = "NO_PROJECTS"
)

type TimelineError struct {
	Code    TimelineErrorCode
	Message string
}

func (e *TimelineError) Error() string {
	return string(e.Code) + ": " + e.Message
}
