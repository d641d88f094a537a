// Package contract is the surface the CLI and the HTTP server program
// against: requests, views and typed errors for timelines, the overview,
// progress status and catalog imports. The types live in app so that
// services can build them without importing their callers.
package contract

import "github.com/alexanderramin/tiendo/internal/app"

// Timelines and the overview.
type (
	TimelineRequest   = app.TimelineRequest
	TimelineView      = app.TimelineView
	OverviewRequest   = app.OverviewRequest
	OverviewView      = app.OverviewView
	TimelineError     = app.TimelineError
	TimelineErrorCode = app.TimelineErrorCode
)

const (
	TimelineErrInvalidMode = app.TimelineErrInvalidMode
	TimelineErrNoProjects  = app.TimelineErrNoProjects
)

func NewTimelineRequest(projectID string) TimelineRequest {
	return app.NewTimelineRequest(projectID)
}

// Progress status.
type (
	StatusRequest       = app.StatusRequest
	StatusResponse      = app.StatusResponse
	ProjectStatusView   = app.ProjectStatusView
	GlobalStatusSummary = app.GlobalStatusSummary
	StatusError         = app.StatusError
	StatusErrorCode     = app.StatusErrorCode
)

const StatusErrInvalidScope = app.StatusErrInvalidScope

func NewStatusRequest() StatusRequest {
	return app.NewStatusRequest()
}

// Imports.
type (
	ImportResult    = app.ImportResult
	ImportedProject = app.ImportedProject
)
