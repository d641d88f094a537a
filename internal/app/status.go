package app

import (
	"time"

	"github.com/alexanderramin/tiendo/internal/progress"
)

type StatusRequest struct {
	ProjectScope    []string
	IncludeArchived bool
	Now             *time.Time
}

func NewStatusRequest() StatusRequest {
	return StatusRequest{}
}

// ProjectStatusView is one card on the status board.
type ProjectStatusView struct {
	ProjectID         string          `json:"project_id"`
	ShortID           string          `json:"short_id"`
	Name              string          `json:"name"`
	Archived          bool            `json:"archived"`
	Status            progress.Status `json:"status"`
	ConstructionStart string          `json:"construction_start,omitempty"`
	PlannedAcceptance string          `json:"planned_acceptance,omitempty"`
	// NextMilestone is the earliest recorded milestone on or after today.
	NextMilestone     string `json:"next_milestone,omitempty"`
	NextMilestoneDate string `json:"next_milestone_date,omitempty"`
}

type GlobalStatusSummary struct {
	Counts  map[progress.Phase]int `json:"counts"`
	Total   int                    `json:"total"`
	Overdue int                    `json:"overdue"`
	DueSoon int                    `json:"due_soon"`
}

type StatusResponse struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Summary     GlobalStatusSummary `json:"summary"`
	Projects    []ProjectStatusView `json:"projects"`
}

type StatusErrorCode string

const (
	StatusErrInvalidScope StatusErrorCode = "INVALID_SCOPE"
)

type StatusError struct {
	Code    StatusErrorCode
	Message string
}

func (e *StatusError) Error() string {
	return string(e.Code) + ": " + e.Message
}
