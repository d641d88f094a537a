// Package progress derives the headline status of a construction project
// from its settlement and construction milestones.
package progress

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/tiendo/internal/dates"
	"github.com/alexanderramin/tiendo/internal/domain"
)

// Phase is the coarse lifecycle state shown on a project card.
type Phase string

const (
	PhaseSettled           Phase = "settled"
	PhaseSettling          Phase = "settling"
	PhasePreparing         Phase = "preparing"
	PhaseMissingAcceptance Phase = "missing_acceptance"
	PhaseNotStarted        Phase = "not_started"
	PhaseOverdue           Phase = "overdue"
	PhaseDueSoon           Phase = "due_soon"
	PhaseOnTrack           Phase = "on_track"
)

// DueSoonDays is the remaining-days threshold for PhaseDueSoon.
const DueSoonDays = 7

// Status is the evaluated card state.
type Status struct {
	Phase         Phase  `json:"phase"`
	Percentage    int    `json:"percentage"`
	DaysRemaining *int   `json:"days_remaining,omitempty"`
	Text          string `json:"text"`
}

// Evaluate computes the status of p as of now's UTC calendar date.
func Evaluate(p *domain.Project, now time.Time) Status {
	today := dates.Today(now)

	if approved, ok := dates.Parse(p.FinalSettlementStage.ApprovalDate); ok && approved.Before(today) {
		return Status{Phase: PhaseSettled, Percentage: 100, Text: "Đã hoàn thành & quyết toán"}
	}
	if dates.Valid(p.FinalSettlementStage.SubmissionDate) {
		return Status{Phase: PhaseSettling, Percentage: 100, Text: "Đang quyết toán"}
	}

	start, ok := dates.Parse(p.ConstructionStartDate)
	if !ok {
		return Status{Phase: PhasePreparing, Percentage: 0, Text: "Chuẩn bị đầu tư"}
	}
	end, ok := dates.Parse(p.PlannedAcceptanceDate)
	if !ok || !start.Before(end) {
		return Status{Phase: PhaseMissingAcceptance, Percentage: 0, Text: "Thiếu ngày nghiệm thu"}
	}

	total := end.Sub(start)
	elapsed := today.Sub(start)
	pct := int(math.Round(float64(elapsed) / float64(total) * 100))
	pct = max(0, min(100, pct))

	remaining := dates.DayCount(today, end)
	st := Status{Percentage: pct, DaysRemaining: &remaining}
	switch {
	case today.Before(start):
		st.Phase = PhaseNotStarted
		st.Text = "Chưa bắt đầu"
	case remaining < 0:
		st.Phase = PhaseOverdue
		st.Text = fmt.Sprintf("Quá hạn %d ngày", -remaining)
	case remaining <= DueSoonDays:
		st.Phase = PhaseDueSoon
		st.Text = fmt.Sprintf("Còn lại %d ngày", remaining)
	default:
		st.Phase = PhaseOnTrack
		st.Text = fmt.Sprintf("Còn lại %d ngày", remaining)
	}
	return st
}
