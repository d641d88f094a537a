package progress

import (
	"testing"
	"time"

	"github.com/alexanderramin/tiendo/internal/dates"
	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(s string) time.Time { return dates.MustParse(s).Add(9 * time.Hour) }

func construction(start, end string) *domain.Project {
	return &domain.Project{ConstructionStartDate: start, PlannedAcceptanceDate: end}
}

func TestEvaluate_Phases(t *testing.T) {
	tests := []struct {
		name    string
		project *domain.Project
		now     string
		phase   Phase
		pct     int
		text    string
	}{
		{
			name:    "settled",
			project: &domain.Project{FinalSettlementStage: domain.Stage{SubmissionDate: "01/01/2024", ApprovalDate: "01/02/2024"}},
			now:     "02/02/2024",
			phase:   PhaseSettled, pct: 100, text: "Đã hoàn thành & quyết toán",
		},
		{
			name:    "approval today is still settling",
			project: &domain.Project{FinalSettlementStage: domain.Stage{SubmissionDate: "01/01/2024", ApprovalDate: "01/02/2024"}},
			now:     "01/02/2024",
			phase:   PhaseSettling, pct: 100, text: "Đang quyết toán",
		},
		{
			name:    "preparing",
			project: &domain.Project{},
			now:     "01/02/2024",
			phase:   PhasePreparing, pct: 0, text: "Chuẩn bị đầu tư",
		},
		{
			name:    "missing acceptance",
			project: construction("01/01/2024", ""),
			now:     "01/02/2024",
			phase:   PhaseMissingAcceptance, pct: 0, text: "Thiếu ngày nghiệm thu",
		},
		{
			name:    "acceptance before start",
			project: construction("01/03/2024", "01/01/2024"),
			now:     "01/02/2024",
			phase:   PhaseMissingAcceptance, pct: 0, text: "Thiếu ngày nghiệm thu",
		},
		{
			name:    "not started",
			project: construction("01/03/2024", "31/03/2024"),
			now:     "01/02/2024",
			phase:   PhaseNotStarted, pct: 0, text: "Chưa bắt đầu",
		},
		{
			name:    "halfway",
			project: construction("01/01/2024", "31/01/2024"),
			now:     "16/01/2024",
			phase:   PhaseOnTrack, pct: 50, text: "Còn lại 15 ngày",
		},
		{
			name:    "due soon",
			project: construction("01/01/2024", "31/01/2024"),
			now:     "24/01/2024",
			phase:   PhaseDueSoon, pct: 77, text: "Còn lại 7 ngày",
		},
		{
			name:    "overdue",
			project: construction("01/01/2024", "31/01/2024"),
			now:     "03/02/2024",
			phase:   PhaseOverdue, pct: 100, text: "Quá hạn 3 ngày",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Evaluate(tt.project, at(tt.now))
			assert.Equal(t, tt.phase, st.Phase)
			assert.Equal(t, tt.pct, st.Percentage)
			assert.Equal(t, tt.text, st.Text)
		})
	}
}

func TestEvaluate_DaysRemaining(t *testing.T) {
	st := Evaluate(construction("01/01/2024", "31/01/2024"), at("21/01/2024"))
	require.NotNil(t, st.DaysRemaining)
	assert.Equal(t, 10, *st.DaysRemaining)

	st = Evaluate(&domain.Project{}, at("21/01/2024"))
	assert.Nil(t, st.DaysRemaining)
}
