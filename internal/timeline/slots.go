package timeline

import "github.com/alexanderramin/tiendo/internal/domain"

// MilestoneSource is anything that can hand out raw milestone strings.
// *domain.Project satisfies it.
type MilestoneSource interface {
	Milestone(f domain.MilestoneField) string
}

// TaskSlot describes how one task is read from a record. Start lists the
// candidate fields for the opening date; the first that parses wins.
type TaskSlot struct {
	Name       string
	Start      []domain.MilestoneField
	End        domain.MilestoneField
	StartLabel string
	EndLabel   string
	Color      domain.ColorTag
	Standalone bool
}

// DefaultSlots returns the construction lifecycle in declaration order.
// Order matters: events on the same day keep this order.
func DefaultSlots() []TaskSlot {
	return []TaskSlot{
		{
			Name:       "Tư vấn Thiết kế",
			Start:      []domain.MilestoneField{domain.FieldDesignITB},
			End:        domain.FieldDesignContract,
			StartLabel: "E-HSMT (TVTK)",
			EndLabel:   "Ký HĐ (TVTK)",
			Color:      domain.ColorPurple,
		},
		{
			Name:       "Phương án Kỹ thuật",
			Start:      []domain.MilestoneField{domain.FieldTechnicalPlanSubmission},
			End:        domain.FieldTechnicalPlanApproved,
			StartLabel: "Nộp PAKT",
			EndLabel:   "Duyệt PAKT",
			Color:      domain.ColorRed,
		},
		{
			Name:       "Dự toán",
			Start:      []domain.MilestoneField{domain.FieldBudgetSubmission},
			End:        domain.FieldBudgetApproved,
			StartLabel: "Nộp DT",
			EndLabel:   "Duyệt DT",
			Color:      domain.ColorBlue,
		},
		{
			Name:       "Giám sát Thi công",
			Start:      []domain.MilestoneField{domain.FieldSupervisionITB},
			End:        domain.FieldSupervisionContract,
			StartLabel: "E-HSMT (GS)",
			EndLabel:   "Ký HĐ (GS)",
			Color:      domain.ColorPink,
		},
		{
			Name:       "Thi công Sửa chữa",
			Start:      []domain.MilestoneField{domain.FieldConstructionITB},
			End:        domain.FieldConstructionContract,
			StartLabel: "E-HSMT (TCSC)",
			EndLabel:   "Ký HĐ (TCSC)",
			Color:      domain.ColorOrange,
		},
		{
			Name:       "Thi công",
			Start:      []domain.MilestoneField{domain.FieldConstructionStart},
			End:        domain.FieldPlannedAcceptance,
			StartLabel: "Khởi công",
			EndLabel:   "Nghiệm thu",
			Color:      domain.ColorDarkBlue,
		},
		{
			Name:       "Quyết toán",
			Start:      []domain.MilestoneField{domain.FieldSettlementSubmission},
			End:        domain.FieldSettlementApproved,
			StartLabel: "Nộp QT",
			EndLabel:   "Duyệt QT",
			Color:      domain.ColorBlue,
		},
		{
			Name:       "Giao dự án",
			Start:      []domain.MilestoneField{domain.FieldCapitalPlanApproval, domain.FieldPortfolioAssignment},
			StartLabel: "Giao dự án",
			Color:      domain.ColorCyan,
			Standalone: true,
		},
	}
}
