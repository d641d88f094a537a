package domain

// MilestoneField names one date-bearing field on a Project. The value is
// also the storage column and import key for that field.
type MilestoneField string

const (
	FieldCapitalPlanApproval     MilestoneField = "capital_plan_approval_date"
	FieldTechnicalPlanApproval   MilestoneField = "technical_plan_approval_date"
	FieldBudgetApproval          MilestoneField = "budget_approval_date"
	FieldPortfolioAssignment     MilestoneField = "portfolio_assignment_date"
	FieldTechnicalPlanSubmission MilestoneField = "technical_plan_submission_date"
	FieldTechnicalPlanApproved   MilestoneField = "technical_plan_approved_date"
	FieldBudgetSubmission        MilestoneField = "budget_submission_date"
	FieldBudgetApproved          MilestoneField = "budget_approved_date"
	FieldDesignITB               MilestoneField = "design_itb_date"
	FieldDesignContract          MilestoneField = "design_contract_date"
	FieldSupervisionITB          MilestoneField = "supervision_itb_date"
	FieldSupervisionContract     MilestoneField = "supervision_contract_date"
	FieldConstructionITB         MilestoneField = "construction_itb_date"
	FieldConstructionContract    MilestoneField = "construction_contract_date"
	FieldConstructionStart       MilestoneField = "construction_start_date"
	FieldPlannedAcceptance       MilestoneField = "planned_acceptance_date"
	FieldSettlementSubmission    MilestoneField = "settlement_submission_date"
	FieldSettlementApproved      MilestoneField = "settlement_approved_date"
)

// MilestoneFields lists every milestone field in lifecycle order.
var MilestoneFields = []MilestoneField{
	FieldCapitalPlanApproval,
	FieldPortfolioAssignment,
	FieldDesignITB,
	FieldDesignContract,
	FieldTechnicalPlanSubmission,
	FieldTechnicalPlanApproved,
	FieldTechnicalPlanApproval,
	FieldBudgetSubmission,
	FieldBudgetApproved,
	FieldBudgetApproval,
	FieldSupervisionITB,
	FieldSupervisionContract,
	FieldConstructionITB,
	FieldConstructionContract,
	FieldConstructionStart,
	FieldPlannedAcceptance,
	FieldSettlementSubmission,
	FieldSettlementApproved,
}

var milestoneLabels = map[MilestoneField]string{
	FieldCapitalPlanApproval:     "Phê duyệt KH vốn",
	FieldPortfolioAssignment:     "Giao danh mục",
	FieldDesignITB:               "Mời thầu TVTK",
	FieldDesignContract:          "Ký HĐ TVTK",
	FieldTechnicalPlanSubmission: "Trình PAKT",
	FieldTechnicalPlanApproved:   "Duyệt PAKT",
	FieldTechnicalPlanApproval:   "QĐ PAKT",
	FieldBudgetSubmission:        "Trình dự toán",
	FieldBudgetApproved:          "Duyệt dự toán",
	FieldBudgetApproval:          "QĐ dự toán",
	FieldSupervisionITB:          "Mời thầu GSTC",
	FieldSupervisionContract:     "Ký HĐ GSTC",
	FieldConstructionITB:         "Mời thầu TC",
	FieldConstructionContract:    "Ký HĐ TC",
	FieldConstructionStart:       "Khởi công",
	FieldPlannedAcceptance:       "Nghiệm thu",
	FieldSettlementSubmission:    "Trình quyết toán",
	FieldSettlementApproved:      "Duyệt quyết toán",
}

// Label is the short Vietnamese caption shown in milestone tables.
func (f MilestoneField) Label() string {
	if l, ok := milestoneLabels[f]; ok {
		return l
	}
	return string(f)
}

// ColorTag is a symbolic palette entry; renderers map it to real colors.
type ColorTag string

const (
	ColorGreen    ColorTag = "green"
	ColorPurple   ColorTag = "purple"
	ColorRed      ColorTag = "red"
	ColorBlue     ColorTag = "blue"
	ColorOrange   ColorTag = "orange"
	ColorPink     ColorTag = "pink"
	ColorCyan     ColorTag = "cyan"
	ColorDarkBlue ColorTag = "dark-blue"
)

// ValidColorTags is the closed palette.
var ValidColorTags = map[ColorTag]bool{
	ColorGreen: true, ColorPurple: true, ColorRed: true, ColorBlue: true,
	ColorOrange: true, ColorPink: true, ColorCyan: true, ColorDarkBlue: true,
}

func (c ColorTag) Valid() bool {
	return ValidColorTags[c]
}
