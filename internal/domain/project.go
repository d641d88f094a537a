package domain

import (
	"regexp"
	"strings"
	"time"
)

// Short IDs are 3-6 letters followed by 2-4 digits (SCL01, KTX0234). Case
// is not significant: lookups compare them upper-cased.
var shortIDPattern = regexp.MustCompile(`^[A-Za-z]{3,6}[0-9]{2,4}$`)

// shortNamePrefix is the portfolio-wide prefix dropped from overview row labels.
const shortNamePrefix = "SCL kiến trúc "

// Approval is a decision reference with its signing date.
type Approval struct {
	DecisionNumber string
	Date           string
}

// Stage is a submit/approve pair of milestone dates.
type Stage struct {
	SubmissionDate string
	ApprovalDate   string
}

// Bidding is a tender cycle from invitation to bid through contract signing.
type Bidding struct {
	ITBIssuanceDate  string
	ContractSignDate string
}

// Project is one construction project record. Every milestone date is the
// raw DD/MM/YYYY string as entered; unparseable values are kept and simply
// ignored by the timeline engine.
type Project struct {
	ID      string
	ShortID string
	Name    string

	CapitalPlanApproval     Approval
	TechnicalPlanApproval   Approval
	BudgetApproval          Approval
	PortfolioAssignmentDate string

	TechnicalPlanStage Stage
	BudgetStage        Stage

	DesignBidding       Bidding
	SupervisionBidding  Bidding
	ConstructionBidding Bidding

	ConstructionStartDate string
	PlannedAcceptanceDate string

	FinalSettlementStage Stage

	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidShortID reports whether id is a well-formed short ID.
func ValidShortID(id string) bool {
	return shortIDPattern.MatchString(id)
}

// DisplayID returns the best short identifier for display.
// It prefers ShortID; if empty it truncates ID to 8 characters.
func (p *Project) DisplayID() string {
	if p.ShortID != "" {
		return p.ShortID
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// ShortName is the row label used by the portfolio overview.
func (p *Project) ShortName() string {
	return strings.TrimSpace(strings.Replace(p.Name, shortNamePrefix, "", 1))
}

// Archived reports whether the project has been archived.
func (p *Project) Archived() bool {
	return p.ArchivedAt != nil
}

// Milestone returns the raw date string stored in field f.
func (p *Project) Milestone(f MilestoneField) string {
	if ptr := p.milestonePtr(f); ptr != nil {
		return *ptr
	}
	return ""
}

// SetMilestone stores v in field f. Unknown fields are ignored.
func (p *Project) SetMilestone(f MilestoneField, v string) {
	if ptr := p.milestonePtr(f); ptr != nil {
		*ptr = v
	}
}

func (p *Project) milestonePtr(f MilestoneField) *string {
	switch f {
	case FieldCapitalPlanApproval:
		return &p.CapitalPlanApproval.Date
	case FieldTechnicalPlanApproval:
		return &p.TechnicalPlanApproval.Date
	case FieldBudgetApproval:
		return &p.BudgetApproval.Date
	case FieldPortfolioAssignment:
		return &p.PortfolioAssignmentDate
	case FieldTechnicalPlanSubmission:
		return &p.TechnicalPlanStage.SubmissionDate
	case FieldTechnicalPlanApproved:
		return &p.TechnicalPlanStage.ApprovalDate
	case FieldBudgetSubmission:
		return &p.BudgetStage.SubmissionDate
	case FieldBudgetApproved:
		return &p.BudgetStage.ApprovalDate
	case FieldDesignITB:
		return &p.DesignBidding.ITBIssuanceDate
	case FieldDesignContract:
		return &p.DesignBidding.ContractSignDate
	case FieldSupervisionITB:
		return &p.SupervisionBidding.ITBIssuanceDate
	case FieldSupervisionContract:
		return &p.SupervisionBidding.ContractSignDate
	case FieldConstructionITB:
		return &p.ConstructionBidding.ITBIssuanceDate
	case FieldConstructionContract:
		return &p.ConstructionBidding.ContractSignDate
	case FieldConstructionStart:
		return &p.ConstructionStartDate
	case FieldPlannedAcceptance:
		return &p.PlannedAcceptanceDate
	case FieldSettlementSubmission:
		return &p.FinalSettlementStage.SubmissionDate
	case FieldSettlementApproved:
		return &p.FinalSettlementStage.ApprovalDate
	}
	return nil
}
