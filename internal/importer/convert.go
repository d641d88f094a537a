package importer

import (
	"strings"
	"time"

	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/google/uuid"
)

// Convert transforms validated project records into domain objects ready
// for persistence. Date strings are copied verbatim.
func Convert(file *ImportFile, now time.Time) []*domain.Project {
	now = now.UTC().Truncate(time.Second)
	out := make([]*domain.Project, 0, len(file.Projects))
	for _, p := range file.Projects {
		out = append(out, &domain.Project{
			ID:      uuid.New().String(),
			ShortID: strings.ToUpper(p.ShortID),
			Name:    strings.TrimSpace(p.Name),

			CapitalPlanApproval:     approval(p.CapitalPlanApproval),
			TechnicalPlanApproval:   approval(p.TechnicalPlanApproval),
			BudgetApproval:          approval(p.BudgetApproval),
			PortfolioAssignmentDate: p.PortfolioAssignmentDate,

			TechnicalPlanStage: stage(p.TechnicalPlanStage),
			BudgetStage:        stage(p.BudgetStage),

			DesignBidding:       bidding(p.DesignBidding),
			SupervisionBidding:  bidding(p.SupervisionBidding),
			ConstructionBidding: bidding(p.ConstructionBidding),

			ConstructionStartDate: p.ConstructionStartDate,
			PlannedAcceptanceDate: p.PlannedAcceptanceDate,

			FinalSettlementStage: stage(p.FinalSettlementStage),

			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return out
}

func approval(a ApprovalImport) domain.Approval {
	return domain.Approval{DecisionNumber: a.DecisionNumber, Date: a.Date}
}

func stage(s StageImport) domain.Stage {
	return domain.Stage{SubmissionDate: s.SubmissionDate, ApprovalDate: s.ApprovalDate}
}

func bidding(b BiddingImport) domain.Bidding {
	return domain.Bidding{ITBIssuanceDate: b.ITBIssuanceDate, ContractSignDate: b.ContractSignDate}
}
