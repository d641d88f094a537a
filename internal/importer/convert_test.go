package importer

import (
	"testing"
	"time"

	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	src, err := LoadFile("testdata/portfolio.yaml")
	require.NoError(t, err)

	now := time.Date(2024, 9, 1, 10, 30, 0, 0, time.UTC)
	projects := Convert(src.File, now)
	require.Len(t, projects, 2)

	a := projects[0]
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "SCL01", a.ShortID)
	assert.Equal(t, domain.Approval{DecisionNumber: "125/QĐ-UBND", Date: "15/05/2024"}, a.CapitalPlanApproval)
	assert.Equal(t, "20/05/2024", a.Milestone(domain.FieldDesignITB))
	assert.Equal(t, "20/07/2024", a.BudgetStage.ApprovalDate)
	assert.Equal(t, "31/10/2024", a.PlannedAcceptanceDate)
	assert.Equal(t, now, a.CreatedAt)

	b := projects[1]
	assert.Equal(t, "SCL02", b.ShortID)
	assert.Equal(t, "02/02/2024", b.PortfolioAssignmentDate)
	// Malformed strings survive conversion untouched.
	assert.Equal(t, "31/02/2024", b.TechnicalPlanStage.ApprovalDate)
	assert.NotEqual(t, a.ID, b.ID)
}
