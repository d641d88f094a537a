package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/tiendo/internal/contract"
	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/alexanderramin/tiendo/internal/progress"
	"github.com/alexanderramin/tiendo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusService_GetStatus_OrdersByUrgency(t *testing.T) {
	projects, _, _ := setupRepos(t)
	ctx := context.Background()

	onTrack := testutil.NewTestProject("Đúng hạn", testutil.WithShortID("ONT01"),
		testutil.WithConstruction("01/08/2024", "31/12/2024"))
	overdue := testutil.NewTestProject("Quá hạn", testutil.WithShortID("OVD01"),
		testutil.WithConstruction("01/03/2024", "31/08/2024"))
	dueSoon := testutil.NewTestProject("Sắp hạn", testutil.WithShortID("DUE01"),
		testutil.WithConstruction("01/06/2024", "20/09/2024"))
	settled := testutil.NewTestProject("Xong", testutil.WithShortID("SET01"),
		testutil.WithMilestone(domain.FieldSettlementApproved, "01/09/2024"))
	preparing := testutil.NewTestProject("Chuẩn bị", testutil.WithShortID("PRE01"),
		testutil.WithMilestone(domain.FieldDesignITB, "01/10/2024"))
	seed(t, projects, onTrack, overdue, dueSoon, settled, preparing)

	svc := NewStatusService(projects, fixedClock("15/09/2024"))
	resp, err := svc.GetStatus(ctx, contract.NewStatusRequest())
	require.NoError(t, err)

	var order []string
	for _, v := range resp.Projects {
		order = append(order, v.ShortID)
	}
	assert.Equal(t, []string{"OVD01", "DUE01", "ONT01", "PRE01", "SET01"}, order)

	assert.Equal(t, 5, resp.Summary.Total)
	assert.Equal(t, 1, resp.Summary.Overdue)
	assert.Equal(t, 1, resp.Summary.DueSoon)
	assert.Equal(t, 1, resp.Summary.Counts[progress.PhaseSettled])

	prep := resp.Projects[3]
	assert.Equal(t, domain.FieldDesignITB.Label(), prep.NextMilestone)
	assert.Equal(t, "01/10/2024", prep.NextMilestoneDate)

	assert.Empty(t, resp.Projects[4].NextMilestone, "past milestones are not upcoming")
}

func TestStatusService_GetStatus_Scope(t *testing.T) {
	projects, _, _ := setupRepos(t)
	ctx := context.Background()
	a := testutil.NewScheduledProject("A", testutil.WithShortID("SCL01"))
	b := testutil.NewScheduledProject("B", testutil.WithShortID("SCL02"))
	seed(t, projects, a, b)
	svc := NewStatusService(projects, fixedClock("15/09/2024"))

	req := contract.NewStatusRequest()
	req.ProjectScope = []string{"scl02"}
	resp, err := svc.GetStatus(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Projects, 1)
	assert.Equal(t, "SCL02", resp.Projects[0].ShortID)

	req.ProjectScope = []string{"NOPE01"}
	_, err = svc.GetStatus(ctx, req)
	var serr *contract.StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, contract.StatusErrInvalidScope, serr.Code)
}

func TestStatusService_GetStatus_ArchivedHiddenByDefault(t *testing.T) {
	projects, _, _ := setupRepos(t)
	ctx := context.Background()
	seed(t, projects,
		testutil.NewScheduledProject("A", testutil.WithShortID("SCL01")),
		testutil.NewScheduledProject("B", testutil.WithShortID("SCL02"), testutil.WithArchived()),
	)
	svc := NewStatusService(projects, nil)

	resp, err := svc.GetStatus(ctx, contract.NewStatusRequest())
	require.NoError(t, err)
	assert.Len(t, resp.Projects, 1)

	req := contract.NewStatusRequest()
	req.IncludeArchived = true
	resp, err = svc.GetStatus(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Projects, 2)
}
