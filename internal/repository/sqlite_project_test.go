package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/alexanderramin/tiendo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewScheduledProject("SCL kiến trúc Nhà A",
		testutil.WithMilestone(domain.FieldSettlementSubmission, "31/02/2025"))
	proj.BudgetApproval.DecisionNumber = "88/QĐ"
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "SCL kiến trúc Nhà A", fetched.Name)
	assert.Equal(t, proj.CapitalPlanApproval, fetched.CapitalPlanApproval)
	assert.Equal(t, "88/QĐ", fetched.BudgetApproval.DecisionNumber)
	for _, f := range domain.MilestoneFields {
		assert.Equal(t, proj.Milestone(f), fetched.Milestone(f), "field %s", f)
	}
	// Malformed strings are stored verbatim.
	assert.Equal(t, "31/02/2025", fetched.FinalSettlementStage.SubmissionDate)
	assert.Equal(t, proj.CreatedAt.Unix(), fetched.CreatedAt.Unix())
	assert.Nil(t, fetched.ArchivedAt)
}

func TestProjectRepo_GetByShortID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Kho", testutil.WithShortID("KHO01"))
	require.NoError(t, repo.Create(ctx, proj))

	// Case-insensitive lookup.
	fetched, err := repo.GetByShortID(ctx, "kho01")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "KHO01", fetched.ShortID)
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_DuplicateShortIDRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("A", testutil.WithShortID("DUP01"))))
	assert.Error(t, repo.Create(ctx, testutil.NewTestProject("B", testutil.WithShortID("DUP01"))))
}

func TestProjectRepo_List_ExcludesArchived(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	active := testutil.NewTestProject("Active", testutil.WithShortID("ACT01"))
	archived := testutil.NewTestProject("Old", testutil.WithShortID("OLD01"), testutil.WithArchived())
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, archived))

	list, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].ID)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "ACT01", all[0].ShortID)
}

func TestProjectRepo_ArchiveUnarchive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Nhà B")
	require.NoError(t, repo.Create(ctx, proj))

	require.NoError(t, repo.Archive(ctx, proj.ID))
	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Archived())

	require.NoError(t, repo.Unarchive(ctx, proj.ID))
	fetched, err = repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.False(t, fetched.Archived())

	assert.ErrorIs(t, repo.Archive(ctx, "missing"), ErrNotFound)
}

func TestProjectRepo_Upsert(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	first := testutil.NewTestProject("Nhà C", testutil.WithShortID("NHC01"),
		testutil.WithConstruction("01/06/2024", "31/08/2024"))
	created, err := repo.Upsert(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)

	second := testutil.NewTestProject("Nhà C (điều chỉnh)", testutil.WithShortID("NHC01"),
		testutil.WithConstruction("01/06/2024", "30/09/2024"))
	second.UpdatedAt = time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	created, err = repo.Upsert(ctx, second)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Nhà C (điều chỉnh)", all[0].Name)
	assert.Equal(t, "30/09/2024", all[0].PlannedAcceptanceDate)
}

func TestProjectRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Tạm")
	require.NoError(t, repo.Create(ctx, proj))
	require.NoError(t, repo.Delete(ctx, proj.ID))

	_, err := repo.GetByID(ctx, proj.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, proj.ID), ErrNotFound)
}

func TestImportRunRepo_ListRecent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteImportRunRepo(db)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	for i, path := range []string{"a.yaml", "b.yaml", "c.yaml"} {
		require.NoError(t, repo.Create(ctx, &domain.ImportRun{
			ID:           path,
			SourcePath:   path,
			Checksum:     "sum",
			ProjectCount: i + 1,
			ImportedAt:   base.Add(time.Duration(i) * time.Hour),
		}))
	}

	runs, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c.yaml", runs[0].SourcePath)
	assert.Equal(t, 3, runs[0].ProjectCount)
	assert.Equal(t, "b.yaml", runs[1].SourcePath)
}
