package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/tiendo/internal/contract"
	"github.com/alexanderramin/tiendo/internal/dates"
	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/alexanderramin/tiendo/internal/testutil"
	"github.com/alexanderramin/tiendo/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTimelineFixture(t *testing.T) (TimelineService, *recordingRecorder, *domain.Project, func(*domain.Project)) {
	t.Helper()
	projects, _, _ := setupRepos(t)
	p := testutil.NewScheduledProject("SCL kiến trúc Trụ sở", testutil.WithShortID("SCL01"))
	seed(t, projects, p)
	rec := &recordingRecorder{}
	svc := NewTimelineService(projects, TimelineConfig{Clock: fixedClock("15/09/2024")}, rec)
	update := func(p *domain.Project) {
		require.NoError(t, projects.Update(context.Background(), p))
	}
	return svc, rec, p, update
}

func TestTimelineService_Project_PercentMode(t *testing.T) {
	svc, rec, _, _ := newTimelineFixture(t)

	view, err := svc.Project(context.Background(), contract.NewTimelineRequest("scl01"))
	require.NoError(t, err)
	require.True(t, view.Show)
	require.NotNil(t, view.Plan)
	assert.Equal(t, "SCL01", view.ShortID)
	assert.Equal(t, timeline.ModePercent, view.Plan.Mode)
	assert.Equal(t, "15/05/2024", dates.FormatFull(view.Plan.Span.Start))
	assert.Equal(t, "31/10/2024", dates.FormatFull(view.Plan.Span.End))
	require.NotNil(t, view.Plan.Today)
	assert.Equal(t, "15/09", view.Plan.Today.Label)

	require.Len(t, rec.samples, 1)
	assert.Equal(t, layoutSample{kind: "project", mode: "percent", shown: true}, rec.samples[0])
}

func TestTimelineService_Project_PixelModePadsSpan(t *testing.T) {
	svc, _, _, _ := newTimelineFixture(t)

	req := contract.NewTimelineRequest("SCL01")
	req.Mode = timeline.ModePixel
	view, err := svc.Project(context.Background(), req)
	require.NoError(t, err)
	require.True(t, view.Show)
	assert.Equal(t, "15/04/2024", dates.FormatFull(view.Plan.Span.Start))
	assert.Equal(t, "30/11/2024", dates.FormatFull(view.Plan.Span.End))
	assert.InDelta(t, float64(view.Plan.Span.TotalDays)*timeline.DefaultPixelsPerDay, view.Plan.Width, 1e-9)

	req.PadDays = -1
	view, err = svc.Project(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "15/05/2024", dates.FormatFull(view.Plan.Span.Start))
}

func TestTimelineService_Project_Memoizes(t *testing.T) {
	svc, rec, p, update := newTimelineFixture(t)
	ctx := context.Background()
	req := contract.NewTimelineRequest(p.ID)

	first, err := svc.Project(ctx, req)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := svc.Project(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Same(t, first.Plan, second.Plan)
	assert.Len(t, rec.samples, 1, "a cache hit computes nothing")

	p.PlannedAcceptanceDate = "30/11/2024"
	update(p)
	third, err := svc.Project(ctx, req)
	require.NoError(t, err)
	assert.False(t, third.Cached, "edited milestones invalidate the entry")
	assert.Equal(t, "30/11/2024", dates.FormatFull(third.Plan.Span.End))

	later := dates.MustParse("16/09/2024")
	req.Now = &later
	fourth, err := svc.Project(ctx, req)
	require.NoError(t, err)
	assert.False(t, fourth.Cached, "a new day moves the today marker")
	assert.Equal(t, "16/09", fourth.Plan.Today.Label)
}

func TestTimelineService_Project_NothingToShow(t *testing.T) {
	projects, _, _ := setupRepos(t)
	p := testutil.NewTestProject("Trống", testutil.WithShortID("EMP01"),
		testutil.WithMilestone(domain.FieldConstructionStart, "31/02/2024"))
	seed(t, projects, p)
	svc := NewTimelineService(projects, TimelineConfig{}, nil)

	view, err := svc.Project(context.Background(), contract.NewTimelineRequest("EMP01"))
	require.NoError(t, err)
	assert.False(t, view.Show)
	assert.Nil(t, view.Plan)
}

func TestTimelineService_Project_InvalidMode(t *testing.T) {
	svc, _, _, _ := newTimelineFixture(t)

	req := contract.NewTimelineRequest("SCL01")
	req.Mode = "wide"
	_, err := svc.Project(context.Background(), req)
	var terr *contract.TimelineError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, contract.TimelineErrInvalidMode, terr.Code)
}

func TestTimelineService_Overview(t *testing.T) {
	projects, _, _ := setupRepos(t)
	a := testutil.NewScheduledProject("SCL kiến trúc Trụ sở", testutil.WithShortID("SCL01"))
	b := testutil.NewTestProject("SCL kiến trúc Nhà văn hoá", testutil.WithShortID("SCL02"),
		testutil.WithConstruction("01/09/2024", "15/12/2024"))
	empty := testutil.NewTestProject("Chưa có mốc", testutil.WithShortID("SCL03"))
	seed(t, projects, a, b, empty)
	rec := &recordingRecorder{}
	svc := NewTimelineService(projects, TimelineConfig{Clock: fixedClock("15/09/2024")}, rec)

	view, err := svc.Overview(context.Background(), contract.OverviewRequest{})
	require.NoError(t, err)
	require.True(t, view.Show)
	assert.Equal(t, []string{"SCL03"}, view.Skipped)

	ov := view.Overview
	require.Len(t, ov.Rows, 2)
	assert.Equal(t, "SCL01", ov.Rows[0].ID)
	assert.Equal(t, "Trụ sở", ov.Rows[0].Name)
	assert.Equal(t, "15/04/2024", dates.FormatFull(ov.Span.Start))
	assert.Equal(t, "14/01/2025", dates.FormatFull(ov.Span.End))
	assert.NotEmpty(t, ov.Months)

	require.Len(t, rec.samples, 1)
	assert.Equal(t, "overview", rec.samples[0].kind)
}

func TestTimelineService_Overview_EndOnlyProjectIsDrawn(t *testing.T) {
	projects, _, _ := setupRepos(t)
	a := testutil.NewTestProject("A", testutil.WithShortID("SCL01"), testutil.WithConstruction("01/09/2024", "15/12/2024"))
	late := testutil.NewTestProject("Chỉ có nghiệm thu", testutil.WithShortID("SCL04"),
		testutil.WithMilestone(domain.FieldPlannedAcceptance, "30/06/2025"))
	seed(t, projects, a, late)
	svc := NewTimelineService(projects, TimelineConfig{Clock: fixedClock("15/09/2024")}, nil)

	view, err := svc.Overview(context.Background(), contract.OverviewRequest{PadDays: -1})
	require.NoError(t, err)
	require.True(t, view.Show)
	assert.Empty(t, view.Skipped)
	require.Len(t, view.Overview.Rows, 2)
	assert.Empty(t, view.Overview.Rows[1].EventPoints)
	assert.Equal(t, "30/06/2025", dates.FormatFull(view.Overview.Span.End))
}

func TestTimelineService_Overview_SelectedProjects(t *testing.T) {
	projects, _, _ := setupRepos(t)
	a := testutil.NewScheduledProject("A", testutil.WithShortID("SCL01"))
	b := testutil.NewScheduledProject("B", testutil.WithShortID("SCL02"))
	seed(t, projects, a, b)
	svc := NewTimelineService(projects, TimelineConfig{}, nil)

	view, err := svc.Overview(context.Background(), contract.OverviewRequest{ProjectIDs: []string{"scl02", b.ID}})
	require.NoError(t, err)
	require.Len(t, view.Overview.Rows, 1, "duplicates collapse")
	assert.Equal(t, "SCL02", view.Overview.Rows[0].ID)

	_, err = svc.Overview(context.Background(), contract.OverviewRequest{ProjectIDs: []string{"XYZ99"}})
	assert.Error(t, err)
}

func TestTimelineService_Overview_NoProjects(t *testing.T) {
	projects, _, _ := setupRepos(t)
	svc := NewTimelineService(projects, TimelineConfig{}, nil)

	_, err := svc.Overview(context.Background(), contract.OverviewRequest{})
	var terr *contract.TimelineError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, contract.TimelineErrNoProjects, terr.Code)
}

func TestTimelineService_Overview_AllSkipped(t *testing.T) {
	projects, _, _ := setupRepos(t)
	seed(t, projects, testutil.NewTestProject("Trống", testutil.WithShortID("EMP01")))
	svc := NewTimelineService(projects, TimelineConfig{}, nil)

	view, err := svc.Overview(context.Background(), contract.OverviewRequest{})
	require.NoError(t, err)
	assert.False(t, view.Show)
	assert.Nil(t, view.Overview)
	assert.Equal(t, []string{"EMP01"}, view.Skipped)
}
