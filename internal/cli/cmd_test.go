package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/tiendo/internal/contract"
	"github.com/alexanderramin/tiendo/internal/dates"
	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/alexanderramin/tiendo/internal/repository"
	"github.com/alexanderramin/tiendo/internal/service"
	"github.com/alexanderramin/tiendo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const portfolioFixture = "../importer/testdata/portfolio.yaml"

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// testApp wires a full App backed by an in-memory DB with the clock fixed
// at 15/09/2024.
func testApp(t *testing.T) (*App, repository.ProjectRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	runs := repository.NewSQLiteImportRunRepo(database)
	clock := func() time.Time { return dates.MustParse("15/09/2024").Add(9 * time.Hour) }

	return &App{
		Projects: service.NewProjectService(projects),
		Imports:  service.NewImportService(testutil.NewTestUoW(database), runs),
		Timeline: service.NewTimelineService(projects, service.TimelineConfig{Clock: clock}, nil),
		Status:   service.NewStatusService(projects, clock),
		Clock:    clock,
	}, projects
}

func seedScheduled(t *testing.T, repo repository.ProjectRepo) *domain.Project {
	t.Helper()
	p := testutil.NewScheduledProject("SCL kiến trúc Trụ sở", testutil.WithShortID("SCL01"))
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(buf.String()), err
}

func TestProjectImport_FileThenList(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "project", "import", portfolioFixture)
	require.NoError(t, err)
	assert.Contains(t, out, "2 dự án: 2 mới, 0 cập nhật")
	assert.Contains(t, out, "WARNING:")

	out, err = executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "SCL01")
	assert.Contains(t, out, "SCL02")

	out, err = executeCmd(t, app, "project", "runs")
	require.NoError(t, err)
	assert.Contains(t, out, "portfolio.yaml")
}

func TestProjectImport_StdinAndCheck(t *testing.T) {
	app, projects := testApp(t)
	doc := "projects:\n  - short_id: KTX01\n    name: Ký túc xá\n    construction_start_date: 01/09/2024\n"

	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(doc))
	root.SetArgs([]string{"project", "import", "--check", "-"})
	require.NoError(t, root.Execute())
	assert.Contains(t, stripANSI(buf.String()), "stdin: 1 projects OK")

	_, err := projects.GetByShortID(context.Background(), "KTX01")
	assert.ErrorIs(t, err, repository.ErrNotFound, "--check writes nothing")

	root = NewRootCmd(app)
	root.SetOut(buf)
	root.SetIn(strings.NewReader(doc))
	root.SetArgs([]string{"project", "import", "-"})
	require.NoError(t, root.Execute())
	_, err = projects.GetByShortID(context.Background(), "KTX01")
	assert.NoError(t, err)
}

func TestProjectImport_StdinErrorsNameTheSource(t *testing.T) {
	app, _ := testApp(t)

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"blocking validation", "projects:\n  - name: missing id\n", "stdin: "},
		{"malformed yaml", "projects: [\n", "parsing stdin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := NewRootCmd(app)
			buf := new(bytes.Buffer)
			root.SetOut(buf)
			root.SetErr(buf)
			root.SetIn(strings.NewReader(tt.doc))
			root.SetArgs([]string{"project", "import", "--check", "-"})

			err := root.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.NotContains(t, err.Error(), "-: ")
		})
	}
}

func TestProjectImport_BlockingErrors(t *testing.T) {
	app, _ := testApp(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("projects:\n  - name: missing id\n"), 0o600))

	_, err := executeCmd(t, app, "project", "import", "--check", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestProjectShow(t *testing.T) {
	app, repo := testApp(t)
	seedScheduled(t, repo)

	out, err := executeCmd(t, app, "project", "show", "scl01")
	require.NoError(t, err)
	assert.Contains(t, out, "125/QĐ-UBND")
	assert.Contains(t, out, "31/10/2024")

	_, err = executeCmd(t, app, "project", "show", "NOPE99")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectArchiveAndRemove(t *testing.T) {
	app, repo := testApp(t)
	p := seedScheduled(t, repo)

	_, err := executeCmd(t, app, "project", "remove", "SCL01")
	require.Error(t, err, "live projects need --force")

	out, err := executeCmd(t, app, "project", "archive", "SCL01")
	require.NoError(t, err)
	assert.Contains(t, out, "Archived project SCL01")

	out, err = executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "SCL01")

	out, err = executeCmd(t, app, "project", "unarchive", "SCL01")
	require.NoError(t, err)
	assert.Contains(t, out, "Unarchived project SCL01")

	out, err = executeCmd(t, app, "project", "remove", "--force", "SCL01")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed project SCL01")

	_, err = repo.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTimelineCmd_Text(t *testing.T) {
	app, repo := testApp(t)
	seedScheduled(t, repo)

	out, err := executeCmd(t, app, "timeline", "SCL01", "--intervals")
	require.NoError(t, err)
	assert.Contains(t, out, "Hôm nay 15/09")
	assert.Contains(t, out, "15/05/2024")
	assert.Contains(t, out, "Tư vấn Thiết kế")
	assert.Contains(t, out, "percent")
}

func TestTimelineCmd_JSONPixel(t *testing.T) {
	app, repo := testApp(t)
	seedScheduled(t, repo)

	out, err := executeCmd(t, app, "timeline", "SCL01", "--format", "json", "--mode", "pixel", "--ppd", "2", "--today", "01/06/2024")
	require.NoError(t, err)

	var view contract.TimelineView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.True(t, view.Show)
	assert.Equal(t, "pixel", string(view.Plan.Mode))
	assert.InDelta(t, float64(view.Plan.Span.TotalDays)*2, view.Plan.Width, 1e-9)
	require.NotNil(t, view.Plan.Today)
	assert.Equal(t, "01/06", view.Plan.Today.Label)
}

func TestTimelineCmd_SVGToFile(t *testing.T) {
	app, repo := testApp(t)
	seedScheduled(t, repo)
	path := filepath.Join(t.TempDir(), "scl01.svg")

	out, err := executeCmd(t, app, "timeline", "SCL01", "--format", "svg", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<?xml"))
}

func TestTimelineCmd_FlagValidation(t *testing.T) {
	app, repo := testApp(t)
	seedScheduled(t, repo)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad mode", []string{"timeline", "SCL01", "--mode", "wide"}, "percent or pixel"},
		{"bad today", []string{"timeline", "SCL01", "--today", "2024-09-15"}, "DD/MM/YYYY"},
		{"bad format", []string{"timeline", "SCL01", "--format", "png"}, "text|json|svg"},
		{"negative ppd", []string{"timeline", "SCL01", "--ppd", "-1"}, "--ppd"},
		{"missing id", []string{"timeline"}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCmd(t, app, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTimelineCmd_NothingToShow(t *testing.T) {
	app, repo := testApp(t)
	require.NoError(t, repo.Create(context.Background(), testutil.NewTestProject("Trống", testutil.WithShortID("EMP01"))))

	out, err := executeCmd(t, app, "timeline", "EMP01")
	require.NoError(t, err)
	assert.Contains(t, out, "Chưa có mốc thời gian hợp lệ")

	_, err = executeCmd(t, app, "timeline", "EMP01", "--format", "svg")
	assert.Error(t, err)
}

func TestOverviewCmd(t *testing.T) {
	app, repo := testApp(t)
	seedScheduled(t, repo)
	require.NoError(t, repo.Create(context.Background(), testutil.NewTestProject("Trống", testutil.WithShortID("EMP01"))))

	out, err := executeCmd(t, app, "overview")
	require.NoError(t, err)
	assert.Contains(t, out, "Trụ sở")
	assert.Contains(t, out, "Bỏ qua (không có mốc hợp lệ): EMP01")

	out, err = executeCmd(t, app, "overview", "SCL01", "--format", "json")
	require.NoError(t, err)
	var view contract.OverviewView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Len(t, view.Overview.Rows, 1)
	assert.Equal(t, "SCL01", view.Overview.Rows[0].ID)

	_, err = executeCmd(t, app, "overview", "--pick")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive")
}

func TestOverviewCmd_EmptyCatalog(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "overview")
	var te *contract.TimelineError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, contract.TimelineErrNoProjects, te.Code)
}

func TestStatusCmd(t *testing.T) {
	app, repo := testApp(t)
	seedScheduled(t, repo)

	out, err := executeCmd(t, app, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "SCL01")
	assert.Contains(t, out, "● ON TRACK")

	out, err = executeCmd(t, app, "status", "--format", "json")
	require.NoError(t, err)
	var resp contract.StatusResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 1, resp.Summary.Total)

	_, err = executeCmd(t, app, "status", "NOPE99")
	var se *contract.StatusError
	assert.ErrorAs(t, err, &se)
}

func TestServeCmd_OnlyWhenWired(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "serve")
	require.Error(t, err)

	var gotAddr string
	app.Serve = func(_ context.Context, addr string) error {
		gotAddr = addr
		return nil
	}
	_, err = executeCmd(t, app, "serve", "--addr", ":9999")
	require.NoError(t, err)
	assert.Equal(t, ":9999", gotAddr)
}
