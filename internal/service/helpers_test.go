package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/tiendo/internal/dates"
	"github.com/alexanderramin/tiendo/internal/db"
	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/alexanderramin/tiendo/internal/repository"
	"github.com/alexanderramin/tiendo/internal/testutil"
	"github.com/stretchr/testify/require"
)

func setupRepos(t *testing.T) (repository.ProjectRepo, repository.ImportRunRepo, db.UnitOfWork) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repository.NewSQLiteProjectRepo(database),
		repository.NewSQLiteImportRunRepo(database),
		testutil.NewTestUoW(database)
}

func seed(t *testing.T, repo repository.ProjectRepo, projects ...*domain.Project) {
	t.Helper()
	for _, p := range projects {
		require.NoError(t, repo.Create(context.Background(), p))
	}
}

type layoutSample struct {
	kind, mode string
	shown      bool
	fallbacks  int
}

type recordingRecorder struct {
	mu      sync.Mutex
	samples []layoutSample
}

func (r *recordingRecorder) ObserveLayout(kind, mode string, shown bool, _ time.Duration, fallbacks int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, layoutSample{kind: kind, mode: mode, shown: shown, fallbacks: fallbacks})
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, ev UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, ev)
}

func fixedClock(raw string) func() time.Time {
	t := dates.MustParse(raw).Add(9*time.Hour + 30*time.Minute)
	return func() time.Time { return t }
}
