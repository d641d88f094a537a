package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tiendo/internal/contract"
	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/alexanderramin/tiendo/internal/importer"
)

type ProjectService interface {
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// Resolve accepts a short ID, a full UUID or a unique UUID prefix.
	Resolve(ctx context.Context, input string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

type ImportService interface {
	ImportFile(ctx context.Context, path string) (*contract.ImportResult, error)
	ImportSource(ctx context.Context, src *importer.Source) (*contract.ImportResult, error)
	RecentRuns(ctx context.Context, limit int) ([]*domain.ImportRun, error)
}

type TimelineService interface {
	Project(ctx context.Context, req contract.TimelineRequest) (*contract.TimelineView, error)
	Overview(ctx context.Context, req contract.OverviewRequest) (*contract.OverviewView, error)
}

type StatusService interface {
	GetStatus(ctx context.Context, req contract.StatusRequest) (*contract.StatusResponse, error)
}

// LayoutRecorder receives one sample per computed layout.
type LayoutRecorder interface {
	ObserveLayout(kind, mode string, shown bool, elapsed time.Duration, laneFallbacks int)
}

type noopLayoutRecorder struct{}

func (noopLayoutRecorder) ObserveLayout(string, string, bool, time.Duration, int) {}
