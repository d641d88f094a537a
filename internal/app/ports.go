package app

import (
	"context"

	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/alexanderramin/tiendo/internal/importer"
)

type StatusUseCase interface {
	GetStatus(ctx context.Context, req StatusRequest) (*StatusResponse, error)
}

type TimelineUseCase interface {
	Project(ctx context.Context, req TimelineRequest) (*TimelineView, error)
	Overview(ctx context.Context, req OverviewRequest) (*OverviewView, error)
}

// ImportedProject is one catalog entry after an import.
type ImportedProject struct {
	Project *domain.Project
	Created bool
}

// ImportResult holds the outcome of importing one catalog file.
type ImportResult struct {
	RunID    string
	Path     string
	Projects []ImportedProject
	Warnings []importer.Issue
}

func (r *ImportResult) CreatedCount() int {
	n := 0
	for _, p := range r.Projects {
		if p.Created {
			n++
		}
	}
	return n
}

type ImportUseCase interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	ImportSource(ctx context.Context, src *importer.Source) (*ImportResult, error)
}
