package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/tiendo/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	// Upsert inserts p, or replaces the milestones of the project that
	// already holds p.ShortID. It reports whether a row was created.
	Upsert(ctx context.Context, p *domain.Project) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type ImportRunRepo interface {
	Create(ctx context.Context, run *domain.ImportRun) error
	ListRecent(ctx context.Context, limit int) ([]*domain.ImportRun, error)
}
