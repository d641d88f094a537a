package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tiendo/internal/contract"
	"github.com/alexanderramin/tiendo/internal/db"
	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/alexanderramin/tiendo/internal/importer"
	"github.com/alexanderramin/tiendo/internal/repository"
	"github.com/google/uuid"
)

type importService struct {
	uow      db.UnitOfWork
	runs     repository.ImportRunRepo
	observer UseCaseObserver
}

// NewImportService writes catalogs through uow; runs serves read-only
// history queries outside transactions.
func NewImportService(uow db.UnitOfWork, runs repository.ImportRunRepo, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		runs:     runs,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, path string) (*contract.ImportResult, error) {
	src, err := importer.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSource(ctx, src)
}

// ImportSource validates and stores every project of src in one
// transaction. Existing projects, matched by short ID, have their
// milestones replaced.
func (s *importService) ImportSource(ctx context.Context, src *importer.Source) (result *contract.ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"path": src.Path}
	defer observe(ctx, s.observer, "import-catalog", startedAt, fields, &err)

	report := importer.Validate(src.File)
	fields["warnings"] = len(report.Warnings)
	if !report.OK() {
		return nil, fmt.Errorf("invalid import file: %w", report.Err())
	}

	projects := importer.Convert(src.File, startedAt)
	result = &contract.ImportResult{
		RunID:    uuid.New().String(),
		Path:     src.Path,
		Warnings: report.Warnings,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteProjectRepo(tx)
		for _, p := range projects {
			created, err := repo.Upsert(ctx, p)
			if err != nil {
				return fmt.Errorf("storing project %s: %w", p.ShortID, err)
			}
			result.Projects = append(result.Projects, contract.ImportedProject{Project: p, Created: created})
		}
		return repository.NewSQLiteImportRunRepo(tx).Create(ctx, &domain.ImportRun{
			ID:           result.RunID,
			SourcePath:   src.Path,
			Checksum:     src.Checksum,
			ProjectCount: len(projects),
			WarningCount: len(report.Warnings),
			ImportedAt:   startedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	fields["projects"] = len(result.Projects)
	fields["created"] = result.CreatedCount()
	return result, nil
}

func (s *importService) RecentRuns(ctx context.Context, limit int) ([]*domain.ImportRun, error) {
	return s.runs.ListRecent(ctx, limit)
}
