package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tiendo/internal/db"
	"github.com/alexanderramin/tiendo/internal/domain"
)

// SQLiteImportRunRepo implements ImportRunRepo using a SQLite database.
type SQLiteImportRunRepo struct {
	db db.DBTX
}

func NewSQLiteImportRunRepo(conn db.DBTX) *SQLiteImportRunRepo {
	return &SQLiteImportRunRepo{db: conn}
}

func (r *SQLiteImportRunRepo) Create(ctx context.Context, run *domain.ImportRun) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO import_runs (id, source_path, checksum, project_count, warning_count, imported_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.SourcePath, run.Checksum, run.ProjectCount, run.WarningCount,
		stamp(run.ImportedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting import run: %w", err)
	}
	return nil
}

func (r *SQLiteImportRunRepo) ListRecent(ctx context.Context, limit int) ([]*domain.ImportRun, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, source_path, checksum, project_count, warning_count, imported_at
		FROM import_runs ORDER BY imported_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing import runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.ImportRun
	for rows.Next() {
		var run domain.ImportRun
		var importedAt string
		if err := rows.Scan(&run.ID, &run.SourcePath, &run.Checksum, &run.ProjectCount, &run.WarningCount, &importedAt); err != nil {
			return nil, fmt.Errorf("scanning import run: %w", err)
		}
		if run.ImportedAt, err = parseStamp("imported_at", importedAt); err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating import runs: %w", err)
	}
	return runs, nil
}
