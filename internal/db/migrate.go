package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Milestone columns hold the DD/MM/YYYY strings exactly as imported.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id                              TEXT PRIMARY KEY,
		short_id                        TEXT NOT NULL,
		name                            TEXT NOT NULL,
		capital_plan_decision           TEXT NOT NULL DEFAULT '',
		capital_plan_approval_date      TEXT NOT NULL DEFAULT '',
		technical_plan_decision         TEXT NOT NULL DEFAULT '',
		technical_plan_approval_date    TEXT NOT NULL DEFAULT '',
		budget_decision                 TEXT NOT NULL DEFAULT '',
		budget_approval_date            TEXT NOT NULL DEFAULT '',
		technical_plan_submission_date  TEXT NOT NULL DEFAULT '',
		technical_plan_approved_date    TEXT NOT NULL DEFAULT '',
		budget_submission_date          TEXT NOT NULL DEFAULT '',
		budget_approved_date            TEXT NOT NULL DEFAULT '',
		design_itb_date                 TEXT NOT NULL DEFAULT '',
		design_contract_date            TEXT NOT NULL DEFAULT '',
		supervision_itb_date            TEXT NOT NULL DEFAULT '',
		supervision_contract_date       TEXT NOT NULL DEFAULT '',
		construction_itb_date           TEXT NOT NULL DEFAULT '',
		construction_contract_date      TEXT NOT NULL DEFAULT '',
		construction_start_date         TEXT NOT NULL DEFAULT '',
		planned_acceptance_date         TEXT NOT NULL DEFAULT '',
		settlement_submission_date      TEXT NOT NULL DEFAULT '',
		settlement_approved_date        TEXT NOT NULL DEFAULT '',
		archived_at                     TEXT,
		created_at                      TEXT NOT NULL,
		updated_at                      TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id ON projects(short_id)`,

	`ALTER TABLE projects ADD COLUMN portfolio_assignment_date TEXT NOT NULL DEFAULT ''`,

	`CREATE TABLE IF NOT EXISTS import_runs (
		id            TEXT PRIMARY KEY,
		source_path   TEXT NOT NULL,
		checksum      TEXT NOT NULL,
		project_count INTEGER NOT NULL DEFAULT 0,
		warning_count INTEGER NOT NULL DEFAULT 0,
		imported_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_import_runs_imported ON import_runs(imported_at)`,
}
