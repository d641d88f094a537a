package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tiendo/internal/db"
	"github.com/alexanderramin/tiendo/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo. conn may be the
// database or a transaction from a UnitOfWork.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

// decisionColumns precede the milestone columns in every row.
var decisionColumns = []string{
	"capital_plan_decision",
	"technical_plan_decision",
	"budget_decision",
}

var projectColumns = strings.Join(append(append([]string{"id", "short_id", "name"}, decisionColumns...),
	append(milestoneColumns(), "archived_at", "created_at", "updated_at")...), ", ")

func milestoneColumns() []string {
	cols := make([]string, len(domain.MilestoneFields))
	for i, f := range domain.MilestoneFields {
		cols[i] = string(f)
	}
	return cols
}

func projectValues(p *domain.Project) []any {
	vals := []any{
		p.ID, p.ShortID, p.Name,
		p.CapitalPlanApproval.DecisionNumber,
		p.TechnicalPlanApproval.DecisionNumber,
		p.BudgetApproval.DecisionNumber,
	}
	for _, f := range domain.MilestoneFields {
		vals = append(vals, p.Milestone(f))
	}
	return append(vals,
		stampOrNull(p.ArchivedAt),
		stamp(p.CreatedAt),
		stamp(p.UpdatedAt),
	)
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	vals := projectValues(p)
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (` + placeholders(len(vals)) + `)`
	if _, err := r.db.ExecContext(ctx, query, vals...); err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) Upsert(ctx context.Context, p *domain.Project) (bool, error) {
	existing, err := r.GetByShortID(ctx, p.ShortID)
	switch {
	case errors.Is(err, ErrNotFound):
		return true, r.Create(ctx, p)
	case err != nil:
		return false, err
	}

	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.ArchivedAt = existing.ArchivedAt
	return false, r.Update(ctx, p)
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	return scanProject(row)
}

func (r *SQLiteProjectRepo) GetByShortID(ctx context.Context, shortID string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE UPPER(short_id) = UPPER(?)`, shortID)
	return scanProject(row)
}

func (r *SQLiteProjectRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE archived_at IS NULL ORDER BY short_id`
	if includeArchived {
		query = `SELECT ` + projectColumns + ` FROM projects ORDER BY short_id`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	cols := strings.Split(projectColumns, ", ")
	vals := projectValues(p)

	// Skip id and created_at; id becomes the WHERE argument.
	var sets []string
	var args []any
	for i, c := range cols {
		if c == "id" || c == "created_at" {
			continue
		}
		sets = append(sets, c+" = ?")
		args = append(args, vals[i])
	}
	args = append(args, p.ID)

	res, err := r.db.ExecContext(ctx, `UPDATE projects SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return expectOneRow(res, "project")
}

func (r *SQLiteProjectRepo) Archive(ctx context.Context, id string) error {
	now := stamp(time.Now())
	res, err := r.db.ExecContext(ctx, `UPDATE projects SET archived_at = ?, updated_at = ? WHERE id = ?`, now, now, id)
	if err != nil {
		return fmt.Errorf("archiving project: %w", err)
	}
	return expectOneRow(res, "project")
}

func (r *SQLiteProjectRepo) Unarchive(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE projects SET archived_at = NULL, updated_at = ? WHERE id = ?`, stamp(time.Now()), id)
	if err != nil {
		return fmt.Errorf("unarchiving project: %w", err)
	}
	return expectOneRow(res, "project")
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return expectOneRow(res, "project")
}

func scanProject(s scanner) (*domain.Project, error) {
	var p domain.Project
	milestones := make([]string, len(domain.MilestoneFields))
	var archivedAtStr sql.NullString
	var createdAtStr, updatedAtStr string

	dest := []any{
		&p.ID, &p.ShortID, &p.Name,
		&p.CapitalPlanApproval.DecisionNumber,
		&p.TechnicalPlanApproval.DecisionNumber,
		&p.BudgetApproval.DecisionNumber,
	}
	for i := range milestones {
		dest = append(dest, &milestones[i])
	}
	dest = append(dest, &archivedAtStr, &createdAtStr, &updatedAtStr)

	if err := s.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	for i, f := range domain.MilestoneFields {
		p.SetMilestone(f, milestones[i])
	}

	var err error
	if p.CreatedAt, err = parseStamp("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseStamp("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	p.ArchivedAt = parseStampOrNull(archivedAtStr)

	return &p, nil
}
