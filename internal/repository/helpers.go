package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Catalog timestamps are stored as RFC3339 text in UTC.
const stampLayout = time.RFC3339

type scanner interface {
	Scan(dest ...any) error
}

func stamp(t time.Time) string {
	return t.UTC().Format(stampLayout)
}

// stampOrNull maps a nil time to SQL NULL.
func stampOrNull(t *time.Time) any {
	if t == nil {
		return nil
	}
	return stamp(*t)
}

func parseStamp(column, s string) (time.Time, error) {
	t, err := time.Parse(stampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// parseStampOrNull treats NULL and unreadable text alike: the project is
// simply not archived.
func parseStampOrNull(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(stampLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func expectOneRow(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %w", entity, ErrNotFound)
	}
	return nil
}
