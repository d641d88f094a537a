package testutil

import (
	"context"
	"database/sql"
	"strings"

	"github.com/alexanderramin/tiendo/internal/db"
)

// FailingExecUoW runs real transactions but makes the Nth write whose SQL
// mentions Table fail with Err, so tests can break an import part way
// through and check that nothing was kept.
type FailingExecUoW struct {
	DB    *sql.DB
	Table string
	// Nth counts matching writes from 1.
	Nth int
	Err error
}

func (u *FailingExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingExec{DBTX: tx, uow: u})
	})
}

type failingExec struct {
	db.DBTX
	uow  *FailingExecUoW
	seen int
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.Contains(query, f.uow.Table) {
		f.seen++
		if f.seen == f.uow.Nth {
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
