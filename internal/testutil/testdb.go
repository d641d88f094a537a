package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/tiendo/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory catalog that is closed with the test.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "opening test catalog")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
