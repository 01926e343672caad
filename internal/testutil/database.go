package testutil

import (
	"testing"

	"fsx/internal/database"
)

// NewTestHistory creates a new in-memory SQLite history with migrations applied.
// The database is automatically closed when the test completes.
func NewTestHistory(t *testing.T) *database.SQLiteDatabase {
	t.Helper()

	db, err := database.NewSQLiteDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open history database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
