package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fsx/internal/database/migrations"
	"fsx/internal/fsx"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteDatabase implements fsx.History using SQLite.
type SQLiteDatabase struct {
	db   *sql.DB
	path string
}

// NewSQLiteDatabase opens the database at path and applies pending migrations.
// path can be a file path or ":memory:" for in-memory database.
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating history database: %w", err)
	}

	return &SQLiteDatabase{db: db, path: path}, nil
}

// OpenConnection opens and configures a SQLite database connection.
// An in-memory database is pinned to one connection, since every new
// connection to ":memory:" would see an empty database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Concurrent invocations may share one history file.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

// StartRun inserts run and stores the generated row ID in run.ID.
func (s *SQLiteDatabase) StartRun(run *fsx.Run) error {
	if run.Status == "" {
		run.Status = fsx.RunStatusRunning
	}

	res, err := s.db.ExecContext(context.Background(),
		`INSERT INTO runs (run_id, operation, path, status, detail, started_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Operation, run.Path, run.Status, run.Detail, run.StartedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading run id: %w", err)
	}
	run.ID = id
	return nil
}

// FinishRun records the final status of a run.
func (s *SQLiteDatabase) FinishRun(id int64, status string, detail string, finishedAt time.Time) error {
	res, err := s.db.ExecContext(context.Background(),
		`UPDATE runs SET status = ?, detail = ?, finished_at = ? WHERE id = ?`,
		status, detail, finishedAt.UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finishing run: no run with id %d", id)
	}
	return nil
}

// ListRuns returns up to limit runs, newest first.
func (s *SQLiteDatabase) ListRuns(limit int) ([]*fsx.Run, error) {
	rows, err := s.db.QueryContext(context.Background(),
		`SELECT id, run_id, operation, path, status, detail, started_at, finished_at
		 FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*fsx.Run
	for rows.Next() {
		var r fsx.Run
		if err := rows.Scan(&r.ID, &r.RunID, &r.Operation, &r.Path, &r.Status, &r.Detail, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// FindRun returns the run with the given run ID, or nil if none exists.
func (s *SQLiteDatabase) FindRun(runID string) (*fsx.Run, error) {
	var r fsx.Run
	err := s.db.QueryRowContext(context.Background(),
		`SELECT id, run_id, operation, path, status, detail, started_at, finished_at
		 FROM runs WHERE run_id = ?`,
		runID,
	).Scan(&r.ID, &r.RunID, &r.Operation, &r.Path, &r.Status, &r.Detail, &r.StartedAt, &r.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding run: %w", err)
	}
	return &r, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteDatabase implements fsx.History interface
var _ fsx.History = (*SQLiteDatabase)(nil)
