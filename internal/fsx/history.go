package fsx

import (
	"database/sql"
	"time"
)

// Run statuses recorded in the history.
const (
	RunStatusRunning = "running"
	RunStatusSuccess = "success"
	RunStatusError   = "error"
)

// Run is one recorded invocation of an exercise.
type Run struct {
	ID         int64
	RunID      string
	Operation  string
	Path       string
	Status     string
	Detail     string
	StartedAt  time.Time
	FinishedAt sql.NullTime
}

// History persists run records. Implementations live in internal/database.
type History interface {
	// StartRun inserts run and sets its ID.
	StartRun(run *Run) error

	// FinishRun marks a run as finished with the given status and detail.
	FinishRun(id int64, status string, detail string, finishedAt time.Time) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]*Run, error)

	// CheckMigrations verifies that the history schema is up to date.
	CheckMigrations() error

	Close() error
}

// NopHistory records nothing. Runs started against it keep ID 0.
type NopHistory struct{}

var _ History = NopHistory{}

func (NopHistory) StartRun(*Run) error                              { return nil }
func (NopHistory) FinishRun(int64, string, string, time.Time) error { return nil }
func (NopHistory) ListRuns(int) ([]*Run, error)                     { return nil, nil }
func (NopHistory) CheckMigrations() error                           { return nil }
func (NopHistory) Close() error                                     { return nil }
