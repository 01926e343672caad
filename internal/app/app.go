package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"fsx/internal/config"
	"fsx/internal/database"
	"fsx/internal/fs"
	"fsx/internal/fsx"
)

// App is the application layer between the CLI and fsx.Service.
// It constructs all dependencies from config, records every exercise it runs
// in the run history, and closes the history and log on Close.
type App struct {
	cfg        *config.Config
	history    fsx.History
	historyErr error
	service    *fsx.Service
	clock      fsx.Clock
	op         *Operation
	logger     *slog.Logger
	logFile    *os.File
}

// New creates a fully wired App from the given config.
// operation names the exercise being run (e.g. "CreateFile", "ReadLines").
// When mirror is non-nil the structured log is copied to it.
//
// The run history and the log file are auxiliary: if either cannot be opened
// a warning is logged and the exercise still runs, unrecorded or unlogged.
// The caller must call Close when done.
func New(cfg *config.Config, operation string, mirror io.Writer) *App {
	logOut, logFile, logErr := openLog(cfg.LogDir, mirror)
	if logErr != nil {
		logOut = io.Discard
		if mirror != nil {
			logOut = mirror
		}
	}

	history, historyErr := openHistory(cfg.Database)

	a := newApp(cfg, history, fs.NewOSFileSystem(), logOut, fsx.RealClock{}, fsx.UUIDGenerator{}, operation)
	a.logFile = logFile
	a.historyErr = historyErr

	if logErr != nil {
		a.logger.Warn("log file unavailable", "error", logErr)
	}
	if historyErr != nil {
		a.logger.Warn("run history unavailable, run will not be recorded", "error", historyErr)
	}
	return a
}

// openHistory opens the configured run history. On failure it returns a
// NopHistory together with the cause.
func openHistory(cfg config.DatabaseConfig) (fsx.History, error) {
	history, err := database.NewDatabaseFromConfig(cfg)
	if err != nil {
		return fsx.NopHistory{}, fmt.Errorf("opening run history: %w", err)
	}

	if err := history.CheckMigrations(); err != nil {
		history.Close()
		return fsx.NopHistory{}, fmt.Errorf("run history schema out of date: %w", err)
	}
	return history, nil
}

func newApp(cfg *config.Config, history fsx.History, fsys fsx.FileSystem, logOut io.Writer, clock fsx.Clock, ids fsx.IDGenerator, operation string) *App {
	op := NewOperation(operation, ids.New())
	logger := newLogger(logOut, op.RunID)

	return &App{
		cfg:     cfg,
		history: history,
		service: fsx.NewService(fsys, &slogAdapter{l: logger}),
		clock:   clock,
		op:      op,
		logger:  logger,
	}
}

// Config returns the configuration the App was built from.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Operation returns the operation this App records.
func (a *App) Operation() *Operation {
	return a.op
}

// begin persists the operation as a running entry in the run history.
// A recording failure is logged and leaves the operation unpersisted.
func (a *App) begin(path string) {
	if a.op.Persisted() {
		return
	}
	a.op.Path = path

	run := &fsx.Run{
		RunID:     a.op.RunID,
		Operation: a.op.Name,
		Path:      path,
		Status:    fsx.RunStatusRunning,
		StartedAt: a.clock.Now(),
	}
	if err := a.history.StartRun(run); err != nil {
		a.logger.Warn("recording run failed", "error", err)
	}
	a.op.ID = run.ID

	a.logger.Info("run started", "operation", a.op.Name, "path", path)
}

// CreateFile creates rawPath if nothing exists there.
func (a *App) CreateFile(rawPath string) (fsx.CreateResult, error) {
	a.begin(rawPath)
	res, err := a.service.CreateFile(rawPath)
	a.op.Fail(err)
	return res, err
}

// CheckExists creates rawPath if needed and then checks that it exists.
func (a *App) CheckExists(rawPath string) (fsx.ExistsResult, error) {
	a.begin(rawPath)
	res, err := a.service.CheckExists(rawPath)
	a.op.Fail(err)
	return res, err
}

// CheckPermissions reports read and write access on rawPath.
func (a *App) CheckPermissions(rawPath string) fsx.Permissions {
	a.begin(rawPath)
	return a.service.CheckPermissions(rawPath)
}

// ClassifyInput reads one name from r and classifies it.
// An input without a name fails with an InputFailure.
func (a *App) ClassifyInput(r io.Reader) (fsx.Classification, error) {
	name, err := fsx.ReadToken(r)
	a.begin(name)
	if err != nil {
		a.op.Fail(err)
		return fsx.Classification{}, err
	}
	return a.service.ClassifyPath(name), nil
}

// WriteLine replaces the content of rawPath with text.
func (a *App) WriteLine(rawPath string, text string) error {
	a.begin(rawPath)
	err := a.service.WriteLine(rawPath, text)
	a.op.Fail(err)
	return err
}

// ReadLines calls emit with each line of rawPath in order.
// Lines emitted before a read failure are kept.
func (a *App) ReadLines(rawPath string, emit func(line string)) error {
	a.begin(rawPath)
	for line, err := range a.service.ReadLines(rawPath) {
		if err != nil {
			a.op.Fail(err)
			return err
		}
		emit(line)
	}
	return nil
}

// History returns the most recent runs, newest first. It is not itself recorded.
// Unlike the exercises it fails when the run history could not be opened.
func (a *App) History(limit int) ([]*fsx.Run, error) {
	if a.historyErr != nil {
		return nil, a.historyErr
	}
	return a.history.ListRuns(limit)
}

// Close finishes the run record of a persisted operation and closes all resources.
// A failure to record the outcome is logged and returned; the exercise itself
// has already completed.
func (a *App) Close() error {
	var firstErr error

	if a.op.Persisted() {
		if err := a.history.FinishRun(a.op.ID, a.op.Status, a.op.Detail, a.clock.Now()); err != nil {
			a.logger.Warn("recording run outcome failed", "error", err)
			firstErr = fmt.Errorf("finishing run: %w", err)
		}
		a.logger.Info("run finished", "operation", a.op.Name, "status", a.op.Status)
	}

	if err := a.history.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing run history: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
