package app

import "fsx/internal/fsx"

// Operation tracks the exercise a CLI invocation runs.
// It starts in memory with ID=0. Exercises persist it to the run history when
// they start; read-only commands such as history never do.
type Operation struct {
	ID     int64
	RunID  string
	Name   string
	Path   string
	Status string // "success" or "error"
	Detail string
}

// NewOperation creates a new in-memory operation.
func NewOperation(name, runID string) *Operation {
	return &Operation{
		Name:   name,
		RunID:  runID,
		Status: fsx.RunStatusSuccess,
	}
}

// Persisted returns true if this operation has been saved to the run history.
func (op *Operation) Persisted() bool {
	return op.ID != 0
}

// Fail marks the operation as failed with err as its detail. A nil err is ignored.
func (op *Operation) Fail(err error) {
	if err == nil {
		return
	}
	op.Status = fsx.RunStatusError
	op.Detail = err.Error()
}
