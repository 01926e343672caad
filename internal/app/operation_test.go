package app

import (
	"errors"
	"testing"

	"fsx/internal/fsx"
)

func TestNewOperation(t *testing.T) {
	op := NewOperation("CreateFile", "run-1")

	if op.Name != "CreateFile" {
		t.Errorf("Name = %q, want %q", op.Name, "CreateFile")
	}
	if op.RunID != "run-1" {
		t.Errorf("RunID = %q, want %q", op.RunID, "run-1")
	}
	if op.Status != fsx.RunStatusSuccess {
		t.Errorf("Status = %q, want %q", op.Status, fsx.RunStatusSuccess)
	}
	if op.ID != 0 {
		t.Errorf("ID = %d, want 0", op.ID)
	}
}

func TestOperation_Persisted(t *testing.T) {
	tests := []struct {
		name string
		id   int64
		want bool
	}{
		{name: "not persisted when ID is 0", id: 0, want: false},
		{name: "persisted when ID is positive", id: 1, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := &Operation{ID: tt.id}
			if got := op.Persisted(); got != tt.want {
				t.Errorf("Persisted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOperation_Fail(t *testing.T) {
	t.Run("records error detail", func(t *testing.T) {
		op := NewOperation("WriteLine", "run-1")
		op.Fail(&fsx.OpError{Kind: fsx.WriteFailure, Path: "meu_arquivo.txt", Err: errors.New("disk full")})

		if op.Status != fsx.RunStatusError {
			t.Errorf("Status = %q, want %q", op.Status, fsx.RunStatusError)
		}
		if op.Detail != "write failure: meu_arquivo.txt: disk full" {
			t.Errorf("Detail = %q", op.Detail)
		}
	})

	t.Run("nil error keeps success", func(t *testing.T) {
		op := NewOperation("WriteLine", "run-1")
		op.Fail(nil)

		if op.Status != fsx.RunStatusSuccess || op.Detail != "" {
			t.Errorf("got (%q, %q), want (%q, \"\")", op.Status, op.Detail, fsx.RunStatusSuccess)
		}
	})
}
