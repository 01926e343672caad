package fsx

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an exercise operation failed.
type ErrorKind int

const (
	// CreationFailure means the file could not be created.
	CreationFailure ErrorKind = iota + 1
	// WriteFailure means opening for write, writing or closing failed.
	WriteFailure
	// ReadFailure means opening for read or iterating lines failed.
	ReadFailure
	// InputFailure means no path could be read from the input source.
	InputFailure
)

func (k ErrorKind) String() string {
	switch k {
	case CreationFailure:
		return "creation failure"
	case WriteFailure:
		return "write failure"
	case ReadFailure:
		return "read failure"
	case InputFailure:
		return "input failure"
	default:
		return "unknown failure"
	}
}

// ErrNoInput is returned by ReadToken when the input holds no token.
var ErrNoInput = errors.New("no input")

// OpError is the error returned by every failing exercise operation.
type OpError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *OpError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// KindOf returns the ErrorKind carried by err, or 0 if err is not an *OpError.
func KindOf(err error) ErrorKind {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	return 0
}
