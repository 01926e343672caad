package fsx

import (
	"io"
	"io/fs"
)

// FileSystem provides the filesystem primitives the exercises are built on.
// It abstracts file access to enable testing without touching the real filesystem.
type FileSystem interface {
	// CreateExclusive creates a new empty regular file. It never truncates:
	// if any entry already exists at name the returned error satisfies
	// errors.Is(err, fs.ErrExist).
	CreateExclusive(name string) error

	// Stat returns fresh file info for name.
	Stat(name string) (fs.FileInfo, error)

	// CanRead reports whether the current process may open name for reading.
	CanRead(name string) bool

	// CanWrite reports whether the current process may open name for writing.
	CanWrite(name string) bool

	// OpenWriter opens name for writing, creating it or truncating prior content.
	OpenWriter(name string) (io.WriteCloser, error)

	// Open opens name for reading.
	Open(name string) (io.ReadCloser, error)
}
