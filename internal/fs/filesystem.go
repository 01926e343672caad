package fs

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"fsx/internal/fsx"
)

// OSFileSystem is the real filesystem implementation of fsx.FileSystem.
// It performs actual filesystem operations using the os package.
type OSFileSystem struct {
	fileMode fs.FileMode
}

// NewOSFileSystem creates a filesystem that operates on the real filesystem.
// New files are created with mode 0644 before the process umask is applied.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{fileMode: 0644}
}

// CreateExclusive creates name with O_EXCL so an existing entry is never truncated.
func (m *OSFileSystem) CreateExclusive(name string) error {
	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, m.fileMode)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing new file: %w", err)
	}
	return nil
}

// Stat returns fresh file info for name.
func (m *OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// CanRead reports whether the process may open name for reading.
func (m *OSFileSystem) CanRead(name string) bool {
	return canAccess(name, accessRead)
}

// CanWrite reports whether the process may open name for writing.
func (m *OSFileSystem) CanWrite(name string) bool {
	return canAccess(name, accessWrite)
}

// OpenWriter opens name for writing, creating it or truncating prior content.
func (m *OSFileSystem) OpenWriter(name string) (io.WriteCloser, error) {
	return os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, m.fileMode)
}

// Open opens name for reading.
func (m *OSFileSystem) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// Compile-time check that OSFileSystem implements fsx.FileSystem interface
var _ fsx.FileSystem = (*OSFileSystem)(nil)
