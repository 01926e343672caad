package testutil

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"fsx/internal/fsx"
)

// MockFile represents an entry in the mock filesystem.
type MockFile struct {
	Content     []byte
	IsDirectory bool
	Readable    bool
	Writable    bool
	ModTime     time.Time
}

// MockFileSystem is an in-memory filesystem for testing.
// Paths are cleaned with filepath.Clean; "." and "/" always exist as directories.
type MockFileSystem struct {
	files map[string]*MockFile

	// CreateErr, if set, is returned by CreateExclusive for paths that do not exist.
	CreateErr error
	// WriteErr, if set, is returned by every Write on a writer from OpenWriter.
	WriteErr error
	// ReadErr, if set, is returned by Read once the file content is consumed.
	ReadErr error

	openHandles int
}

// NewMockFileSystem creates an empty mock filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files: make(map[string]*MockFile),
	}
}

// AddFile adds a readable, writable regular file.
func (m *MockFileSystem) AddFile(path string, content []byte) *MockFile {
	f := &MockFile{
		Content:  content,
		Readable: true,
		Writable: true,
		ModTime:  time.Now(),
	}
	m.files[filepath.Clean(path)] = f
	return f
}

// AddDirectory adds a readable, writable directory.
func (m *MockFileSystem) AddDirectory(path string) *MockFile {
	d := &MockFile{
		IsDirectory: true,
		Readable:    true,
		Writable:    true,
		ModTime:     time.Now(),
	}
	m.files[filepath.Clean(path)] = d
	return d
}

// File returns the entry at path, or nil.
func (m *MockFileSystem) File(path string) *MockFile {
	return m.files[filepath.Clean(path)]
}

// OpenHandles returns the number of readers and writers not yet closed.
func (m *MockFileSystem) OpenHandles() int {
	return m.openHandles
}

func (m *MockFileSystem) lookup(name string) (*MockFile, bool) {
	clean := filepath.Clean(name)
	if clean == "." || clean == "/" {
		return &MockFile{IsDirectory: true, Readable: true, Writable: true}, true
	}
	f, ok := m.files[clean]
	return f, ok
}

func (m *MockFileSystem) parentExists(name string) bool {
	parent, ok := m.lookup(filepath.Dir(filepath.Clean(name)))
	return ok && parent.IsDirectory
}

func (m *MockFileSystem) CreateExclusive(name string) error {
	if _, ok := m.lookup(name); ok {
		return &fs.PathError{Op: "open", Path: name, Err: fs.ErrExist}
	}
	if m.CreateErr != nil {
		return &fs.PathError{Op: "open", Path: name, Err: m.CreateErr}
	}
	if !m.parentExists(name) {
		return &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	m.AddFile(name, nil)
	return nil
}

func (m *MockFileSystem) Stat(name string) (fs.FileInfo, error) {
	f, ok := m.lookup(name)
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}

	mode := fs.FileMode(0)
	if f.Readable {
		mode |= 0444
	}
	if f.Writable {
		mode |= 0200
	}
	if f.IsDirectory {
		mode |= fs.ModeDir | 0111
	}

	return &mockFileInfo{
		name:    filepath.Base(name),
		size:    int64(len(f.Content)),
		mode:    mode,
		modTime: f.ModTime,
		isDir:   f.IsDirectory,
	}, nil
}

func (m *MockFileSystem) CanRead(name string) bool {
	f, ok := m.lookup(name)
	return ok && f.Readable
}

func (m *MockFileSystem) CanWrite(name string) bool {
	f, ok := m.lookup(name)
	return ok && f.Writable
}

func (m *MockFileSystem) OpenWriter(name string) (io.WriteCloser, error) {
	f, ok := m.lookup(name)
	switch {
	case ok && f.IsDirectory:
		return nil, &fs.PathError{Op: "open", Path: name, Err: fmt.Errorf("is a directory")}
	case ok && !f.Writable:
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	case !ok && !m.parentExists(name):
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	case !ok:
		f = m.AddFile(name, nil)
	}

	f.Content = nil
	m.openHandles++
	return &mockWriter{fs: m, file: f}, nil
}

func (m *MockFileSystem) Open(name string) (io.ReadCloser, error) {
	f, ok := m.lookup(name)
	switch {
	case !ok:
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	case !f.Readable:
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}

	m.openHandles++
	var r io.Reader = bytes.NewReader(f.Content)
	if f.IsDirectory {
		r = &failingReader{err: fmt.Errorf("read %s: is a directory", name)}
	} else if m.ReadErr != nil {
		r = io.MultiReader(r, &failingReader{err: m.ReadErr})
	}
	return &mockReader{fs: m, r: r}, nil
}

type mockWriter struct {
	fs     *MockFileSystem
	file   *MockFile
	buf    bytes.Buffer
	closed bool
}

func (w *mockWriter) Write(p []byte) (int, error) {
	if w.fs.WriteErr != nil {
		return 0, w.fs.WriteErr
	}
	return w.buf.Write(p)
}

func (w *mockWriter) Close() error {
	if w.closed {
		return fmt.Errorf("writer already closed")
	}
	w.closed = true
	w.file.Content = append([]byte(nil), w.buf.Bytes()...)
	w.file.ModTime = time.Now()
	w.fs.openHandles--
	return nil
}

type mockReader struct {
	fs     *MockFileSystem
	r      io.Reader
	closed bool
}

func (r *mockReader) Read(p []byte) (int, error) {
	return r.r.Read(p)
}

func (r *mockReader) Close() error {
	if r.closed {
		return fmt.Errorf("reader already closed")
	}
	r.closed = true
	r.fs.openHandles--
	return nil
}

type failingReader struct {
	err error
}

func (r *failingReader) Read([]byte) (int, error) {
	return 0, r.err
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() any           { return nil }

// Compile-time check
var _ fsx.FileSystem = (*MockFileSystem)(nil)
