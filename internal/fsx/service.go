package fsx

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
)

// maxLineSize bounds a single line yielded by ReadLines.
const maxLineSize = 1024 * 1024

// CreateResult reports the outcome of a create attempt.
// Name and Path are only set when Created is true.
type CreateResult struct {
	Created bool
	Name    string
	Path    string
}

// ExistsResult reports a create attempt followed by an independent existence check.
type ExistsResult struct {
	Create CreateResult
	Exists bool
}

// Permissions reports the access rights of the current process on a path.
type Permissions struct {
	Readable bool
	Writable bool
}

// Classification reports which predicates hold for a path.
// Both are false when the path does not exist.
type Classification struct {
	IsFile bool
	IsDir  bool
}

// Service implements the filesystem exercises on top of a FileSystem.
// Each operation is independent and holds no state between calls.
type Service struct {
	fsys   FileSystem
	logger Logger
}

// NewService creates a Service with the provided dependencies.
func NewService(fsys FileSystem, logger Logger) *Service {
	return &Service{
		fsys:   fsys,
		logger: logger,
	}
}

// CreateFile creates an empty regular file at rawPath if nothing exists there.
// An existing file or directory is left untouched and reported with Created=false.
func (s *Service) CreateFile(rawPath string) (CreateResult, error) {
	p := NewPathRef(rawPath)

	err := s.fsys.CreateExclusive(p.String())
	if errors.Is(err, fs.ErrExist) {
		s.logger.Info("file already exists", "path", p.String())
		return CreateResult{}, nil
	}
	if err != nil {
		s.logger.Error("creating file", "path", p.String(), "error", err)
		return CreateResult{}, &OpError{Kind: CreationFailure, Path: p.String(), Err: err}
	}

	s.logger.Info("file created", "path", p.String())
	return CreateResult{Created: true, Name: p.Name(), Path: p.String()}, nil
}

// CheckExists runs the CreateFile step and then queries existence on its own,
// whatever the create step reported. A creation failure ends the operation.
func (s *Service) CheckExists(rawPath string) (ExistsResult, error) {
	created, err := s.CreateFile(rawPath)
	if err != nil {
		return ExistsResult{}, err
	}

	return ExistsResult{
		Create: created,
		Exists: s.exists(rawPath),
	}, nil
}

func (s *Service) exists(name string) bool {
	_, err := s.fsys.Stat(name)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("stat failed", "path", name, "error", err)
	}
	return err == nil
}

// CheckPermissions reports whether rawPath can be opened for reading and for writing.
// A missing path is neither readable nor writable.
func (s *Service) CheckPermissions(rawPath string) Permissions {
	p := NewPathRef(rawPath)
	perms := Permissions{
		Readable: s.fsys.CanRead(p.String()),
		Writable: s.fsys.CanWrite(p.String()),
	}
	s.logger.Debug("permissions checked", "path", p.String(), "readable", perms.Readable, "writable", perms.Writable)
	return perms
}

// ClassifyPath reports whether rawPath is a regular file or a directory.
func (s *Service) ClassifyPath(rawPath string) Classification {
	p := NewPathRef(rawPath)

	info, err := s.fsys.Stat(p.String())
	if err != nil {
		s.logger.Debug("classify: path not found", "path", p.String(), "error", err)
		return Classification{}
	}

	c := Classification{
		IsFile: info.Mode().IsRegular(),
		IsDir:  info.IsDir(),
	}
	s.logger.Debug("path classified", "path", p.String(), "file", c.IsFile, "dir", c.IsDir)
	return c
}

// WriteLine replaces the content of rawPath with text. No newline is appended.
func (s *Service) WriteLine(rawPath string, text string) (err error) {
	p := NewPathRef(rawPath)

	w, err := s.fsys.OpenWriter(p.String())
	if err != nil {
		return &OpError{Kind: WriteFailure, Path: p.String(), Err: fmt.Errorf("opening for write: %w", err)}
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = &OpError{Kind: WriteFailure, Path: p.String(), Err: fmt.Errorf("closing: %w", cerr)}
		}
	}()

	if _, err := io.WriteString(w, text); err != nil {
		return &OpError{Kind: WriteFailure, Path: p.String(), Err: fmt.Errorf("writing: %w", err)}
	}

	s.logger.Info("line written", "path", p.String(), "bytes", len(text))
	return nil
}

// ReadLines returns a single-pass sequence over the lines of rawPath.
// The file is opened when iteration starts and closed when the sequence is
// exhausted, the consumer stops early, or an error is yielded. An error is
// always the last element yielded.
func (s *Service) ReadLines(rawPath string) iter.Seq2[string, error] {
	p := NewPathRef(rawPath)

	return func(yield func(string, error) bool) {
		r, err := s.fsys.Open(p.String())
		if err != nil {
			yield("", &OpError{Kind: ReadFailure, Path: p.String(), Err: fmt.Errorf("opening for read: %w", err)})
			return
		}
		defer r.Close()

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		lines := 0
		for scanner.Scan() {
			lines++
			if !yield(scanner.Text(), nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield("", &OpError{Kind: ReadFailure, Path: p.String(), Err: fmt.Errorf("reading lines: %w", err)})
			return
		}

		s.logger.Info("lines read", "path", p.String(), "lines", lines)
	}
}

// ReadToken reads one whitespace-delimited token from r.
// It returns an *OpError wrapping ErrNoInput when r holds no token.
func ReadToken(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", &OpError{Kind: InputFailure, Err: fmt.Errorf("reading input: %w", err)}
	}
	return "", &OpError{Kind: InputFailure, Err: ErrNoInput}
}
