package fsx

import "path/filepath"

// PathRef names a location in the filesystem. It carries no cached
// metadata: every query made through a FileSystem re-reads the disk.
type PathRef struct {
	raw string
}

// NewPathRef creates a PathRef from a literal or user-entered string.
func NewPathRef(raw string) PathRef {
	return PathRef{raw: raw}
}

// Name returns the final path component.
func (p PathRef) Name() string {
	return filepath.Base(p.raw)
}

// String returns the path exactly as given.
func (p PathRef) String() string {
	return p.raw
}
