//go:build !unix

package fs

import "os"

type accessMode uint32

const (
	accessRead accessMode = 1 << iota
	accessWrite
)

// canAccess approximates access(2) from the owner permission bits.
func canAccess(name string, mode accessMode) bool {
	info, err := os.Stat(name)
	if err != nil {
		return false
	}
	perm := info.Mode().Perm()
	switch mode {
	case accessRead:
		return perm&0400 != 0
	case accessWrite:
		return perm&0200 != 0
	default:
		return false
	}
}
