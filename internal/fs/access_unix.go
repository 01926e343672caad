//go:build unix

package fs

import "golang.org/x/sys/unix"

type accessMode uint32

const (
	accessRead  accessMode = unix.R_OK
	accessWrite accessMode = unix.W_OK
)

// canAccess asks the kernel, through access(2), whether the process's real
// user and group ids may access name in the given mode. Missing paths and
// dangling symlinks report false.
func canAccess(name string, mode accessMode) bool {
	return unix.Access(name, uint32(mode)) == nil
}
