//go:build unix

package logger

import "golang.org/x/sys/unix"

// Exists uses access(2) with F_OK.
func (osFileSystem) Exists(path string) bool {
	return unix.Access(path, unix.F_OK) == nil
}
