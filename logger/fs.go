package logger

import "os"

// FileSystem is the capability EnableLogging uses to replace a stale log file
// and Cleanup uses to delete the live one. Every platform implementation checks
// for existence before removal.
type FileSystem interface {
	// Exists reports whether a file is present at path.
	Exists(path string) bool
	// Remove deletes the file at path.
	Remove(path string) error
}

// osFileSystem is the platform implementation. Exists lives in the fs_*.go files.
type osFileSystem struct{}

func (osFileSystem) Remove(path string) error {
	return os.Remove(path)
}
