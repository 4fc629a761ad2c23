//go:build !unix && !windows

package logger

import "os"

func (osFileSystem) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
