//go:build windows

package logger

import "golang.org/x/sys/windows"

// Exists uses GetFileAttributesW, which fails for a missing path.
func (osFileSystem) Exists(path string) bool {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(p)
	return err == nil && attrs != windows.INVALID_FILE_ATTRIBUTES
}
