package logger

import (
	"fmt"
	"sync/atomic"
)

// std is the process default logger behind the package-level functions.
// It starts unconfigured and touches no files until configured.
var std atomic.Pointer[Logger]

func init() {
	std.Store(newLogger(Config{}))
}

// Init replaces the default logger with New(config).
// An empty Config.FilePath falls back to LOGGER_FILE.
// The process-wide fatal flag reported by FatalOccurred survives the swap.
func Init(config Config) {
	config.FilePath = resolveFilePath(config.FilePath)
	std.Store(New(config))
}

// Default returns the process default logger.
func Default() *Logger {
	return std.Load()
}

// SetLogPath sets the log path of the default logger.
func SetLogPath(path string) { Default().SetLogPath(path) }

// SetTimestampEnabled toggles file timestamps on the default logger.
func SetTimestampEnabled(enabled bool) { Default().SetTimestampEnabled(enabled) }

// SetSilentFunc installs the silent-mode query on the default logger.
func SetSilentFunc(silent func() bool) { Default().SetSilentFunc(silent) }

// EnableLogging enables or disables file mirroring on the default logger.
func EnableLogging(enable bool, path string) error { return Default().EnableLogging(enable, path) }

// IsLogging reports whether the default logger mirrors to a file.
func IsLogging() bool { return Default().IsLogging() }

// Cleanup removes the default logger's log file.
func Cleanup() error { return Default().Cleanup() }

// Archive snapshots the default logger's log file into an ERR_ report.
func Archive() (string, error) { return Default().Archive() }

// Infof writes through the default logger's info path.
// Thread-safe for concurrent use.
func Infof(format string, v ...any) {
	Default().write(sevInfo, fmt.Sprintf(format, v...))
}

// Errorf writes through the default logger's error path.
// Thread-safe for concurrent use.
func Errorf(format string, v ...any) {
	Default().write(sevError, fmt.Sprintf(format, v...))
}

// Fatalf writes through the default logger's fatal path and sets the fatal flag.
// It does not exit; poll FatalOccurred to react.
// Thread-safe for concurrent use.
func Fatalf(format string, v ...any) {
	Default().write(sevFatal, fmt.Sprintf(format, v...))
}

// Infoln writes through the default logger's info path using fmt.Sprintln.
func Infoln(v ...any) {
	Default().write(sevInfo, fmt.Sprintln(v...))
}

// Errorln writes through the default logger's error path using fmt.Sprintln.
func Errorln(v ...any) {
	Default().write(sevError, fmt.Sprintln(v...))
}

// Fatalln writes through the default logger's fatal path using fmt.Sprintln.
func Fatalln(v ...any) {
	Default().write(sevFatal, fmt.Sprintln(v...))
}

// InfoKV writes a key-value line through the default logger's info path.
func InfoKV(msg string, keyvals ...any) {
	Default().write(sevInfo, kvLine(msg, keyvals...))
}

// ErrorKV writes a key-value line through the default logger's error path.
func ErrorKV(msg string, keyvals ...any) {
	Default().write(sevError, kvLine(msg, keyvals...))
}

// FatalKV writes a key-value line through the default logger's fatal path.
func FatalKV(msg string, keyvals ...any) {
	Default().write(sevFatal, kvLine(msg, keyvals...))
}
