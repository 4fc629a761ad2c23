package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// State is the tri-state enabled flag of a Logger.
type State int8

const (
	// StateUnset means logging was never configured. It counts as enabled.
	StateUnset State = iota
	// StateOff means logging was explicitly disabled.
	StateOff
	// StateOn means logging was explicitly enabled.
	StateOn
)

func (s State) String() string {
	switch s {
	case StateOff:
		return "off"
	case StateOn:
		return "on"
	default:
		return "unset"
	}
}

// truthy reports whether the file-append path is active. Unset counts as on.
func (s State) truthy() bool {
	return s != StateOff
}

var (
	// ErrNoLogPath is returned by Cleanup when no log path is configured.
	ErrNoLogPath = errors.New("logger: no log path configured")
	// ErrNothingToArchive is returned by Archive when no log path is configured.
	ErrNothingToArchive = errors.New("logger: nothing to archive")
)

// Config defines options for New and Init.
// Only Init falls back to LOGGER_FILE when FilePath is empty; New never touches
// a file that Config does not name.
type Config struct {
	// FilePath enables file mirroring to this path. An existing file is replaced.
	// Default: "" (Init falls back to LOGGER_FILE)
	FilePath string
	// DisableTimestamp drops the HH:MM:SS prefix from file lines.
	// LOGGER_TIMESTAMP=off also disables it.
	// Default: false (timestamps on)
	DisableTimestamp bool
	// Silent is queried on every info write; true suppresses the console copy.
	// It runs outside the Logger's lock and may itself log.
	// Default: nil (never silent)
	Silent func() bool
	// ArchiveDir is where Archive creates ERR_ reports.
	// Default: "" (working directory)
	ArchiveDir string
	// FileSystem replaces stale log files when logging is enabled.
	// Default: nil (platform implementation)
	FileSystem FileSystem
}

// Dependency injection points for testing outputs.
var (
	outStdout io.Writer = os.Stdout
	outStderr io.Writer = os.Stderr
	timeNow             = time.Now
)

const (
	timestampLayout = "15:04:05 "
	fatalTag        = "FATAL: "
)

// fatalSeen is set by the first fatal write of any Logger in the process.
var fatalSeen atomic.Bool

// FatalOccurred reports whether any Logger in this process has emitted a fatal message.
func FatalOccurred() bool {
	return fatalSeen.Load()
}

type severity int

const (
	sevInfo severity = iota
	sevError
	sevFatal
)

// Logger writes messages to the console and, when enabled, appends them to a log file.
// The zero value is not usable; create one with New.
// Thread-safe for concurrent use.
type Logger struct {
	mu           sync.Mutex
	state        State
	timestamp    bool
	path         string
	silent       func() bool
	fs           FileSystem
	archiveDir   string
	stdout       io.Writer
	stderr       io.Writer
	journal      bool
	appendWarned bool

	fatal atomic.Bool
}

// New returns a Logger configured from config and LOGGER_TIMESTAMP.
// A non-empty Config.FilePath is passed to EnableLogging; a failure there is
// reported on stderr and leaves logging off.
func New(config Config) *Logger {
	l := newLogger(config)
	if config.FilePath != "" {
		_ = l.EnableLogging(true, config.FilePath)
	}
	return l
}

func newLogger(config Config) *Logger {
	l := &Logger{
		timestamp:  resolveTimestamp(config.DisableTimestamp),
		silent:     config.Silent,
		fs:         config.FileSystem,
		archiveDir: config.ArchiveDir,
		stdout:     outStdout,
		stderr:     outStderr,
		journal:    shouldUseSyslogPrefix(),
	}
	if l.fs == nil {
		l.fs = osFileSystem{}
	}
	return l
}

func resolveFilePath(path string) string {
	if path != "" {
		return path
	}
	return strings.TrimSpace(os.Getenv("LOGGER_FILE"))
}

func resolveTimestamp(disabled bool) bool {
	if disabled {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOGGER_TIMESTAMP"))) {
	case "off", "false", "0", "no":
		return false
	}
	return true
}

// SetLogPath stores the file used for mirroring. It does not open or validate it.
func (l *Logger) SetLogPath(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setPathLocked(path)
}

func (l *Logger) setPathLocked(path string) {
	if path != l.path {
		l.appendWarned = false
	}
	l.path = path
}

// SetTimestampEnabled toggles the HH:MM:SS prefix on file lines.
// Console output is never timestamped.
func (l *Logger) SetTimestampEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.timestamp = enabled
}

// SetSilentFunc installs the silent-mode query consulted by the info write path.
func (l *Logger) SetSilentFunc(silent func() bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.silent = silent
}

// EnableLogging sets the enabled flag.
//
// When enabling with a non-empty path, an existing file at path is removed and
// the path is opened in append mode to check that it is writable. If that check
// fails, logging is switched off, the failure is reported through Errorf, and the
// error is returned. An empty path keeps the configured path.
func (l *Logger) EnableLogging(enable bool, path string) error {
	err := l.enable(enable, path)
	if err != nil {
		l.Errorf("Unable to open file: %s\n", path)
	}
	return err
}

func (l *Logger) enable(enable bool, path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !enable {
		l.state = StateOff
		return nil
	}
	l.state = StateOn
	if path == "" {
		return nil
	}

	if l.fs.Exists(path) {
		_ = l.fs.Remove(path)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err == nil {
		err = f.Close()
	}
	if err != nil {
		l.state = StateOff
		return fmt.Errorf("logger: open log file %s: %w", path, err)
	}
	l.setPathLocked(path)
	return nil
}

// IsLogging reports whether file mirroring is active: the enabled flag is not off
// and a path is configured.
func (l *Logger) IsLogging() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.truthy() && l.path != ""
}

// State returns the enabled flag.
func (l *Logger) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Path returns the configured log path, or "" if none is set.
func (l *Logger) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path
}

// Cleanup removes the configured log file.
// It returns ErrNoLogPath when no path is set, and an error wrapping
// fs.ErrNotExist when the file is already gone.
func (l *Logger) Cleanup() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cleanupLocked()
}

func (l *Logger) cleanupLocked() error {
	if l.path == "" {
		return ErrNoLogPath
	}
	if err := l.fs.Remove(l.path); err != nil {
		return fmt.Errorf("logger: remove log file: %w", err)
	}
	return nil
}

// FatalOccurred reports whether this Logger has emitted a fatal message. It is never reset.
func (l *Logger) FatalOccurred() bool {
	return l.fatal.Load()
}

// write emits msg to the console and, when enabled, appends it to the log file.
// Both happen under one lock so concurrent callers never interleave.
func (l *Logger) write(sev severity, msg string) {
	suppress := sev == sevInfo && l.isSilent()

	l.mu.Lock()
	defer l.mu.Unlock()

	switch sev {
	case sevInfo:
		if !suppress {
			_, _ = io.WriteString(l.console(sev), msg)
		}
	case sevError:
		_, _ = io.WriteString(l.console(sev), msg)
	case sevFatal:
		_, _ = io.WriteString(l.console(sev), fatalTag+msg)
	}

	if l.state.truthy() {
		l.appendLocked(msg)
	}

	if sev == sevFatal {
		l.fatal.Store(true)
		fatalSeen.Store(true)
	}
}

// isSilent runs the silent-mode query without holding the lock.
func (l *Logger) isSilent() bool {
	l.mu.Lock()
	silent := l.silent
	l.mu.Unlock()
	return silent != nil && silent()
}

func (l *Logger) console(sev severity) io.Writer {
	out := l.stderr
	if sev == sevInfo {
		out = l.stdout
	}
	if l.journal {
		return &syslogPrefixWriter{w: out, prefix: syslogPrefixForSeverity(sev)}
	}
	return out
}

// appendLocked opens the log file, writes one optionally timestamped record and
// closes it again. A failure is reported once until an append succeeds or the
// path changes.
func (l *Logger) appendLocked(msg string) {
	if l.path == "" {
		return
	}
	record := msg
	if l.timestamp {
		record = timeNow().Format(timestampLayout) + msg
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err == nil {
		_, err = io.WriteString(f, record)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		if !l.appendWarned {
			l.appendWarned = true
			fmt.Fprintf(l.stderr, "logger: unable to append to %s: %v\n", l.path, err)
		}
		return
	}
	l.appendWarned = false
}

// encodeFields formats key-value pairs as "key=value" strings.
func encodeFields(keyvals ...any) string {
	if len(keyvals) == 0 {
		return ""
	}
	parts := make([]string, 0, len(keyvals)/2)
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", key, keyvals[i+1]))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

func kvLine(msg string, keyvals ...any) string {
	return msg + encodeFields(keyvals...) + "\n"
}

// --- Formatted logging methods (fmt.Sprintf style) ---
// The caller's template carries any trailing newline.

// Infof writes an informational message to stdout unless silent mode is active,
// and to the log file when enabled.
func (l *Logger) Infof(format string, v ...any) {
	l.write(sevInfo, fmt.Sprintf(format, v...))
}

// Errorf writes an error message to stderr and to the log file when enabled.
func (l *Logger) Errorf(format string, v ...any) {
	l.write(sevError, fmt.Sprintf(format, v...))
}

// Fatalf writes a message to stderr prefixed with "FATAL: ", appends it to the
// log file when enabled, and sets the fatal flag. It never exits the process and
// is never suppressed by silent mode.
func (l *Logger) Fatalf(format string, v ...any) {
	l.write(sevFatal, fmt.Sprintf(format, v...))
}

// --- Plain logging methods (Println style) ---

// Infoln is Infof with fmt.Sprintln formatting.
func (l *Logger) Infoln(v ...any) {
	l.write(sevInfo, fmt.Sprintln(v...))
}

// Errorln is Errorf with fmt.Sprintln formatting.
func (l *Logger) Errorln(v ...any) {
	l.write(sevError, fmt.Sprintln(v...))
}

// Fatalln is Fatalf with fmt.Sprintln formatting.
func (l *Logger) Fatalln(v ...any) {
	l.write(sevFatal, fmt.Sprintln(v...))
}

// --- Structured logging methods (key-value pairs) ---

// InfoKV writes "msg key=value ...\n" through the info path.
func (l *Logger) InfoKV(msg string, keyvals ...any) {
	l.write(sevInfo, kvLine(msg, keyvals...))
}

// ErrorKV writes "msg key=value ...\n" through the error path.
func (l *Logger) ErrorKV(msg string, keyvals ...any) {
	l.write(sevError, kvLine(msg, keyvals...))
}

// FatalKV writes "msg key=value ...\n" through the fatal path.
func (l *Logger) FatalKV(msg string, keyvals ...any) {
	l.write(sevFatal, kvLine(msg, keyvals...))
}
