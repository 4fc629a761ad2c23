// Package logger provides a small debug logger that prints to the console and
// optionally mirrors every message to one append-only log file.
//
// # Write Paths
//
// There are three severities:
//
//   - Info writes to stdout and is skipped while the silent-mode query returns true.
//   - Error writes to stderr.
//   - Fatal writes to stderr with a "FATAL: " prefix, is never silenced, and sets
//     a fatal flag that stays set. It does not exit the process.
//
// Each path has f (fmt.Sprintf), ln (fmt.Sprintln) and KV (key=value) forms.
// Messages are written as given; the logger adds no newline to the f forms.
//
// # File Output
//
// While logging is not switched off and a path is set, every message is appended
// to the file with an optional "HH:MM:SS " prefix. The file is opened and closed
// for each message. Console output never carries timestamps.
//
// # Archive
//
// Archive copies the log file into ERR_<DDMMYYYY_HHMM>.txt and removes the
// original:
//
//	logger.Init(logger.Config{FilePath: "debug.log"})
//	logger.Infof("loaded %d assets\n", n)
//	if logger.FatalOccurred() {
//	    report, err := logger.Archive()
//	    ...
//	}
//
// # Environment
//
//	LOGGER_FILE       log file Init uses when Config.FilePath is empty
//	LOGGER_TIMESTAMP  "off" drops file timestamps
//	JOURNAL_STREAM    adds journald priority prefixes to console lines
package logger
