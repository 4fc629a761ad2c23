package logger

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// archiveLayout renders DDMMYYYY_HHMM.
const archiveLayout = "02012006_1504"

// maxArchiveSuffix bounds the _N suffixes tried for reports created in the same minute.
const maxArchiveSuffix = 100

func archiveName(t time.Time) string {
	return "ERR_" + t.Format(archiveLayout) + ".txt"
}

// createReport creates ERR_<DDMMYYYY_HHMM>.txt in dir without replacing an
// existing report. Collisions get ERR_<DDMMYYYY_HHMM>_2.txt, _3 and so on.
func createReport(dir string, t time.Time) (*os.File, string, error) {
	base := "ERR_" + t.Format(archiveLayout)
	name := filepath.Join(dir, archiveName(t))
	for n := 2; ; n++ {
		f, err := os.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil || !errors.Is(err, fs.ErrExist) || n > maxArchiveSuffix {
			return f, name, err
		}
		name = filepath.Join(dir, base+"_"+strconv.Itoa(n)+".txt")
	}
}

// Archive copies the current log file into ERR_<DDMMYYYY_HHMM>.txt in the
// configured archive directory, then removes the log file. An existing report
// from the same minute is kept and the new one gets a _N suffix.
//
// It returns ErrNothingToArchive when no log path is set. If the report or the
// log file cannot be opened, the failure is written through Errorf and returned
// without copying anything. On success the report path is returned; a non-nil
// error alongside it means only the removal of the live log failed.
func (l *Logger) Archive() (string, error) {
	dst, report, err := l.archive()
	if report != "" {
		l.Errorf("%s", report)
	}
	return dst, err
}

func (l *Logger) archive() (dst, report string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.path == "" {
		return "", "", ErrNothingToArchive
	}

	out, dst, outErr := createReport(l.archiveDir, timeNow())
	in, inErr := os.Open(l.path)
	switch {
	case outErr != nil:
		if inErr == nil {
			_ = in.Close()
		}
		return "", fmt.Sprintf("Unable to open %s for error output.\n", dst),
			fmt.Errorf("logger: create archive %s: %w", dst, outErr)
	case inErr != nil:
		_ = out.Close()
		_ = os.Remove(dst)
		return "", fmt.Sprintf("Unable to open %s for error output.\n", l.path),
			fmt.Errorf("logger: open log file %s: %w", l.path, inErr)
	}

	if err := copyLog(out, in); err != nil {
		_ = in.Close()
		_ = out.Close()
		_ = os.Remove(dst)
		return "", fmt.Sprintf("Unable to copy %s to %s.\n", l.path, dst), err
	}
	_ = in.Close()
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Sprintf("Unable to write %s.\n", dst),
			fmt.Errorf("logger: close archive %s: %w", dst, err)
	}

	return dst, "", l.cleanupLocked()
}

// copyLog copies exactly the bytes in holds when it is called.
func copyLog(out io.Writer, in *os.File) error {
	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("logger: stat log file: %w", err)
	}
	if _, err := io.CopyN(out, in, info.Size()); err != nil {
		return fmt.Errorf("logger: copy log file: %w", err)
	}
	return nil
}
