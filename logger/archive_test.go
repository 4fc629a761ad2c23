package logger

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveName(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 7, 59, 0, time.Local)
	assert.Equal(t, "ERR_05032024_1407.txt", archiveName(ts))
}

func TestArchive_NoPath(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()

	l := New(Config{ArchiveDir: dir})
	dst, err := l.Archive()

	require.ErrorIs(t, err, ErrNothingToArchive)
	assert.Empty(t, dst)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "archiving without a log path must not create files")
}

func TestArchive_CopiesExactlyAndRemovesLog(t *testing.T) {
	cases := map[string]string{
		"multi-line": "10:00:00 first\n10:00:01 second\n10:00:02 third\n",
		"one byte":   "x",
		"empty":      "",
		"large":      strings.Repeat("0123456789abcdef", 1024) + "tail",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, stderrBuf := captureOutput(t)
			fixClock(t, time.Date(2024, 3, 5, 14, 7, 9, 0, time.Local))
			logDir, archiveDir := t.TempDir(), t.TempDir()
			logPath := filepath.Join(logDir, "debug.log")
			require.NoError(t, os.WriteFile(logPath, []byte(content), 0644))

			l := New(Config{ArchiveDir: archiveDir})
			l.SetLogPath(logPath)

			dst, err := l.Archive()
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(archiveDir, "ERR_05032024_1407.txt"), dst)

			got, err := os.ReadFile(dst)
			require.NoError(t, err)
			assert.Equal(t, content, string(got))

			_, err = os.Stat(logPath)
			assert.True(t, errors.Is(err, fs.ErrNotExist), "live log should be removed, stat err = %v", err)
			assert.Empty(t, stderrBuf.String())
		})
	}
}

func TestArchive_AfterLogging(t *testing.T) {
	captureOutput(t)
	fixClock(t, time.Date(2023, 12, 31, 23, 59, 0, 0, time.Local))
	logPath := filepath.Join(t.TempDir(), "run.log")
	archiveDir := t.TempDir()

	l := New(Config{FilePath: logPath, ArchiveDir: archiveDir})
	l.Infof("starting\n")
	l.Fatalf("out of memory\n")
	require.True(t, l.FatalOccurred())

	dst, err := l.Archive()
	require.NoError(t, err)
	assert.Equal(t, "ERR_31122023_2359.txt", filepath.Base(dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "23:59:00 starting\n23:59:00 out of memory\n", string(got))
	assert.ErrorIs(t, l.Cleanup(), fs.ErrNotExist)
}

func TestArchive_MissingSource(t *testing.T) {
	_, stderrBuf := captureOutput(t)
	logPath := filepath.Join(t.TempDir(), "gone.log")
	archiveDir := t.TempDir()

	l := New(Config{ArchiveDir: archiveDir})
	require.NoError(t, l.EnableLogging(false, ""))
	l.SetLogPath(logPath)

	dst, err := l.Archive()
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Empty(t, dst)
	assert.Equal(t, "Unable to open "+logPath+" for error output.\n", stderrBuf.String())

	entries, err := os.ReadDir(archiveDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "a failed archive must not leave an empty report behind")
}

func TestArchive_UnwritableDestination(t *testing.T) {
	_, stderrBuf := captureOutput(t)
	fixClock(t, time.Date(2024, 3, 5, 14, 7, 9, 0, time.Local))
	logPath := filepath.Join(t.TempDir(), "keep.log")
	require.NoError(t, os.WriteFile(logPath, []byte("keep me\n"), 0644))
	archiveDir := filepath.Join(t.TempDir(), "missing")

	l := New(Config{ArchiveDir: archiveDir})
	require.NoError(t, l.EnableLogging(false, ""))
	l.SetLogPath(logPath)

	dst, err := l.Archive()
	require.Error(t, err)
	assert.Empty(t, dst)
	assert.Contains(t, stderrBuf.String(), "Unable to open "+filepath.Join(archiveDir, "ERR_05032024_1407.txt"))

	got, err := os.ReadFile(logPath)
	require.NoError(t, err, "the live log must survive a failed archive")
	assert.Equal(t, "keep me\n", string(got))
}

func TestArchive_DefaultLogger(t *testing.T) {
	captureOutput(t)
	old := Default()
	t.Cleanup(func() { std.Store(old) })
	logPath := filepath.Join(t.TempDir(), "pkg.log")
	archiveDir := t.TempDir()

	Init(Config{FilePath: logPath, DisableTimestamp: true, ArchiveDir: archiveDir})
	require.True(t, IsLogging())
	Errorf("pkg error\n")

	dst, err := Archive()
	require.NoError(t, err)
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "pkg error\n", string(got))
	assert.ErrorIs(t, Cleanup(), fs.ErrNotExist)
}

func TestArchive_SameMinuteKeepsEarlierReport(t *testing.T) {
	captureOutput(t)
	fixClock(t, time.Date(2024, 3, 5, 14, 7, 9, 0, time.Local))
	logDir, archiveDir := t.TempDir(), t.TempDir()
	logPath := filepath.Join(logDir, "debug.log")

	l := New(Config{ArchiveDir: archiveDir})
	l.SetLogPath(logPath)

	var reports []string
	for _, content := range []string{"first run\n", "second run\n", "third run\n"} {
		require.NoError(t, os.WriteFile(logPath, []byte(content), 0644))
		dst, err := l.Archive()
		require.NoError(t, err)
		reports = append(reports, dst)
	}

	assert.Equal(t, []string{
		filepath.Join(archiveDir, "ERR_05032024_1407.txt"),
		filepath.Join(archiveDir, "ERR_05032024_1407_2.txt"),
		filepath.Join(archiveDir, "ERR_05032024_1407_3.txt"),
	}, reports)
	for i, want := range []string{"first run\n", "second run\n", "third run\n"} {
		got, err := os.ReadFile(reports[i])
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	}
}

func TestArchive_CopyFailureRemovesReport(t *testing.T) {
	_, stderrBuf := captureOutput(t)
	archiveDir := t.TempDir()
	// A directory opens for reading but fails on read, so the copy step errors.
	logPath := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(logPath, "entry"), []byte("x"), 0644))
	info, err := os.Stat(logPath)
	require.NoError(t, err)
	if info.Size() == 0 {
		t.Skip("filesystem reports zero-sized directories")
	}

	l := New(Config{ArchiveDir: archiveDir})
	require.NoError(t, l.EnableLogging(false, ""))
	l.SetLogPath(logPath)

	dst, err := l.Archive()
	require.Error(t, err)
	assert.Empty(t, dst)
	assert.Contains(t, stderrBuf.String(), "Unable to copy "+logPath)

	entries, err := os.ReadDir(archiveDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "a failed copy must not leave a truncated report behind")
}
