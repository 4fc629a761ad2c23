package logger

import (
	"io"
	"os"
)

func shouldUseSyslogPrefix() bool {
	return os.Getenv("JOURNAL_STREAM") != ""
}

// syslogPrefixForSeverity maps a write path to its journald priority.
func syslogPrefixForSeverity(sev severity) string {
	switch sev {
	case sevInfo:
		return "<6>"
	case sevError:
		return "<3>"
	case sevFatal:
		return "<2>"
	default:
		return ""
	}
}

// syslogPrefixWriter prepends the syslog priority prefix to each line.
// Only console output goes through it; log files stay unprefixed.
type syslogPrefixWriter struct {
	w      io.Writer
	prefix string
}

func (s *syslogPrefixWriter) Write(data []byte) (int, error) {
	if s.prefix == "" {
		return s.w.Write(data)
	}
	if len(data) == 0 {
		return 0, nil
	}
	buf := make([]byte, 0, len(data)+len(s.prefix))
	buf = append(buf, s.prefix...)
	for i, b := range data {
		buf = append(buf, b)
		if b == '\n' && i != len(data)-1 {
			buf = append(buf, s.prefix...)
		}
	}
	if _, err := s.w.Write(buf); err != nil {
		return 0, err
	}
	return len(data), nil
}
