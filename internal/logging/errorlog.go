package logging

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thoreinstein/zappi/internal/errors"
)

// DefaultErrorLogFile is the error log name used when the configuration does
// not override it. Relative paths resolve against the working directory.
const DefaultErrorLogFile = "zappi-error.log"

// ErrorLog is an append-only, line-oriented diagnostic sink. Each record at
// Warn or above becomes one timestamped line.
type ErrorLog struct {
	slog.Handler
	f *os.File
}

// OpenErrorLog opens (creating if needed) the error log at path for appending.
func OpenErrorLog(path string) (*ErrorLog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "creating error log directory")
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "opening error log %s", path)
	}
	return &ErrorLog{
		Handler: slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelWarn}),
		f:       f,
	}, nil
}

// Path returns the file backing the log.
func (l *ErrorLog) Path() string {
	return l.f.Name()
}

// Close closes the underlying file.
func (l *ErrorLog) Close() error {
	return l.f.Close()
}
