// Package logging provides structured logging for the zappi CLI using slog.
//
// The package supports text and JSON output formats, configurable log
// levels, a colorized TTY handler, fan-out to several sinks, and the
// append-only error log that records every detection or persistence failure.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("scan complete", "apps", 42)
//
// # Error Log
//
// [OpenErrorLog] returns a handler that appends a timestamped line for every
// record at Warn or above. Combine it with the console handler:
//
//	elog, err := logging.OpenErrorLog(logging.DefaultErrorLogFile)
//	if err == nil {
//		defer elog.Close()
//		logger = slog.New(logging.NewMultiHandler(console, elog))
//	}
//
// # Testing
//
// Use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//	}
package logging
