// Package runner executes external commands with a bounded timeout.
//
// Detection tiers and native install backends both shell out to package
// managers; they depend on the [Runner] interface so tests can substitute a
// mock and never touch the real system.
package runner

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/logging"
)

// DefaultTimeout bounds a single command when the caller does not choose one.
const DefaultTimeout = 2 * time.Minute

// maxErrOutput caps how much stderr is copied into an error message.
const maxErrOutput = 512

// Runner runs external commands.
type Runner interface {
	// Run executes name with args and returns its standard output.
	// A non-zero exit, a timeout, or a missing binary is an error.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)

	// LookPath reports where name would be found on PATH.
	LookPath(name string) (string, error)
}

// Exec is the Runner backed by os/exec.
type Exec struct {
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures an Exec runner.
type Option func(*Exec)

// WithTimeout sets the per-command timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(e *Exec) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger sets the logger used for command tracing.
func WithLogger(l *slog.Logger) Option {
	return func(e *Exec) {
		if l != nil {
			e.logger = l
		}
	}
}

// New returns an Exec runner.
func New(opts ...Option) *Exec {
	e := &Exec{
		timeout: DefaultTimeout,
		logger:  logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run implements Runner.
func (e *Exec) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmdline := strings.TrimSpace(name + " " + strings.Join(args, " "))
	e.logger.Log(ctx, logging.LevelTrace, "running command", "cmd", cmdline, "timeout", e.timeout)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	e.logger.Debug("command finished", "cmd", cmdline, "duration", time.Since(start), "err", err)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return stdout.Bytes(), errors.Wrapf(ctx.Err(), "%s timed out after %s", cmdline, e.timeout)
		}
		if msg := trimOutput(stderr.String()); msg != "" {
			return stdout.Bytes(), errors.Wrapf(err, "%s failed (output: %s)", cmdline, msg)
		}
		return stdout.Bytes(), errors.Wrapf(err, "%s failed", cmdline)
	}
	return stdout.Bytes(), nil
}

// LookPath implements Runner.
func (e *Exec) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func trimOutput(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxErrOutput {
		s = s[:maxErrOutput] + "..."
	}
	return s
}

// Lines splits command output into trimmed, non-empty lines.
func Lines(out []byte) []string {
	raw := strings.Split(string(out), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
