// Package editor launches the user's preferred text editor.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/zappi/internal/errors"
)

// Launcher opens files in an editor. The zero value uses the process
// environment and PATH.
type Launcher struct {
	Getenv   func(string) string
	LookPath func(string) (string, error)
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
}

// Command resolves the editor and returns the command that opens path.
// $EDITOR and $VISUAL may carry arguments, e.g. "code --wait".
func (l Launcher) Command(ctx context.Context, path string) *exec.Cmd {
	fields := strings.Fields(l.detect())
	args := append(fields[1:], path)

	c := exec.CommandContext(ctx, fields[0], args...)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	if l.Stdin != nil {
		c.Stdin = l.Stdin
	}
	if l.Stdout != nil {
		c.Stdout = l.Stdout
	}
	if l.Stderr != nil {
		c.Stderr = l.Stderr
	}
	return c
}

// Open runs the editor on path and waits for it to exit.
func (l Launcher) Open(ctx context.Context, path string) error {
	if err := l.Command(ctx, path).Run(); err != nil {
		return errors.Wrapf(err, "running editor on %s", path)
	}
	return nil
}

// detect follows $EDITOR, $VISUAL, nano, then vi (notepad on Windows hosts
// where neither is on PATH).
func (l Launcher) detect() string {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	lookPath := l.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	for _, key := range []string{"EDITOR", "VISUAL"} {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
	}
	for _, bin := range []string{"nano", "vi"} {
		if _, err := lookPath(bin); err == nil {
			return bin
		}
	}
	return "notepad"
}
