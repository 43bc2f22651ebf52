package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thoreinstein/zappi/cmd/zappi/commands/flags"
	"github.com/thoreinstein/zappi/internal/store"
)

// testEnv isolates a command run: working directory, store, backups and
// error log all live under a temp dir and simulated installs are instant.
type testEnv struct {
	dir   string
	store string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("ZAPPI_BACKUP_DIR", filepath.Join(dir, "backups"))
	t.Setenv("ZAPPI_LOG_ERROR_FILE", filepath.Join(dir, "zappi-error.log"))
	t.Setenv("ZAPPI_INSTALL_SIMULATE_SUCCESS_RATE", "1")
	t.Setenv("ZAPPI_INSTALL_SIMULATE_MIN_DELAY", "0s")
	t.Setenv("ZAPPI_INSTALL_SIMULATE_MAX_DELAY", "0s")

	orig := flags.Config()
	t.Cleanup(func() { flags.SetConfig(orig) })

	return &testEnv{dir: dir, store: filepath.Join(dir, "apps.json")}
}

// run executes the root command with args against the env's store and
// returns stdout.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--store", e.store}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
		closeErrorLog()
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default, since cobra keeps values
// between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type selectFunc func([]store.Record) ([]store.Record, error)

func (f selectFunc) SelectRecords(records []store.Record) ([]store.Record, error) {
	return f(records)
}
