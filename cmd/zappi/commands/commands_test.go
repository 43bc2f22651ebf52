package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/zappi/internal/editor"
	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/install"
	"github.com/thoreinstein/zappi/internal/store"
)

func savedNames(t *testing.T, path string) []string {
	t.Helper()
	doc, err := store.New(path).Load()
	require.NoError(t, err)
	return store.Names(doc.Apps)
}

func TestSaveAndList(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "save", "Firefox", "Slack")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 2 app(s)")
	assert.Equal(t, []string{"Firefox", "Slack"}, savedNames(t, env.store))

	out, err = env.run(t, "", "list", "--json")
	require.NoError(t, err)
	var got []store.Record
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"Firefox", "Slack"}, store.Names(got))
	assert.True(t, got[0].Installed)

	out, err = env.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Slack")
}

func TestAddRemove(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "add", "Zed", "--platform", "macos", "--version", "0.150", "--not-installed")
	require.NoError(t, err)

	doc, err := store.New(env.store).Load()
	require.NoError(t, err)
	require.Len(t, doc.Apps, 1)
	assert.Equal(t, "darwin", string(doc.Apps[0].Platform))
	assert.Equal(t, "0.150", doc.Apps[0].Version)
	assert.False(t, doc.Apps[0].Installed)

	out, err := env.run(t, "", "remove", "Missing")
	require.NoError(t, err)
	assert.Contains(t, out, "not in the saved list")

	out, err = env.run(t, "", "remove", "Zed")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed Zed")
	assert.Empty(t, savedNames(t, env.store))
}

func TestAdd_InvalidPlatform(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "add", "Zed", "--platform", "plan9")

	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.CodeOf(err))
}

func TestClear(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "", "save", "Firefox")
	require.NoError(t, err)

	out, err := env.run(t, "n\n", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted")
	assert.Equal(t, []string{"Firefox"}, savedNames(t, env.store))

	out, err = env.run(t, "", "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared")
	assert.Empty(t, savedNames(t, env.store))

	// clear snapshots the previous file
	out, err = env.run(t, "", "backup", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "clear")
}

func TestExportImport(t *testing.T) {
	for _, ext := range []string{".json", ".yaml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			env := newTestEnv(t)
			file := filepath.Join(env.dir, "export"+ext)

			_, err := env.run(t, "", "save", "Firefox", "Slack")
			require.NoError(t, err)
			_, err = env.run(t, "", "export", file)
			require.NoError(t, err)
			_, err = env.run(t, "", "save", "Zoom")
			require.NoError(t, err)

			_, err = env.run(t, "", "import", file)
			require.NoError(t, err)
			assert.Equal(t, []string{"Zoom", "Firefox", "Slack"}, savedNames(t, env.store))

			_, err = env.run(t, "", "import", file, "--replace")
			require.NoError(t, err)
			assert.Equal(t, []string{"Firefox", "Slack"}, savedNames(t, env.store))
		})
	}
}

func TestExport_StoreFileRejected(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "", "save", "Firefox", "Slack")
	require.NoError(t, err)

	_, err = env.run(t, "", "export", env.store)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrExportToStore))
	assert.Equal(t, errors.ExitUser, errors.CodeOf(err))
	assert.Equal(t, []string{"Firefox", "Slack"}, savedNames(t, env.store))
}

func TestSave_ReportsStoredCount(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "save", "Firefox", "Slack", "Firefox")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 2 app(s)")
	assert.Equal(t, []string{"Firefox", "Slack"}, savedNames(t, env.store))
}

func TestExport_UnknownFormat(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "export", filepath.Join(env.dir, "apps.csv"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownFormat))
	assert.Equal(t, errors.ExitUser, errors.CodeOf(err))
}

func TestInstall_Simulated(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "", "save", "app1", "app2", "app3")
	require.NoError(t, err)

	out, err := env.run(t, "", "install", "--json", "--workers", "2")
	require.NoError(t, err)

	var res install.BatchResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 3, res.Installed)
	require.Len(t, res.Results, 3)
	for i, name := range []string{"app1", "app2", "app3"} {
		assert.Equal(t, name, res.Results[i].App)
	}

	out, err = env.run(t, "", "install")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ app1")
	assert.Contains(t, out, "Installation completed: 3 succeeded, 0 failed")
}

func TestInstall_Empty(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "install")

	require.NoError(t, err)
	assert.Contains(t, out, install.NoAppsMessage)
}

func TestScan_JSONNeverEmpty(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("ZAPPI_DETECT_TIMEOUT", "2s")

	out, err := env.run(t, "", "scan", "--json")
	require.NoError(t, err)

	var got []store.Record
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got)
}

func TestScan_SaveWithSelection(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("ZAPPI_DETECT_TIMEOUT", "2s")

	var offered []store.Record
	orig := newSelector
	newSelector = func() selector {
		return selectFunc(func(records []store.Record) ([]store.Record, error) {
			offered = records
			return records[:1], nil
		})
	}
	t.Cleanup(func() { newSelector = orig })

	_, err := env.run(t, "", "scan", "--select", "--save")
	require.NoError(t, err)

	require.NotEmpty(t, offered)
	assert.Equal(t, []string{offered[0].Name}, savedNames(t, env.store))
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "", "save", "Firefox")
	require.NoError(t, err)

	out, err := env.run(t, "", "stats", "--json")
	require.NoError(t, err)

	var st store.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, 1, st.TotalApps)
	assert.Equal(t, env.store, st.Path)
	assert.Positive(t, st.Size)
}

func TestConfigShow(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "config", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "# config file:")
	assert.Contains(t, out, "path: "+env.store)
	assert.Contains(t, out, "backend: simulated")
}

func TestConfigGet(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "config", "get", "install.backend")
	require.NoError(t, err)
	assert.Equal(t, "simulated", strings.TrimSpace(out))

	_, err = env.run(t, "", "config", "get", "no.such.key")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestInvalidConfigRejected(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("ZAPPI_INSTALL_WORKERS", "0")

	_, err := env.run(t, "", "list")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
	var exitErr *errors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, "Run: zappi doctor", exitErr.Suggestion)
}

func TestErrorLogReceivesWarnings(t *testing.T) {
	env := newTestEnv(t)
	// an unreadable store degrades to empty and logs a warning
	require.NoError(t, os.WriteFile(env.store, []byte("{not json"), 0o600))

	_, err := env.run(t, "", "list")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(env.dir, "zappi-error.log"))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestConfigEdit_CreatesFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses the POSIX true command as editor")
	}
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "conf", "config.yaml")

	orig := newLauncher
	newLauncher = func(*cobra.Command) editor.Launcher {
		return editor.Launcher{
			Getenv: func(k string) string {
				if k == "EDITOR" {
					return "true"
				}
				return ""
			},
		}
	}
	t.Cleanup(func() { newLauncher = orig })

	out, err := env.run(t, "", "--config", path, "config", "edit")
	require.NoError(t, err)

	assert.Contains(t, out, "Created "+path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: simulated")
}
