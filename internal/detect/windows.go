package detect

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/multierr"

	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/platform"
	"github.com/thoreinstein/zappi/internal/store"
)

// skippedProgramDirs are program-root children that are not applications.
var skippedProgramDirs = map[string]bool{
	"common files":             true,
	"internet explorer":        true,
	"modifiablewindowsapps":    true,
	"uninstall information":    true,
	"windowsapps":              true,
	"windows defender":         true,
	"windows nt":               true,
	"microsoft.net":            true,
	"reference assemblies":     true,
	"windowspowershell":        true,
	"msbuild":                  true,
	"windows mail":             true,
	"windows media player":     true,
	"windows photo viewer":     true,
	"windows portable devices": true,
	"windows security":         true,
	"windows sidebar":          true,
}

// Windows merges three enumeration sources into one set keyed by exact name.
type Windows struct {
	// Registry lists uninstall entries. Defaults to the system registry.
	Registry func(ctx context.Context) ([]store.Record, error)

	// ProgramDirs are install roots whose subdirectories are applications.
	ProgramDirs []string

	// StartMenuDirs are walked recursively for *.lnk shortcuts.
	StartMenuDirs []string
}

// NewWindows returns a Windows strategy rooted at the directories named by
// the standard environment variables.
func NewWindows() Windows {
	env := func(key string, elem ...string) string {
		v := os.Getenv(key)
		if v == "" {
			return ""
		}
		return filepath.Join(append([]string{v}, elem...)...)
	}
	nonEmpty := func(dirs ...string) []string {
		return slices.DeleteFunc(dirs, func(d string) bool { return d == "" })
	}

	startMenu := []string{"Microsoft", "Windows", "Start Menu", "Programs"}
	return Windows{
		Registry: readUninstallRegistry,
		ProgramDirs: nonEmpty(
			env("ProgramFiles"),
			env("ProgramFiles(x86)"),
			env("LOCALAPPDATA", "Programs"),
		),
		StartMenuDirs: nonEmpty(
			env("ProgramData", startMenu...),
			env("APPDATA", startMenu...),
		),
	}
}

// Platform implements Strategy.
func (Windows) Platform() platform.Tag { return platform.Windows }

// Enumerate implements Strategy. Each source fails independently; the first
// source to report a name keeps it.
func (w Windows) Enumerate(ctx context.Context) Result {
	var diag error
	seen := make(map[string]bool)
	var records []store.Record

	add := func(recs []store.Record) {
		for _, r := range recs {
			if r.Name == "" || seen[r.Name] {
				continue
			}
			seen[r.Name] = true
			r.Installed = true
			r.Platform = platform.Windows
			records = append(records, r)
		}
	}

	if w.Registry != nil {
		recs, err := w.Registry(ctx)
		if err != nil {
			diag = multierr.Append(diag, errors.Wrap(err, "registry uninstall keys"))
		}
		add(recs)
	}

	recs, err := programDirEntries(w.ProgramDirs)
	diag = multierr.Append(diag, err)
	add(recs)

	recs, err = startMenuEntries(ctx, w.StartMenuDirs)
	diag = multierr.Append(diag, err)
	add(recs)

	slices.SortFunc(records, func(a, b store.Record) int {
		return strings.Compare(a.Name, b.Name)
	})
	return Result{Records: records, Diagnostic: diag}
}

func programDirEntries(roots []string) ([]store.Record, error) {
	var records []store.Record
	var diag error
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			diag = multierr.Append(diag, errors.Wrapf(err, "listing %s", root))
			continue
		}
		for _, e := range entries {
			if !e.IsDir() || skippedProgramDirs[strings.ToLower(e.Name())] {
				continue
			}
			records = append(records, store.Record{Name: e.Name(), Source: SourceProgramFiles})
		}
	}
	return records, diag
}

func startMenuEntries(ctx context.Context, roots []string) ([]store.Record, error) {
	var records []store.Record
	var diag error
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					return err
				}
				// unreadable subfolder
				return fs.SkipDir
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".lnk") {
				return nil
			}
			name := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
			if strings.Contains(strings.ToLower(name), "uninstall") {
				return nil
			}
			records = append(records, store.Record{Name: name, Source: SourceStartMenu})
			return nil
		})
		if err != nil {
			diag = multierr.Append(diag, errors.Wrapf(err, "walking %s", root))
		}
	}
	return records, diag
}
