package detect

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/ini.v1"

	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/paths"
	"github.com/thoreinstein/zappi/internal/platform"
	"github.com/thoreinstein/zappi/internal/runner"
	"github.com/thoreinstein/zappi/internal/store"
)

const desktopSuffix = ".desktop"

// PackageLister is one package-manager listing command.
type PackageLister struct {
	Source string
	Name   string
	Args   []string
}

// DefaultPackageListers are tried in order when no descriptors are found.
var DefaultPackageListers = []PackageLister{
	{Source: SourceDpkg, Name: "dpkg-query", Args: []string{"-W", "-f=${Package}\n"}},
	{Source: SourceRPM, Name: "rpm", Args: []string{"-qa", "--qf", "%{NAME}\n"}},
	{Source: SourcePacman, Name: "pacman", Args: []string{"-Qq"}},
}

// Linux reads .desktop descriptors, then falls back to package-manager
// listings.
type Linux struct {
	// DesktopDirs are scanned in order; a later directory overrides an
	// earlier one for the same descriptor name, so per-user dirs go last.
	DesktopDirs []string

	// Runner executes package-manager listings. Nil skips that tier.
	Runner runner.Runner

	// Listers defaults to DefaultPackageListers.
	Listers []PackageLister
}

// DefaultDesktopDirs returns system, flatpak and per-user descriptor
// directories in override order.
func DefaultDesktopDirs() []string {
	system := paths.SystemApplicationsDirs()
	slices.Reverse(system)

	dirs := []string{
		"/usr/share/applications",
		"/usr/local/share/applications",
		"/var/lib/flatpak/exports/share/applications",
	}
	for _, d := range system {
		if !slices.Contains(dirs, d) {
			dirs = append(dirs, d)
		}
	}
	home := paths.Home()
	if home != "" {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "flatpak", "exports", "share", "applications"))
	}
	return append(dirs, paths.UserApplicationsDir())
}

// NewLinux returns a Linux strategy over the default directories.
func NewLinux(r runner.Runner) Linux {
	return Linux{DesktopDirs: DefaultDesktopDirs(), Runner: r}
}

// Platform implements Strategy.
func (Linux) Platform() platform.Tag { return platform.Linux }

// Enumerate implements Strategy.
func (l Linux) Enumerate(ctx context.Context) Result {
	records, diag := desktopEntries(l.DesktopDirs)
	if len(records) > 0 {
		return Result{Records: records, Diagnostic: diag}
	}

	if l.Runner == nil {
		return Result{Diagnostic: diag}
	}
	listers := l.Listers
	if listers == nil {
		listers = DefaultPackageListers
	}
	for _, pl := range listers {
		if ctx.Err() != nil {
			return Result{Diagnostic: multierr.Append(diag, ctx.Err())}
		}
		recs, err := l.listPackages(ctx, pl)
		if err != nil {
			diag = multierr.Append(diag, err)
			continue
		}
		return Result{Records: recs, Diagnostic: diag}
	}
	return Result{Diagnostic: diag}
}

func (l Linux) listPackages(ctx context.Context, pl PackageLister) ([]store.Record, error) {
	out, err := l.Runner.Run(ctx, pl.Name, pl.Args...)
	if err != nil {
		return nil, errors.Wrapf(err, "%s listing", pl.Source)
	}

	lines := runner.Lines(out)
	if len(lines) == 0 {
		return nil, errors.Wrapf(errors.ErrNoSources, "%s listing was empty", pl.Source)
	}

	records := make([]store.Record, 0, len(lines))
	for _, name := range lines {
		records = append(records, store.Record{
			Name:      name,
			Installed: true,
			Platform:  platform.Linux,
			Source:    pl.Source,
		})
	}
	return records, nil
}

// desktopEntries collects visible application descriptors. A missing
// directory is normal and not reported.
func desktopEntries(dirs []string) ([]store.Record, error) {
	var diag error
	visible := make(map[string]bool)

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				diag = multierr.Append(diag, errors.Wrapf(err, "listing %s", dir))
			}
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), desktopSuffix) {
				continue
			}
			name := strings.TrimSuffix(e.Name(), desktopSuffix)
			show, err := showDesktopEntry(filepath.Join(dir, e.Name()))
			if err != nil {
				diag = multierr.Append(diag, err)
				continue
			}
			visible[name] = show
		}
	}

	var records []store.Record
	for name, show := range visible {
		if !show {
			continue
		}
		records = append(records, store.Record{
			Name:      name,
			Installed: true,
			Platform:  platform.Linux,
			Source:    SourceDesktop,
		})
	}
	slices.SortFunc(records, func(a, b store.Record) int {
		return strings.Compare(a.Name, b.Name)
	})
	return records, diag
}

// showDesktopEntry reports whether a descriptor is a launchable application
// that menus display.
func showDesktopEntry(path string) (bool, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return false, errors.Wrapf(err, "parsing %s", path)
	}

	entry, err := cfg.GetSection("Desktop Entry")
	if err != nil {
		return false, nil
	}
	if t := entry.Key("Type").String(); t != "" && t != "Application" {
		return false, nil
	}
	if entry.Key("NoDisplay").MustBool(false) || entry.Key("Hidden").MustBool(false) {
		return false, nil
	}
	return true, nil
}
