//go:build windows

package detect

import (
	"context"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/sys/windows/registry"

	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/store"
)

const (
	regUninstallRoot      = `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`
	regUninstallRootWow64 = `SOFTWARE\Wow6432Node\Microsoft\Windows\CurrentVersion\Uninstall`
	regUninstallUser      = `Software\Microsoft\Windows\CurrentVersion\Uninstall`
)

// readUninstallRegistry lists DisplayName/DisplayVersion from the
// per-machine uninstall keys (native and 32-bit) and every loaded user hive.
func readUninstallRegistry(ctx context.Context) ([]store.Record, error) {
	var records []store.Record
	var diag error

	for _, root := range []string{regUninstallRoot, regUninstallRootWow64} {
		recs, err := uninstallEntries(registry.LOCAL_MACHINE, root)
		if err != nil {
			diag = multierr.Append(diag, errors.Wrapf(err, `HKLM\%s`, root))
		}
		records = append(records, recs...)
	}

	hives, err := subkeys(registry.USERS, "")
	if err != nil {
		return records, multierr.Append(diag, errors.Wrap(err, "enumerating user hives"))
	}
	for _, hive := range hives {
		if ctx.Err() != nil {
			return records, multierr.Append(diag, ctx.Err())
		}
		// Not every hive has an uninstall key.
		recs, _ := uninstallEntries(registry.USERS, hive+`\`+regUninstallUser)
		records = append(records, recs...)
	}

	if len(records) == 0 && diag == nil {
		return nil, errors.ErrNoSources
	}
	return records, diag
}

func uninstallEntries(root registry.Key, path string) ([]store.Record, error) {
	names, err := subkeys(root, path)
	if err != nil {
		return nil, err
	}

	var records []store.Record
	for _, name := range names {
		k, err := registry.OpenKey(root, path+`\`+name, registry.QUERY_VALUE)
		if err != nil {
			continue
		}
		display, _, err := k.GetStringValue("DisplayName")
		if err != nil || strings.TrimSpace(display) == "" {
			k.Close()
			continue
		}
		// Components hidden from Programs and Features.
		if v, _, err := k.GetIntegerValue("SystemComponent"); err == nil && v == 1 {
			k.Close()
			continue
		}
		version, _, _ := k.GetStringValue("DisplayVersion")
		k.Close()

		records = append(records, store.Record{
			Name:    strings.TrimSpace(display),
			Version: version,
			Source:  SourceRegistry,
		})
	}
	return records, nil
}

func subkeys(root registry.Key, path string) ([]string, error) {
	k, err := registry.OpenKey(root, path, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil, err
	}
	defer k.Close()
	return k.ReadSubKeyNames(0)
}
