package detect

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/micromdm/plist"

	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/platform"
	"github.com/thoreinstein/zappi/internal/store"
)

// DefaultApplicationsDir is the primary macOS applications directory.
const DefaultApplicationsDir = "/Applications"

const bundleSuffix = ".app"

// bundleInfo is the subset of Info.plist read for versions.
type bundleInfo struct {
	CFBundleShortVersionString string
	CFBundleVersion            string
}

// MacOS lists application bundles.
type MacOS struct {
	// AppsDir is the directory scanned for *.app bundles.
	AppsDir string

	// MaxResults caps the result after sorting. Zero means no cap.
	MaxResults int
}

// Platform implements Strategy.
func (MacOS) Platform() platform.Tag { return platform.Darwin }

// Enumerate implements Strategy.
func (m MacOS) Enumerate(ctx context.Context) Result {
	dir := m.AppsDir
	if dir == "" {
		dir = DefaultApplicationsDir
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Result{Diagnostic: errors.Wrapf(err, "listing %s", dir)}
	}

	var records []store.Record
	for _, e := range entries {
		if ctx.Err() != nil {
			return Result{Records: records, Diagnostic: ctx.Err()}
		}
		name := e.Name()
		if !strings.HasSuffix(name, bundleSuffix) || strings.HasPrefix(name, ".") {
			continue
		}
		records = append(records, store.Record{
			Name:      strings.TrimSuffix(name, bundleSuffix),
			Installed: true,
			Platform:  platform.Darwin,
			Version:   bundleVersion(filepath.Join(dir, name)),
			Source:    SourceApplications,
		})
	}

	slices.SortFunc(records, func(a, b store.Record) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	if m.MaxResults > 0 && len(records) > m.MaxResults {
		records = records[:m.MaxResults]
	}
	return Result{Records: records}
}

// bundleVersion reads the marketing version from a bundle's Info.plist.
// Returns "" when the plist is missing or unreadable.
func bundleVersion(bundle string) string {
	data, err := os.ReadFile(filepath.Join(bundle, "Contents", "Info.plist"))
	if err != nil {
		return ""
	}

	var info bundleInfo
	if bytes.HasPrefix(data, []byte("bplist00")) {
		err = plist.NewBinaryDecoder(bytes.NewReader(data)).Decode(&info)
	} else {
		err = plist.NewXMLDecoder(bytes.NewReader(data)).Decode(&info)
	}
	if err != nil {
		return ""
	}

	if info.CFBundleShortVersionString != "" {
		return info.CFBundleShortVersionString
	}
	return info.CFBundleVersion
}
