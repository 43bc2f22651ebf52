package detect

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/zappi/internal/platform"
	"github.com/thoreinstein/zappi/internal/store"
)

const xmlInfoPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleName</key>
	<string>Slack</string>
	<key>CFBundleShortVersionString</key>
	<string>4.41.105</string>
	<key>CFBundleVersion</key>
	<string>441105</string>
</dict>
</plist>
`

func TestMacOS_Enumerate(t *testing.T) {
	dir := t.TempDir()
	mkdir(t, filepath.Join(dir, "Safari.app"))
	writeFile(t, filepath.Join(dir, "Slack.app", "Contents", "Info.plist"), xmlInfoPlist)
	writeFile(t, filepath.Join(dir, "Broken.app", "Contents", "Info.plist"), "not a plist")
	mkdir(t, filepath.Join(dir, "Utilities"))
	writeFile(t, filepath.Join(dir, ".localized"), "")

	res := MacOS{AppsDir: dir}.Enumerate(t.Context())

	require.NoError(t, res.Diagnostic)
	assert.Equal(t, []string{"Broken", "Safari", "Slack"}, store.Names(res.Records))
	for _, r := range res.Records {
		assert.True(t, r.Installed)
		assert.Equal(t, platform.Darwin, r.Platform)
		assert.Equal(t, SourceApplications, r.Source)
	}
	assert.Empty(t, res.Records[0].Version, "unreadable plist leaves version empty")
	assert.Equal(t, "4.41.105", res.Records[2].Version)
}

func TestMacOS_MaxResults(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"A.app", "B.app", "C.app"} {
		mkdir(t, filepath.Join(dir, name))
	}

	res := MacOS{AppsDir: dir, MaxResults: 2}.Enumerate(t.Context())

	assert.Equal(t, []string{"A", "B"}, store.Names(res.Records))
}

func TestMacOS_MissingDirectory(t *testing.T) {
	res := MacOS{AppsDir: filepath.Join(t.TempDir(), "nope")}.Enumerate(t.Context())

	assert.Empty(t, res.Records)
	assert.Error(t, res.Diagnostic)
}

func TestBundleVersion_FallsBackToBundleVersion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "X.app", "Contents", "Info.plist"), `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0"><dict><key>CFBundleVersion</key><string>7</string></dict></plist>
`)

	assert.Equal(t, "7", bundleVersion(filepath.Join(dir, "X.app")))
}
