package detect

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/logging"
	"github.com/thoreinstein/zappi/internal/platform"
	"github.com/thoreinstein/zappi/internal/runner/mocks"
	"github.com/thoreinstein/zappi/internal/store"
)

type stubStrategy struct {
	tag    platform.Tag
	result Result
	panics bool
}

func (s stubStrategy) Platform() platform.Tag { return s.tag }

func (s stubStrategy) Enumerate(context.Context) Result {
	if s.panics {
		panic("boom")
	}
	return s.result
}

func TestCatalog(t *testing.T) {
	tests := []struct {
		tag      platform.Tag
		wantLen  int
		wantTag  platform.Tag
		wantName string
	}{
		{tag: platform.Darwin, wantLen: 10, wantTag: platform.Darwin, wantName: "Visual Studio Code"},
		{tag: platform.Windows, wantLen: 10, wantTag: platform.Windows, wantName: "Visual Studio Code"},
		{tag: platform.Linux, wantLen: 10, wantTag: platform.Linux, wantName: "firefox"},
		{tag: platform.Unknown, wantLen: 3, wantTag: platform.Unknown, wantName: "Visual Studio Code"},
		{tag: "freebsd", wantLen: 3, wantTag: platform.Unknown, wantName: "Visual Studio Code"},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			got := Catalog(tt.tag)

			require.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantName, got[0].Name)
			for _, r := range got {
				assert.Equal(t, tt.wantTag, r.Platform)
				assert.Equal(t, SourceCatalog, r.Source)
				assert.NoError(t, r.Validate())
			}
		})
	}
}

func TestCatalog_ReturnsFreshCopy(t *testing.T) {
	first := Catalog(platform.Darwin)
	first[0].Name = "mutated"

	assert.Equal(t, "Visual Studio Code", Catalog(platform.Darwin)[0].Name)
}

func TestDetector_UsesRecordsWhenPresent(t *testing.T) {
	want := []store.Record{{Name: "Slack", Installed: true, Platform: platform.Linux}}
	d := NewDetector(stubStrategy{tag: platform.Linux, result: Result{Records: want}}, logging.ForTest(t))

	assert.Equal(t, want, d.Detect(t.Context()))
}

func TestDetector_EmptyResultFallsBackToCatalog(t *testing.T) {
	d := NewDetector(stubStrategy{tag: platform.Windows}, logging.ForTest(t))

	got := d.Detect(t.Context())
	assert.Equal(t, Catalog(platform.Windows), got)
}

func TestDetector_LogsEveryDiagnostic(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	diag := multierr.Combine(errors.New("registry denied"), errors.New("start menu missing"))
	d := NewDetector(stubStrategy{tag: platform.Windows, result: Result{
		Records:    []store.Record{{Name: "Git"}},
		Diagnostic: diag,
	}}, logger)

	got := d.Detect(t.Context())

	assert.Equal(t, []string{"Git"}, store.Names(got))
	assert.Contains(t, buf.String(), "registry denied")
	assert.Contains(t, buf.String(), "start menu missing")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("level=WARN")))
}

func TestDetector_RecoversPanics(t *testing.T) {
	d := NewDetector(stubStrategy{tag: platform.Darwin, panics: true}, logging.ForTest(t))

	assert.Equal(t, Catalog(platform.Darwin), d.Detect(t.Context()))
}

func TestDetector_NilStrategyIsUnknown(t *testing.T) {
	d := NewDetector(nil, nil)

	assert.Equal(t, platform.Unknown, d.Platform())
	assert.Len(t, d.Detect(t.Context()), 3)
}

func TestUnknown_ReportsUnsupported(t *testing.T) {
	res := Unknown{}.Enumerate(t.Context())

	assert.Empty(t, res.Records)
	assert.True(t, errors.Is(res.Diagnostic, errors.ErrUnsupportedPlatform))
}

// Every strategy, with every source forced to fail, still yields a non-empty list.
func TestDetect_TotalityWhenAllSourcesFail(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	failing := mocks.NewMockRunner(t)
	for _, pl := range DefaultPackageListers {
		expectLister(failing, pl, "", errors.New("not found")).Once()
	}

	strategies := []Strategy{
		MacOS{AppsDir: missing},
		Windows{
			Registry:      func(context.Context) ([]store.Record, error) { return nil, errors.New("denied") },
			ProgramDirs:   []string{missing},
			StartMenuDirs: []string{missing},
		},
		Linux{DesktopDirs: []string{missing}, Runner: failing},
		Unknown{},
	}

	for _, s := range strategies {
		t.Run(string(s.Platform()), func(t *testing.T) {
			got := NewDetector(s, logging.ForTest(t)).Detect(t.Context())
			assert.NotEmpty(t, got)
		})
	}
}

func TestForPlatform(t *testing.T) {
	tests := []struct {
		tag  platform.Tag
		want platform.Tag
	}{
		{platform.Darwin, platform.Darwin},
		{platform.Windows, platform.Windows},
		{platform.Linux, platform.Linux},
		{platform.Unknown, platform.Unknown},
		{"plan9", platform.Unknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			s := ForPlatform(tt.tag, Options{})
			assert.Equal(t, tt.want, s.Platform())
		})
	}
}

func TestForPlatform_MacOSOptions(t *testing.T) {
	s := ForPlatform(platform.Darwin, Options{AppsDir: "/tmp/apps", MaxResults: 20})

	m, ok := s.(MacOS)
	require.True(t, ok)
	assert.Equal(t, "/tmp/apps", m.AppsDir)
	assert.Equal(t, 20, m.MaxResults)
}
