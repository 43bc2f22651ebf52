package cli

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/install"
	"github.com/thoreinstein/zappi/internal/platform"
	"github.com/thoreinstein/zappi/internal/store"
)

func TestResolvePlatform(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    platform.Tag
		wantErr bool
	}{
		{name: "macos alias", input: "macos", want: platform.Darwin},
		{name: "windows alias", input: "Windows", want: platform.Windows},
		{name: "stored tag", input: "win32", want: platform.Windows},
		{name: "linux", input: "linux", want: platform.Linux},
		{name: "unsupported", input: "plan9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePlatform(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownPlatform) {
					t.Fatalf("ResolvePlatform(%q) error = %v, want ErrUnknownPlatform", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolvePlatform(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ResolvePlatform(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolvePlatform_EmptyUsesRuntime(t *testing.T) {
	got, err := ResolvePlatform("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := platform.FromGOOS(runtime.GOOS, runtime.GOARCH).Tag; got != want {
		t.Errorf("ResolvePlatform(\"\") = %q, want %q", got, want)
	}
}

func TestPlatformNames(t *testing.T) {
	got := strings.Join(PlatformNames(), ",")
	if got != "darwin,win32,linux" {
		t.Errorf("PlatformNames() = %q", got)
	}
}

func TestPrinter_Records(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Records([]store.Record{
		{Name: "Firefox", Installed: true, Platform: platform.Linux, Version: "131.0"},
		{Name: "Slack", Installed: false, Platform: platform.Linux},
	})

	out := buf.String()
	for _, want := range []string{"NAME", "Firefox", "131.0", "Slack", "no"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("expected no ANSI codes for non-TTY writer:\n%s", out)
	}
}

func TestPrinter_RecordsEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Records(nil)

	if !strings.Contains(buf.String(), "(no apps)") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestPrinter_Batch(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Batch(install.BatchResult{
		Installed: 1,
		Failed:    1,
		Total:     2,
		Results: []install.Outcome{
			{App: "git", Success: true, Method: "apt"},
			{App: "nope", Error: "Package not found in repository", Method: "apt"},
		},
		Message: "Installation completed: 1 succeeded, 1 failed",
	})

	out := buf.String()
	for _, want := range []string{"✓ git (apt)", "✗ nope: Package not found in repository", "1 succeeded, 1 failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
