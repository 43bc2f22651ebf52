package detect

import (
	"github.com/thoreinstein/zappi/internal/platform"
	"github.com/thoreinstein/zappi/internal/runner"
)

// Options tune the strategies built by ForPlatform.
type Options struct {
	// Runner executes package-manager listings.
	Runner runner.Runner

	// MaxResults caps macOS results. Zero means no cap.
	MaxResults int

	// AppsDir overrides the macOS applications directory.
	AppsDir string
}

// ForPlatform returns the strategy for tag.
func ForPlatform(tag platform.Tag, opts Options) Strategy {
	switch tag {
	case platform.Darwin:
		return MacOS{AppsDir: opts.AppsDir, MaxResults: opts.MaxResults}
	case platform.Windows:
		return NewWindows()
	case platform.Linux:
		return NewLinux(opts.Runner)
	default:
		return Unknown{}
	}
}
