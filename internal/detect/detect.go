package detect

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/multierr"

	"github.com/thoreinstein/zappi/internal/logging"
	"github.com/thoreinstein/zappi/internal/platform"
	"github.com/thoreinstein/zappi/internal/store"
)

// Source labels recorded on detected records.
const (
	SourceApplications = "applications"
	SourceRegistry     = "registry"
	SourceProgramFiles = "program-files"
	SourceStartMenu    = "start-menu"
	SourceDesktop      = "desktop-entries"
	SourceDpkg         = "dpkg"
	SourceRPM          = "rpm"
	SourcePacman       = "pacman"
	SourceCatalog      = "catalog"
)

// Result is what a strategy found plus every failure it absorbed on the way.
// Records may be non-empty while Diagnostic is non-nil.
type Result struct {
	Records    []store.Record
	Diagnostic error
}

// Strategy enumerates installed software for one platform family.
type Strategy interface {
	// Platform returns the tag stamped on every record the strategy emits.
	Platform() platform.Tag

	// Enumerate runs the strategy's tiers. It must not panic on source
	// failures; they belong in Result.Diagnostic.
	Enumerate(ctx context.Context) Result
}

// Detector runs a strategy and guarantees a usable, non-empty result.
type Detector struct {
	strategy Strategy
	logger   *slog.Logger
}

// NewDetector wraps s. A nil strategy behaves like Unknown.
func NewDetector(s Strategy, logger *slog.Logger) *Detector {
	if s == nil {
		s = Unknown{}
	}
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Detector{strategy: s, logger: logger}
}

// Platform returns the tag of the wrapped strategy.
func (d *Detector) Platform() platform.Tag {
	return d.strategy.Platform()
}

// Detect enumerates installed software. It never fails: diagnostics are
// logged at warn level, and an empty result or a panicking strategy yields
// the built-in catalog for the platform.
func (d *Detector) Detect(ctx context.Context) (records []store.Record) {
	tag := d.strategy.Platform()
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("detection strategy panicked", "platform", tag, "error", fmt.Sprint(r))
			records = Catalog(tag)
		}
	}()

	res := d.strategy.Enumerate(ctx)
	for _, err := range multierr.Errors(res.Diagnostic) {
		d.logger.Warn("detection source failed", "platform", tag, "error", err)
	}

	if len(res.Records) == 0 {
		d.logger.Info("nothing detected, using built-in catalog", "platform", tag)
		return Catalog(tag)
	}

	d.logger.Debug("detection complete", "platform", tag, "count", len(res.Records))
	return res.Records
}
