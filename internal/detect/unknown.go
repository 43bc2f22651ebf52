package detect

import (
	"context"

	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/platform"
)

// Unknown is the strategy for platforms without live enumeration.
type Unknown struct{}

// Platform implements Strategy.
func (Unknown) Platform() platform.Tag { return platform.Unknown }

// Enumerate always reports ErrUnsupportedPlatform.
func (Unknown) Enumerate(context.Context) Result {
	return Result{Diagnostic: errors.ErrUnsupportedPlatform}
}
