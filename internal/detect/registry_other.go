//go:build !windows

package detect

import (
	"context"

	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/store"
)

// readUninstallRegistry is only available on Windows.
func readUninstallRegistry(_ context.Context) ([]store.Record, error) {
	return nil, errors.Wrap(errors.ErrUnsupportedPlatform, "registry enumeration requires windows")
}
