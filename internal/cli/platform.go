// Package cli provides CLI-specific types and utilities for the zappi command.
package cli

import (
	"strings"

	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/platform"
)

// ErrUnknownPlatform is returned when a --platform value names no supported
// family.
var ErrUnknownPlatform = errors.New("unknown platform")

// ResolvePlatform turns a --platform flag value into a tag. An empty value
// resolves to the running platform.
func ResolvePlatform(name string) (platform.Tag, error) {
	if strings.TrimSpace(name) == "" {
		return platform.Detect().Tag, nil
	}

	tag := platform.ParseTag(name)
	if !tag.Known() {
		return platform.Unknown, errors.Wrapf(ErrUnknownPlatform, "%q (valid: %s)", name, strings.Join(PlatformNames(), ", "))
	}
	return tag, nil
}

// PlatformNames lists the accepted --platform values.
func PlatformNames() []string {
	var names []string
	for _, t := range platform.Tags() {
		if t.Known() {
			names = append(names, t.String())
		}
	}
	return names
}
