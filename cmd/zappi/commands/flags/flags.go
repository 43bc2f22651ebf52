// Package flags holds state shared between the root command and noun
// subpackages (backup). It exists to avoid import cycles.
package flags

import "github.com/thoreinstein/zappi/internal/config"

// loaded holds the configuration resolved by the root command.
var loaded *config.Config

// Config returns the loaded configuration, or the built-in defaults when
// none has been loaded.
func Config() *config.Config {
	if loaded == nil {
		return config.Default()
	}
	return loaded
}

// SetConfig sets the configuration. The root command calls it after
// loading; tests use it to point commands at temporary directories.
func SetConfig(cfg *config.Config) {
	loaded = cfg
}
