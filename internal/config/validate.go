package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/zappi/internal/errors"
)

// FieldError describes one invalid configuration key.
type FieldError struct {
	Key    string
	Value  any
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s=%v: %s", e.Key, e.Value, e.Reason)
}

// Unwrap makes every FieldError match ErrInvalidConfig.
func (e *FieldError) Unwrap() error {
	return errors.ErrInvalidConfig
}

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.Wrap(errors.ErrInvalidConfig, "config is nil")}
	}

	var errs []error
	bad := func(key string, value any, reason string) {
		errs = append(errs, &FieldError{Key: key, Value: value, Reason: reason})
	}

	if err := validatePath(cfg.Store.Path); err != nil || cfg.Store.Path == "" {
		bad("store.path", cfg.Store.Path, "must be a file path")
	}
	if err := validatePath(cfg.Backup.Dir); err != nil {
		bad("backup.dir", cfg.Backup.Dir, err.Error())
	}
	if cfg.Backup.Retention < 1 {
		bad("backup.retention", cfg.Backup.Retention, "must be >= 1")
	}
	if err := validatePath(cfg.Log.ErrorFile); err != nil {
		bad("log.error_file", cfg.Log.ErrorFile, err.Error())
	}
	if cfg.Detect.MaxResults < 0 {
		bad("detect.max_results", cfg.Detect.MaxResults, "must be >= 0")
	}
	if cfg.Detect.Timeout <= 0 {
		bad("detect.timeout", cfg.Detect.Timeout, "must be positive")
	}

	switch cfg.Install.Backend {
	case "simulated", "native":
	default:
		bad("install.backend", cfg.Install.Backend, "must be simulated or native")
	}
	if cfg.Install.Workers < 1 || cfg.Install.Workers > 32 {
		bad("install.workers", cfg.Install.Workers, "must be between 1 and 32")
	}
	if cfg.Install.Timeout <= 0 {
		bad("install.timeout", cfg.Install.Timeout, "must be positive")
	}

	sim := cfg.Install.Simulate
	if sim.SuccessRate < 0 || sim.SuccessRate > 1 {
		bad("install.simulate.success_rate", sim.SuccessRate, "must be between 0 and 1")
	}
	if sim.MinDelay < 0 {
		bad("install.simulate.min_delay", sim.MinDelay, "must be >= 0")
	}
	if sim.MaxDelay < sim.MinDelay {
		bad("install.simulate.max_delay", sim.MaxDelay, "must be >= min_delay")
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default" or "disabled")
	if path == "" {
		return nil
	}

	// Check for null bytes which are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return errors.New("contains a null byte")
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return errors.New("is not a path")
	}

	return nil
}
