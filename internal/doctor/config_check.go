package doctor

import (
	"github.com/thoreinstein/zappi/internal/config"
)

// ConfigCheck validates the loaded configuration.
type ConfigCheck struct {
	cfg  *config.Config
	file string
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a check of cfg, loaded from file ("" for defaults).
func NewConfigCheck(cfg *config.Config, file string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, file: file}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string {
	return "config"
}

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string {
	return "config"
}

// Run executes the check.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{},
	}
	if c.file != "" {
		result.Details["file"] = c.file
	}

	errs := config.Validate(c.cfg)
	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		result.Status = SeverityError
		result.Message = "configuration is invalid"
		result.Details["errors"] = msgs
		result.FixHint = "correct the listed keys in config.yaml or the ZAPPI_ environment"
		return result
	}

	result.Status = SeverityPass
	if c.file == "" {
		result.Message = "using built-in defaults"
	} else {
		result.Message = "loaded " + c.file
	}
	result.Details["store"] = c.cfg.Store.Path
	result.Details["backend"] = c.cfg.Install.Backend
	return result
}
