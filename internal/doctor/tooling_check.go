package doctor

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/zappi/internal/install"
	"github.com/thoreinstein/zappi/internal/platform"
	"github.com/thoreinstein/zappi/internal/runner"
)

var toolingHints = map[platform.Tag]string{
	platform.Darwin:  "install Homebrew from https://brew.sh",
	platform.Windows: "install App Installer (winget) from the Microsoft Store, or Chocolatey",
	platform.Linux:   "install apt, dnf or pacman, or keep install.backend=simulated",
}

// ToolingCheck verifies the package managers the native backend uses are on PATH.
type ToolingCheck struct {
	tag    platform.Tag
	runner runner.Runner
}

var _ Check = (*ToolingCheck)(nil)

// NewToolingCheck creates a tooling check for tag.
func NewToolingCheck(tag platform.Tag, r runner.Runner) *ToolingCheck {
	return &ToolingCheck{tag: tag, runner: r}
}

// Name returns the unique identifier for this check.
func (c *ToolingCheck) Name() string {
	return "package-managers"
}

// Category returns the grouping for this check.
func (c *ToolingCheck) Category() string {
	return "tooling"
}

// Run executes the check.
func (c *ToolingCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"platform": string(c.tag)},
	}

	tools := install.Tools(c.tag)
	if len(tools) == 0 {
		result.Status = SeverityInfo
		result.Message = fmt.Sprintf("no native installer for platform %s; installs are simulated", c.tag)
		return result
	}

	found := make(map[string]any, len(tools))
	var available []string
	for _, tool := range tools {
		path, err := c.runner.LookPath(tool)
		if err != nil {
			found[tool] = "missing"
			continue
		}
		found[tool] = path
		available = append(available, tool)
	}
	result.Details["tools"] = found

	if len(available) == 0 {
		result.Status = SeverityWarning
		result.Message = "no supported package manager found on PATH; native installs will fail"
		result.FixHint = toolingHints[c.tag]
		return result
	}

	result.Status = SeverityPass
	result.Message = "available: " + strings.Join(available, ", ")
	return result
}
