package install

import (
	"context"
	"strings"
	"time"

	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/platform"
	"github.com/thoreinstein/zappi/internal/runner"
	"github.com/thoreinstein/zappi/internal/store"
)

// Native install methods.
const (
	MethodBrew     = "brew"
	MethodBrewCask = "brew-cask"
	MethodWinget   = "winget"
	MethodChoco    = "choco"
	MethodApt      = "apt"
	MethodDnf      = "dnf"
	MethodPacman   = "pacman"
)

// Attempt is one package-manager invocation.
type Attempt struct {
	Method string
	Tool   string // binary that must be on PATH
	Name   string
	Args   []string
}

// Native installs through the platform's package managers, trying each in
// order until one succeeds.
type Native struct {
	Tag    platform.Tag
	Runner runner.Runner

	// Timeout bounds one record across all attempts. Zero leaves it to the runner.
	Timeout time.Duration
}

// Method implements Backend.
func (n *Native) Method() string {
	return platform.MethodFor(n.Tag)
}

// Install implements Backend.
func (n *Native) Install(ctx context.Context, rec store.Record) Outcome {
	if strings.HasPrefix(rec.Name, "-") || strings.TrimSpace(rec.Name) == "" {
		return failedOutcome(rec.Name, n.Method(), errors.Newf("invalid package name %q", rec.Name))
	}

	attempts := Attempts(n.Tag, rec.Name)
	if len(attempts) == 0 {
		return failedOutcome(rec.Name, platform.MethodManual,
			errors.Wrapf(errors.ErrUnsupportedPlatform, "no package manager for %s", n.Tag))
	}

	if n.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.Timeout)
		defer cancel()
	}

	var lastErr error
	method := attempts[0].Method
	for _, a := range attempts {
		if ctx.Err() != nil {
			lastErr = ctx.Err()
			break
		}
		method = a.Method
		if _, err := n.Runner.LookPath(a.Tool); err != nil {
			lastErr = errors.Newf("%s not found on PATH", a.Tool)
			continue
		}
		if _, err := n.Runner.Run(ctx, a.Name, a.Args...); err != nil {
			lastErr = err
			continue
		}
		return successOutcome(rec.Name, a.Method)
	}
	return failedOutcome(rec.Name, method, lastErr)
}

// Attempts returns the package-manager invocations for app on tag, in the
// order they are tried.
func Attempts(tag platform.Tag, app string) []Attempt {
	pkg := PackageName(app)
	switch tag {
	case platform.Darwin:
		return []Attempt{
			{Method: MethodBrew, Tool: "brew", Name: "brew", Args: []string{"install", pkg}},
			{Method: MethodBrewCask, Tool: "brew", Name: "brew", Args: []string{"install", "--cask", pkg}},
		}
	case platform.Windows:
		return []Attempt{
			{Method: MethodWinget, Tool: "winget", Name: "winget", Args: []string{"install", "--exact", "--silent", app}},
			{Method: MethodChoco, Tool: "choco", Name: "choco", Args: []string{"install", pkg, "-y"}},
		}
	case platform.Linux:
		return []Attempt{
			{Method: MethodApt, Tool: "apt-get", Name: "sudo", Args: []string{"apt-get", "install", "-y", pkg}},
			{Method: MethodDnf, Tool: "dnf", Name: "sudo", Args: []string{"dnf", "install", "-y", pkg}},
			{Method: MethodPacman, Tool: "pacman", Name: "sudo", Args: []string{"pacman", "-S", "--noconfirm", pkg}},
		}
	default:
		return nil
	}
}

// Tools lists the package-manager binaries Native may invoke on tag.
func Tools(tag platform.Tag) []string {
	var tools []string
	for _, a := range Attempts(tag, "x") {
		if len(tools) == 0 || tools[len(tools)-1] != a.Tool {
			tools = append(tools, a.Tool)
		}
	}
	return tools
}

// PackageName maps a display name to a package identifier: lowercase with
// runs of whitespace replaced by a hyphen.
func PackageName(app string) string {
	return strings.Join(strings.Fields(strings.ToLower(app)), "-")
}
