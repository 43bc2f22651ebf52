package install

import (
	"context"
	"time"

	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/platform"
	"github.com/thoreinstein/zappi/internal/runner"
	"github.com/thoreinstein/zappi/internal/store"
)

// Backend installs a single application. Failures are reported in the
// Outcome, never as a panic or error return.
type Backend interface {
	// Method names the tool class the backend uses.
	Method() string

	// Install attempts one record.
	Install(ctx context.Context, rec store.Record) Outcome
}

// Kind selects a backend implementation.
type Kind string

// Backend kinds.
const (
	KindSimulated Kind = "simulated"
	KindNative    Kind = "native"
)

// BackendOption tunes the backend returned by NewBackend.
type BackendOption func(*backendConfig)

type backendConfig struct {
	successRate float64
	minDelay    time.Duration
	maxDelay    time.Duration
	timeout     time.Duration
}

// WithSimulation sets the simulated backend's success rate and delay bounds.
func WithSimulation(successRate float64, minDelay, maxDelay time.Duration) BackendOption {
	return func(c *backendConfig) {
		c.successRate = successRate
		c.minDelay = minDelay
		c.maxDelay = maxDelay
	}
}

// WithItemTimeout bounds each native install.
func WithItemTimeout(d time.Duration) BackendOption {
	return func(c *backendConfig) {
		c.timeout = d
	}
}

// NewBackend returns the backend of the given kind for tag.
func NewBackend(kind Kind, tag platform.Tag, r runner.Runner, opts ...BackendOption) (Backend, error) {
	cfg := backendConfig{
		successRate: DefaultSuccessRate,
		minDelay:    DefaultMinDelay,
		maxDelay:    DefaultMaxDelay,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	switch kind {
	case KindSimulated, "":
		return &Simulated{
			Tag:         tag,
			SuccessRate: cfg.successRate,
			MinDelay:    cfg.minDelay,
			MaxDelay:    cfg.maxDelay,
		}, nil
	case KindNative:
		if r == nil {
			return nil, errors.New("native backend requires a command runner")
		}
		return &Native{Tag: tag, Runner: r, Timeout: cfg.timeout}, nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown install backend %q", kind)
	}
}
