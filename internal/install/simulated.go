package install

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/platform"
	"github.com/thoreinstein/zappi/internal/store"
)

// Simulation defaults.
const (
	DefaultSuccessRate = 0.8
	DefaultMinDelay    = time.Second
	DefaultMaxDelay    = 3 * time.Second
)

// ErrPackageNotFound is the simulated failure.
var ErrPackageNotFound = errors.New("Package not found in repository")

// Simulated pretends to install: it waits a random bounded delay and then
// succeeds with probability SuccessRate. Nothing on the machine changes.
type Simulated struct {
	Tag         platform.Tag
	MinDelay    time.Duration
	MaxDelay    time.Duration
	SuccessRate float64

	// Rand returns a value in [0,1). Defaults to math/rand/v2.
	Rand func() float64

	// Sleep waits for d or until ctx is done. Defaults to a timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Method implements Backend.
func (s *Simulated) Method() string {
	return platform.MethodFor(s.Tag)
}

// Install implements Backend.
func (s *Simulated) Install(ctx context.Context, rec store.Record) Outcome {
	random := s.Rand
	if random == nil {
		random = rand.Float64
	}
	sleep := s.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	delay := s.MinDelay
	if s.MaxDelay > s.MinDelay {
		delay += time.Duration(random() * float64(s.MaxDelay-s.MinDelay))
	}
	if err := sleep(ctx, delay); err != nil {
		return failedOutcome(rec.Name, s.Method(), err)
	}

	if random() < s.SuccessRate {
		return successOutcome(rec.Name, s.Method())
	}
	return failedOutcome(rec.Name, s.Method(), ErrPackageNotFound)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
