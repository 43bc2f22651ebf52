package install

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/thoreinstein/zappi/internal/logging"
	"github.com/thoreinstein/zappi/internal/store"
)

// NoAppsMessage is the summary for an empty batch.
const NoAppsMessage = "No apps to install"

// Orchestrator replays a list of records against a Backend.
type Orchestrator struct {
	backend  Backend
	workers  int
	logger   *slog.Logger
	progress func(Outcome)
	newID    func() string
	now      func() time.Time

	progressMu sync.Mutex
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithWorkers sets how many records are installed concurrently. Values
// below 2 install sequentially.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) {
		o.workers = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithProgress registers fn to receive each outcome as it completes. Calls
// are serialized.
func WithProgress(fn func(Outcome)) Option {
	return func(o *Orchestrator) {
		o.progress = fn
	}
}

// NewOrchestrator returns an Orchestrator over backend.
func NewOrchestrator(backend Backend, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		backend: backend,
		workers: 1,
		logger:  logging.NewDiscard(),
		newID:   uuid.NewString,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Method returns the backend's method label.
func (o *Orchestrator) Method() string {
	return o.backend.Method()
}

// InstallAll attempts every record independently and aggregates the
// outcomes in input order. It never fails; per-item errors, panics and
// cancellation become failed outcomes.
func (o *Orchestrator) InstallAll(ctx context.Context, records []store.Record) BatchResult {
	if len(records) == 0 {
		return BatchResult{Results: []Outcome{}, Message: NoAppsMessage}
	}

	id := o.newID()
	logger := o.logger.With("batch", id)
	logger.Info("installing apps", "count", len(records), "method", o.backend.Method(), "workers", o.workers)

	results := make([]Outcome, len(records))
	if o.workers <= 1 {
		for i, rec := range records {
			results[i] = o.installOne(ctx, logger, rec)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(o.workers)
		for i, rec := range records {
			g.Go(func() error {
				results[i] = o.installOne(ctx, logger, rec)
				return nil
			})
		}
		_ = g.Wait()
	}

	res := BatchResult{ID: id, Total: len(records), Results: results}
	for _, out := range results {
		if out.Success {
			res.Installed++
		} else {
			res.Failed++
		}
	}
	res.Message = fmt.Sprintf("Installation completed: %d succeeded, %d failed", res.Installed, res.Failed)
	logger.Info("installation finished", "installed", res.Installed, "failed", res.Failed)
	return res
}

func (o *Orchestrator) installOne(ctx context.Context, logger *slog.Logger, rec store.Record) (out Outcome) {
	start := o.now()
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{App: rec.Name, Error: fmt.Sprint(r), Method: o.backend.Method()}
		}
		if out.Duration == 0 {
			out.Duration = o.now().Sub(start)
		}
		if out.Success {
			logger.Info("installed", "app", out.App, "method", out.Method)
		} else {
			logger.Warn("install failed", "app", out.App, "method", out.Method, "error", out.Error)
		}
		o.report(out)
	}()

	if err := ctx.Err(); err != nil {
		return failedOutcome(rec.Name, o.backend.Method(), err)
	}

	out = o.backend.Install(ctx, rec)
	if out.App == "" {
		out.App = rec.Name
	}
	if out.Method == "" {
		out.Method = o.backend.Method()
	}
	if !out.Success && out.Error == "" {
		out.Error = "installation failed"
	}
	return out
}

func (o *Orchestrator) report(out Outcome) {
	if o.progress == nil {
		return
	}
	o.progressMu.Lock()
	defer o.progressMu.Unlock()
	o.progress(out)
}
