package commands

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/thoreinstein/zappi/cmd"
	"github.com/thoreinstein/zappi/cmd/zappi/commands/flags"
	"github.com/thoreinstein/zappi/internal/backup"
	"github.com/thoreinstein/zappi/internal/detect"
	"github.com/thoreinstein/zappi/internal/engine"
	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/install"
	"github.com/thoreinstein/zappi/internal/logging"
	"github.com/thoreinstein/zappi/internal/platform"
	"github.com/thoreinstein/zappi/internal/runner"
	"github.com/thoreinstein/zappi/internal/store"
)

// serviceOptions adjust the engine built by newService.
type serviceOptions struct {
	native   bool
	workers  int
	progress func(install.Outcome)
}

func loggerFrom(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}

func newBackupManager() *backup.Manager {
	cfg := flags.Config()
	return backup.NewManager(
		backup.WithBackupDir(cfg.Backup.Dir),
		backup.WithRetentionCount(cfg.Backup.Retention),
	)
}

func newStore(logger *slog.Logger) *store.Store {
	return store.New(flags.Config().Store.Path,
		store.WithLogger(logger),
		store.WithBackup(newBackupManager()),
		store.WithVersion(cmd.Version),
	)
}

// newService wires detection, the store and the installer from the loaded
// configuration.
func newService(ctx context.Context, opts serviceOptions) (*engine.Service, error) {
	cfg := flags.Config()
	logger := loggerFrom(ctx)
	tag := platform.Detect().Tag

	detectRunner := runner.New(runner.WithTimeout(cfg.Detect.Timeout), runner.WithLogger(logger))
	strategy := detect.ForPlatform(tag, detect.Options{
		Runner:     detectRunner,
		MaxResults: cfg.Detect.MaxResults,
	})

	kind := install.Kind(cfg.Install.Backend)
	if opts.native {
		kind = install.KindNative
	}
	backend, err := install.NewBackend(kind, tag,
		runner.New(runner.WithTimeout(cfg.Install.Timeout), runner.WithLogger(logger)),
		install.WithSimulation(cfg.Install.Simulate.SuccessRate, cfg.Install.Simulate.MinDelay, cfg.Install.Simulate.MaxDelay),
		install.WithItemTimeout(cfg.Install.Timeout),
	)
	if err != nil {
		return nil, errors.NewConfigError(err)
	}

	workers := cfg.Install.Workers
	if opts.workers > 0 {
		workers = opts.workers
	}
	orchOpts := []install.Option{install.WithWorkers(workers), install.WithLogger(logger)}
	if opts.progress != nil {
		orchOpts = append(orchOpts, install.WithProgress(opts.progress))
	}

	return engine.New(
		detect.NewDetector(strategy, logger),
		newStore(logger),
		install.NewOrchestrator(backend, orchOpts...),
		logger,
	), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encoding JSON")
}
