// Package engine exposes the three operations a front end needs: scan the
// machine, save a curated list, and install the saved list.
package engine

import (
	"context"
	"log/slog"

	"github.com/thoreinstein/zappi/internal/install"
	"github.com/thoreinstein/zappi/internal/logging"
	"github.com/thoreinstein/zappi/internal/store"
)

// Scanner enumerates installed software. *detect.Detector satisfies it.
type Scanner interface {
	Detect(ctx context.Context) []store.Record
}

// Installer replays records. *install.Orchestrator satisfies it.
type Installer interface {
	InstallAll(ctx context.Context, records []store.Record) install.BatchResult
}

// SaveResult reports the outcome of Save.
type SaveResult struct {
	Success bool  `json:"success"`
	Count   int   `json:"count"`
	Err     error `json:"-"`
}

// Service wires detection, persistence and installation together.
type Service struct {
	scanner   Scanner
	store     *store.Store
	installer Installer
	logger    *slog.Logger
}

// New returns a Service. A nil logger discards output.
func New(scanner Scanner, st *store.Store, installer Installer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Service{scanner: scanner, store: st, installer: installer, logger: logger}
}

// Scan returns the installed software on this machine. It never fails and
// never returns an empty list.
func (s *Service) Scan(ctx context.Context) []store.Record {
	records := s.scanner.Detect(ctx)
	s.logger.Debug("scan complete", "count", len(records))
	return records
}

// Save replaces the saved list with records. Count is the number of entries
// stored after records sharing a name collapse.
func (s *Service) Save(records []store.Record) SaveResult {
	if err := s.store.SaveApps(records); err != nil {
		s.logger.Error("saving apps", "error", err)
		return SaveResult{Err: err}
	}
	return SaveResult{Success: true, Count: len(store.Dedupe(records))}
}

// InstallSaved installs every saved record and aggregates the outcomes.
func (s *Service) InstallSaved(ctx context.Context) install.BatchResult {
	saved := s.store.SavedApps()
	s.logger.Debug("installing saved apps", "count", len(saved))
	return s.installer.InstallAll(ctx, saved)
}

// Store returns the underlying record store.
func (s *Service) Store() *store.Store {
	return s.store
}
