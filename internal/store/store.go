package store

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/thoreinstein/zappi/internal/backup"
	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/logging"
	"github.com/thoreinstein/zappi/internal/paths"
	"github.com/thoreinstein/zappi/pkg/fileutil"
)

// Snapshotter copies the store file aside before destructive mutations.
// *backup.Manager satisfies it.
type Snapshotter interface {
	Snapshot(path, reason string) (*backup.Manifest, error)
}

// Store is the single-document record store. All operations are serialized
// by one mutex; every mutation is a full read-modify-write of the file.
type Store struct {
	mu       sync.Mutex
	path     string
	logger   *slog.Logger
	now      func() time.Time
	backups  Snapshotter
	producer string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for degraded-path diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source for savedAt and lastUpdated stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithBackup enables snapshots before ClearApps and replacing imports.
func WithBackup(b Snapshotter) Option {
	return func(s *Store) {
		s.backups = b
	}
}

// WithVersion sets the version recorded in exportedFrom.
func WithVersion(v string) Option {
	return func(s *Store) {
		if v != "" {
			s.producer = "zappi " + v
		}
	}
}

// New returns a Store backed by the file at path. An empty path selects
// the default location under the home directory.
func New(path string, opts ...Option) *Store {
	if path == "" {
		path = paths.StoreFile()
	}
	s := &Store{
		path:     paths.ExpandHome(path),
		logger:   logging.NewDiscard(),
		now:      time.Now,
		producer: "zappi dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// EnsureExists creates the store directory and an empty document if either
// is missing. Failures are logged and never returned.
func (s *Store) EnsureExists() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureExists()
}

func (s *Store) ensureExists() {
	if err := paths.EnsureDir(filepath.Dir(s.path), paths.DefaultDirPerm); err != nil {
		s.logger.Warn("creating store directory", "path", s.path, "error", err)
		return
	}
	if _, err := os.Stat(s.path); err == nil {
		return
	} else if !os.IsNotExist(err) {
		s.logger.Warn("checking store file", "path", s.path, "error", err)
		return
	}
	if err := fileutil.AtomicWriteJSONWithPerm(s.path, NewDocument(s.now().UTC()), 0o600); err != nil {
		s.logger.Warn("initializing store file", "path", s.path, "error", err)
	}
}

// Read returns the stored document. Any I/O or parse failure yields a fresh
// empty document.
func (s *Store) Read() *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *Store) read() *Document {
	s.ensureExists()
	doc, err := s.load()
	if err != nil {
		s.logger.Warn("reading store, using empty document", "path", s.path, "error", err)
		return NewDocument(s.now().UTC())
	}
	return doc
}

// Load parses the backing file without creating or repairing it.
func (s *Store) Load() (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "store file %s", s.path)
		}
		return nil, errors.Wrapf(err, "reading %s", s.path)
	}
	return parseDocument(data)
}

// Write stamps lastUpdated and version, then atomically replaces the file.
func (s *Store) Write(doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(doc)
}

func (s *Store) write(doc *Document) error {
	s.ensureExists()
	if doc == nil {
		doc = NewDocument(s.now())
	}
	if doc.Apps == nil {
		doc.Apps = []Record{}
	}
	doc.LastUpdated = s.now().UTC()
	doc.Version = SchemaVersion
	if err := fileutil.AtomicWriteJSONWithPerm(s.path, doc, 0o600); err != nil {
		s.logger.Warn("writing store", "path", s.path, "error", err)
		return errors.Wrap(err, "writing store")
	}
	return nil
}

// SaveApps replaces the saved list with records, stamping savedAt on each.
// Records sharing a name collapse to the last one given.
func (s *Store) SaveApps(records []Record) error {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	doc.Apps = s.stamp(Dedupe(records))
	if err := s.write(doc); err != nil {
		return err
	}
	s.logger.Info("saved apps", "count", len(doc.Apps))
	return nil
}

// SavedApps returns the saved list, empty on any failure.
func (s *Store) SavedApps() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().Apps
}

// AddApp upserts r by name. An existing entry is replaced in place.
func (s *Store) AddApp(r Record) error {
	if err := r.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	r = s.stamp([]Record{r})[0]
	i := slices.IndexFunc(doc.Apps, func(e Record) bool { return e.Name == r.Name })
	if i >= 0 {
		doc.Apps[i] = r
	} else {
		doc.Apps = append(doc.Apps, r)
	}
	return s.write(doc)
}

// RemoveApp drops every entry named name. Removing an absent name succeeds.
func (s *Store) RemoveApp(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	doc.Apps = slices.DeleteFunc(doc.Apps, func(e Record) bool { return e.Name == name })
	return s.write(doc)
}

// ClearApps empties the saved list, snapshotting the file first when
// backups are configured.
func (s *Store) ClearApps() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	s.snapshot("clear")
	doc.Apps = []Record{}
	return s.write(doc)
}

// ExportApps writes the saved list with provenance to path. The format is
// chosen from the extension.
func (s *Store) ExportApps(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if samePath(path, s.path) {
		return errors.Wrapf(errors.ErrExportToStore, "%s", path)
	}

	s.mu.Lock()
	doc := s.read()
	s.mu.Unlock()

	out := &ExportDocument{
		Apps:         doc.Apps,
		ExportedAt:   s.now().UTC(),
		ExportedFrom: s.producer,
	}
	if err := writeExport(path, format, out); err != nil {
		return errors.Wrapf(err, "exporting to %s", path)
	}
	s.logger.Info("exported apps", "path", path, "count", len(out.Apps), "format", format)
	return nil
}

// ImportApps reads an export file. With merge, imported names already
// present are dropped and the rest appended. Without merge, the file's apps
// replace the saved list.
func (s *Store) ImportApps(path string, merge bool) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return errors.Wrapf(err, "reading import %s", path)
	}
	in, err := decodeExport(data, format)
	if err != nil {
		return err
	}
	for _, r := range in.Apps {
		if err := r.Validate(); err != nil {
			return errors.Wrapf(err, "importing %s", path)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	if merge {
		seen := make(map[string]bool, len(doc.Apps))
		for _, r := range doc.Apps {
			seen[r.Name] = true
		}
		for _, r := range in.Apps {
			if seen[r.Name] {
				continue
			}
			seen[r.Name] = true
			doc.Apps = append(doc.Apps, r)
		}
	} else {
		s.snapshot("import")
		doc.Apps = Dedupe(in.Apps)
	}

	if err := s.write(doc); err != nil {
		return err
	}
	s.logger.Info("imported apps", "path", path, "imported", len(in.Apps), "total", len(doc.Apps), "merge", merge)
	return nil
}

// samePath reports whether a and b name the same file, either as absolute
// paths or, when both exist, through symlinks.
func samePath(a, b string) bool {
	a, b = paths.ExpandHome(a), paths.ExpandHome(b)
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}

// stamp returns copies of records with savedAt set to now.
func (s *Store) stamp(records []Record) []Record {
	now := s.now().UTC()
	out := make([]Record, len(records))
	for i, r := range records {
		r.SavedAt = &now
		out[i] = r
	}
	return out
}

func (s *Store) snapshot(reason string) {
	if s.backups == nil {
		return
	}
	m, err := s.backups.Snapshot(s.path, reason)
	if err != nil {
		s.logger.Warn("store snapshot failed", "reason", reason, "error", err)
		return
	}
	s.logger.Debug("store snapshot taken", "id", m.ID, "reason", reason)
}
