package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/zappi/internal/paths"
	"github.com/thoreinstein/zappi/pkg/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

const manifestName = "manifest.json"

// Manager creates, lists, restores and prunes snapshots of the store file.
type Manager struct {
	rootDir        string
	retentionCount int
	now            func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		if dir != "" {
			m.rootDir = dir
		}
	}
}

// WithRetentionCount sets the number of snapshots to retain.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// WithClock overrides the time source used for snapshot IDs.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a new backup Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:        paths.BackupDir(),
		retentionCount: DefaultRetentionCount,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Dir returns the root backup directory.
func (m *Manager) Dir() string {
	return m.rootDir
}

// Snapshot copies the file at src into a new snapshot directory and prunes
// snapshots beyond the retention count. A missing src yields ErrNothingToBackup.
func (m *Manager) Snapshot(src, reason string) (*Manifest, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNothingToBackup, "%s does not exist", src)
		}
		return nil, errors.Wrapf(err, "reading %s", src)
	}
	info, err := os.Stat(src)
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", src)
	}

	created := m.now().UTC()
	if err := os.MkdirAll(m.rootDir, 0o700); err != nil {
		return nil, errors.Wrap(err, "creating backup directory")
	}
	id, dir, err := m.reserve(created)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(src)
	if err := fileutil.AtomicWriteFile(filepath.Join(dir, name), data, info.Mode().Perm()); err != nil {
		os.RemoveAll(dir)
		return nil, errors.Wrap(err, "copying store file")
	}

	abs, err := filepath.Abs(src)
	if err != nil {
		abs = src
	}
	manifest := &Manifest{
		Version:      ManifestVersion,
		CreatedAt:    created,
		Reason:       reason,
		Source:       abs,
		File:         name,
		SHA256Hash:   hashBytes(data),
		Size:         int64(len(data)),
		Mode:         info.Mode().Perm(),
		ZappiVersion: Version,
		ID:           id,
	}
	if err := fileutil.AtomicWriteJSON(filepath.Join(dir, manifestName), manifest); err != nil {
		os.RemoveAll(dir)
		return nil, errors.Wrap(err, "writing manifest")
	}

	if err := m.Prune(m.retentionCount); err != nil {
		return manifest, errors.Wrap(err, "pruning old backups")
	}
	return manifest, nil
}

// Restore verifies the snapshot and writes it to dst, or to the manifest's
// Source when dst is empty.
func (m *Manager) Restore(id, dst string) (*Manifest, error) {
	manifest, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(m.rootDir, id, manifest.File))
	if err != nil {
		return nil, errors.Wrapf(err, "reading backup %s", id)
	}
	if hashBytes(data) != manifest.SHA256Hash {
		return nil, errors.Wrapf(ErrBackupCorrupted, "backup %s hash mismatch", id)
	}

	if dst == "" {
		dst = manifest.Source
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o700); err != nil {
		return nil, errors.Wrapf(err, "creating directory for %s", dst)
	}
	mode := manifest.Mode
	if mode == 0 {
		mode = 0o600
	}
	if err := fileutil.AtomicWriteFile(dst, data, mode); err != nil {
		return nil, errors.Wrapf(err, "restoring %s", dst)
	}
	return manifest, nil
}

// Latest returns the newest snapshot.
func (m *Manager) Latest() (*Manifest, error) {
	all, err := m.List()
	if err != nil {
		return nil, err
	}
	return &all[0], nil
}

// List returns all snapshots, newest first.
func (m *Manager) List() ([]Manifest, error) {
	entries, err := os.ReadDir(m.rootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(entry.Name())
		if err != nil {
			// not a snapshot directory
			continue
		}
		manifests = append(manifests, *manifest)
	}

	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return manifests, nil
}

// Prune removes snapshots beyond the newest keep.
func (m *Manager) Prune(keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	manifests, err := m.List()
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil
		}
		return err
	}

	for i := keep; i < len(manifests); i++ {
		if err := os.RemoveAll(filepath.Join(m.rootDir, manifests[i].ID)); err != nil {
			return errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
	}
	return nil
}

// Get returns the manifest for a specific snapshot.
func (m *Manager) Get(id string) (*Manifest, error) {
	if id == "" {
		return nil, errors.New("backup ID is required")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return nil, errors.Newf("invalid backup ID %q", id)
	}

	data, err := os.ReadFile(filepath.Join(m.rootDir, id, manifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s not found", id)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	manifest.ID = id
	return &manifest, nil
}

// reserve creates a fresh snapshot directory, suffixing the ID on collision.
func (m *Manager) reserve(created time.Time) (string, string, error) {
	base := created.Format(idLayout)
	id := base
	for i := 1; ; i++ {
		dir := filepath.Join(m.rootDir, id)
		err := os.Mkdir(dir, 0o700)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) || i > 100 {
			return "", "", errors.Wrap(err, "creating backup directory")
		}
		id = fmt.Sprintf("%s-%d", base, i)
	}
}

func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
