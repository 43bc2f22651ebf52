package doctor

import (
	"fmt"
	"os"
	"runtime"

	"github.com/thoreinstein/zappi/internal/backup"
	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/store"
)

// BackupSource is the part of backup.Manager the store check repairs from.
type BackupSource interface {
	Latest() (*backup.Manifest, error)
	Restore(id, dst string) (*backup.Manifest, error)
}

// StoreCheck verifies the record store file exists, parses strictly, uses
// the current schema version and is private to the user.
type StoreCheck struct {
	path    string
	backups BackupSource
	fixes   []func() FixResult
}

var (
	_ Check = (*StoreCheck)(nil)
	_ Fixer = (*StoreCheck)(nil)
)

// NewStoreCheck creates a check for the store at path. backups may be nil.
func NewStoreCheck(path string, backups BackupSource) *StoreCheck {
	return &StoreCheck{path: path, backups: backups}
}

// Name returns the unique identifier for this check.
func (c *StoreCheck) Name() string {
	return "store"
}

// Category returns the grouping for this check.
func (c *StoreCheck) Category() string {
	return "store"
}

// Run executes the check.
func (c *StoreCheck) Run() *CheckResult {
	c.fixes = nil
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.path},
	}

	info, err := os.Stat(c.path)
	if os.IsNotExist(err) {
		result.Status = SeverityWarning
		result.Message = "store file does not exist yet"
		result.FixHint = "it is created on first save, or run: zappi doctor --fix"
		c.addFix(result, c.create)
		return result
	}
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot stat store file: %v", err)
		return result
	}
	result.Details["size"] = info.Size()

	doc, err := store.New(c.path).Load()
	if err != nil {
		result.Status = SeverityError
		result.Message = "store file is unreadable; reads fall back to an empty list"
		result.Details["error"] = err.Error()
		if m := c.latestBackup(); m != nil {
			result.Details["latest_backup"] = m.ID
			result.FixHint = "run: zappi doctor --fix (restores backup " + m.ID + ")"
			c.addFix(result, func() FixResult { return c.restore(m.ID) })
		} else {
			result.FixHint = "run: zappi clear --yes to reset the store"
		}
		return result
	}
	result.Details["apps"] = len(doc.Apps)
	result.Details["version"] = doc.Version
	result.Details["last_updated"] = doc.LastUpdated

	if doc.Version != store.SchemaVersion {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("store version %s, expected %s", doc.Version, store.SchemaVersion)
		result.FixHint = "the next save rewrites the file at the current version"
		return result
	}

	if runtime.GOOS != "windows" && info.Mode().Perm()&0o077 != 0 {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("store file is accessible by other users (%04o)", info.Mode().Perm())
		result.FixHint = "run: zappi doctor --fix"
		c.addFix(result, func() FixResult { return chmodFix(c.path, privateFilePerm) })
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d saved app(s)", len(doc.Apps))
	return result
}

// CanFix reports whether the last Run found a repairable issue.
func (c *StoreCheck) CanFix() bool {
	return len(c.fixes) > 0
}

// Fix applies the repairs found by the last Run.
func (c *StoreCheck) Fix() []FixResult {
	results := make([]FixResult, 0, len(c.fixes))
	for _, fix := range c.fixes {
		results = append(results, fix())
	}
	return results
}

func (c *StoreCheck) addFix(result *CheckResult, fix func() FixResult) {
	result.Fixable = true
	c.fixes = append(c.fixes, fix)
}

func (c *StoreCheck) latestBackup() *backup.Manifest {
	if c.backups == nil {
		return nil
	}
	m, err := c.backups.Latest()
	if err != nil {
		return nil
	}
	return m
}

func (c *StoreCheck) create() FixResult {
	s := store.New(c.path)
	s.EnsureExists()
	if _, err := s.Load(); err != nil {
		return FixResult{Path: c.path, Description: "could not create store file", Error: err}
	}
	return FixResult{Path: c.path, Fixed: true, Description: "created empty store"}
}

func (c *StoreCheck) restore(id string) FixResult {
	if _, err := c.backups.Restore(id, c.path); err != nil {
		return FixResult{
			Path:        c.path,
			Description: "restore failed",
			Error:       errors.Wrapf(err, "restoring backup %s", id),
		}
	}
	return FixResult{Path: c.path, Fixed: true, Description: "restored backup " + id}
}
