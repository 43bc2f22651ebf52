package backup

import (
	"io/fs"
	"time"

	"github.com/cockroachdb/errors"
)

// ManifestVersion is the manifest format version for forward compatibility.
const ManifestVersion = 1

// DefaultRetentionCount is the default number of snapshots retained.
const DefaultRetentionCount = 5

// idLayout formats snapshot IDs. Sub-second precision keeps two snapshots
// taken by one command (clear, then import) distinct.
const idLayout = "20060102T150405.000000"

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no snapshots exist.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrNothingToBackup indicates the source file does not exist yet.
	ErrNothingToBackup = errors.New("nothing to back up")

	// ErrBackupCorrupted indicates the snapshot's SHA-256 does not match its manifest.
	ErrBackupCorrupted = errors.New("backup corrupted")
)

// Manifest describes one snapshot of the store file. It is stored as
// manifest.json next to the copied file.
type Manifest struct {
	// Version is the manifest format version.
	Version int `json:"version"`

	// CreatedAt is when the snapshot was taken.
	CreatedAt time.Time `json:"created_at"`

	// Reason names the operation that triggered the snapshot (clear, import, manual).
	Reason string `json:"reason"`

	// Source is the absolute path of the file that was copied.
	Source string `json:"source"`

	// File is the name of the copy inside the snapshot directory.
	File string `json:"file"`

	// SHA256Hash is the hex-encoded SHA-256 of the copy.
	SHA256Hash string `json:"sha256_hash"`

	// Size is the copy's size in bytes.
	Size int64 `json:"size"`

	// Mode is the source file's permission bits.
	Mode fs.FileMode `json:"mode"`

	// ZappiVersion is the version of zappi that took the snapshot.
	ZappiVersion string `json:"zappi_version"`

	// ID is the snapshot directory name. Populated on load, not stored.
	ID string `json:"-"`
}
