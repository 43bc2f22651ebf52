package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName names the per-user directories zappi owns.
const AppName = "zappi"

// Store file layout under the user's home directory.
const (
	storeDirName  = ".zappi"
	storeFileName = "apps.json"
)

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used. It is idempotent.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or "" if it cannot be determined.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.Wrap(ErrHomeDirNotFound, "resolving home")
	}
	return home, nil
}

// ExpandHome replaces a leading "~" in path with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home := Home()
	if home == "" {
		return path
	}
	return filepath.Join(home, path[1:])
}

// StoreDir returns the directory holding the saved application list.
// Returns: ~/.zappi/
func StoreDir() string {
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, storeDirName)
}

// StoreFile returns the default Record Store backing file.
// Returns: ~/.zappi/apps.json
func StoreFile() string {
	dir := StoreDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, storeFileName)
}

// ConfigDir returns the directory searched for config.yaml.
// On Linux: ~/.config/zappi
// On macOS: ~/Library/Application Support/zappi
// On Windows: %LOCALAPPDATA%\zappi
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// BackupDir returns the default root for store snapshots.
// Returns: <DataHome>/zappi/backups/
func BackupDir() string {
	return filepath.Join(xdg.DataHome, AppName, "backups")
}

// UserApplicationsDir returns the per-user XDG applications directory holding
// .desktop descriptors. Returns: <DataHome>/applications/
func UserApplicationsDir() string {
	return filepath.Join(xdg.DataHome, "applications")
}

// SystemApplicationsDirs returns the system-wide descriptor directories,
// derived from XDG_DATA_DIRS.
func SystemApplicationsDirs() []string {
	dirs := make([]string, 0, len(xdg.DataDirs))
	for _, d := range xdg.DataDirs {
		dirs = append(dirs, filepath.Join(d, "applications"))
	}
	return dirs
}
