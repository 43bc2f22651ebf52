// Package paths resolves the per-user locations zappi reads and writes.
//
// The saved application list lives under the user's home directory
// (~/.zappi/apps.json). Configuration, backups and XDG application
// descriptor directories are resolved through github.com/adrg/xdg:
//
//	paths.StoreFile()   // ~/.zappi/apps.json
//	paths.ConfigDir()   // ~/.config/zappi
//	paths.BackupDir()   // ~/.local/share/zappi/backups
//
// Functions return an empty string when the home directory is unknown;
// [ResolveHome] reports the failure as [ErrHomeDirNotFound].
package paths
