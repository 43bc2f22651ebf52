// Package backup provides CLI commands for managing saved-list snapshots.
package backup

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/zappi/cmd/zappi/commands/flags"
	"github.com/thoreinstein/zappi/internal/backup"
)

// Cmd is the root backup command.
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage saved-list backups",
	Long: `Manage snapshots of the saved-apps file.

zappi snapshots the saved list automatically before destructive changes
(clear, import --replace). This command group lists, restores and prunes
those snapshots.`,
	Example: `  # List all backups
  zappi backup list

  # Restore the most recent backup
  zappi backup restore

  # Restore a specific backup
  zappi backup restore 20260123T100712.000000

  # Keep only the 3 most recent backups
  zappi backup prune --keep 3`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func newManager() *backup.Manager {
	cfg := flags.Config()
	return backup.NewManager(
		backup.WithBackupDir(cfg.Backup.Dir),
		backup.WithRetentionCount(cfg.Backup.Retention),
	)
}
