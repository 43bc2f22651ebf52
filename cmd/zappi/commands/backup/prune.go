package backup

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zappi/internal/backup"
	"github.com/thoreinstein/zappi/internal/errors"
)

var pruneKeep int

func init() {
	pruneCmd.Flags().IntVar(&pruneKeep, "keep", backup.DefaultRetentionCount,
		"Number of backups to retain")
	Cmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old backups",
	Long: `Remove backups beyond the retention count, oldest first.

By default keeps the 5 most recent backups.`,
	Example: `  # Keep only the 3 most recent backups
  zappi backup prune --keep 3

  # Remove all backups
  zappi backup prune --keep 0`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPruneWithWriter(cmd.OutOrStdout(), newManager(), pruneKeep)
	},
}

func runPruneWithWriter(w io.Writer, mgr *backup.Manager, keep int) error {
	if keep < 0 {
		return errors.NewUserError(errors.New("--keep must be non-negative"), "")
	}

	manifests, err := mgr.List()
	if err != nil {
		if errors.Is(err, backup.ErrNoBackupsFound) {
			fmt.Fprintln(w, "No backups to prune")
			return nil
		}
		return errors.Wrap(err, "listing backups")
	}

	toRemove := len(manifests) - keep
	if toRemove <= 0 {
		fmt.Fprintln(w, "No backups to prune")
		return nil
	}

	if err := mgr.Prune(keep); err != nil {
		return errors.Wrap(err, "pruning backups")
	}

	fmt.Fprintf(w, "✓ Removed %d old backup(s)\n", toRemove)
	return nil
}
