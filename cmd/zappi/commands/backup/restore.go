package backup

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zappi/internal/backup"
	"github.com/thoreinstein/zappi/internal/errors"
)

func init() {
	Cmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore [backup-id]",
	Short: "Restore the saved list from a backup",
	Long: `Restore the saved-apps file from a snapshot.

If no backup ID is provided, restores the most recent snapshot. The file is
written back to the path it was taken from and its checksum is verified
first.`,
	Example: `  # Restore from the most recent backup
  zappi backup restore

  # Restore from a specific backup
  zappi backup restore 20260123T100712.000000`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRestoreWithWriter(cmd.OutOrStdout(), newManager(), args)
	},
}

func runRestoreWithWriter(w io.Writer, mgr *backup.Manager, args []string) error {
	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		latest, err := mgr.Latest()
		if err != nil {
			if errors.Is(err, backup.ErrNoBackupsFound) {
				return errors.NewUserError(err, "Backups are created by 'zappi clear' and 'zappi import --replace'")
			}
			return errors.Wrap(err, "finding latest backup")
		}
		id = latest.ID
		fmt.Fprintf(w, "Using most recent backup: %s\n", id)
	}

	manifest, err := mgr.Restore(id, "")
	if err != nil {
		return errors.Wrapf(err, "restoring backup %s", id)
	}

	fmt.Fprintf(w, "✓ Restored %s from backup %s\n", manifest.Source, manifest.ID)
	return nil
}
