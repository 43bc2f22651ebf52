package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/zappi/internal/cli"
	"github.com/thoreinstein/zappi/internal/errors"
)

var importReplace bool

func init() {
	importCmd.Flags().BoolVar(&importReplace, "replace", false,
		"replace the saved list instead of merging")
	rootCmd.AddCommand(exportCmd, importCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Write the saved list to a file",
	Long: `Write the saved list to a portable file. The format follows the
extension: .json (default), .yaml/.yml or .toml.`,
	Example: `  zappi export apps.json
  zappi export ~/Dropbox/apps.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := newStore(loggerFrom(cmd.Context()))
		if err := st.ExportApps(args[0]); err != nil {
			return transferError(err)
		}
		cli.NewPrinter(cmd.OutOrStdout()).Success("Exported %d app(s) to %s", len(st.SavedApps()), args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Load a saved list from a file",
	Long: `Load apps from a file written by 'zappi export'.

By default imported apps are merged: names already saved are kept as they
are and new names are appended. With --replace the file's list replaces the
saved list after a backup is taken.`,
	Example: `  zappi import apps.json
  zappi import apps.toml --replace`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := newStore(loggerFrom(cmd.Context()))
		if err := st.ImportApps(args[0], !importReplace); err != nil {
			return transferError(err)
		}
		cli.NewPrinter(cmd.OutOrStdout()).Success("Imported %s (%d app(s) saved)", args[0], len(st.SavedApps()))
		return nil
	},
}

func transferError(err error) error {
	switch {
	case errors.Is(err, errors.ErrUnknownFormat):
		return errors.NewUserError(err, "Use a .json, .yaml, .yml or .toml file")
	case errors.Is(err, errors.ErrExportToStore):
		return errors.NewUserError(err, "Choose a path other than the store file")
	case errors.Is(err, errors.ErrInvalidRecord), errors.Is(err, errors.ErrCorruptStore):
		return errors.NewUserError(err, "")
	default:
		return errors.NewSystemError(err, "")
	}
}
