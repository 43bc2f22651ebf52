package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/zappi/internal/cli"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output records as JSON")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the saved list",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		apps := newStore(loggerFrom(cmd.Context())).SavedApps()
		if listJSON {
			return writeJSON(cmd.OutOrStdout(), apps)
		}
		cli.NewPrinter(cmd.OutOrStdout()).Records(apps)
		return nil
	},
}
