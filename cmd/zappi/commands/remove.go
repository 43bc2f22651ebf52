package commands

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zappi/internal/cli"
	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/store"
)

func init() {
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove an app from the saved list",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		st := newStore(loggerFrom(cmd.Context()))
		p := cli.NewPrinter(cmd.OutOrStdout())

		if !slices.Contains(store.Names(st.SavedApps()), name) {
			p.Warn("%s is not in the saved list", name)
			return nil
		}
		if err := st.RemoveApp(name); err != nil {
			return errors.NewSystemError(err, "Check that "+st.Path()+" is writable")
		}
		p.Success("Removed %s", name)
		return nil
	},
}
