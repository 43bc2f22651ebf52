package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zappi/internal/cli"
	"github.com/thoreinstein/zappi/internal/cli/prompt"
	"github.com/thoreinstein/zappi/internal/errors"
)

var clearYes bool

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the saved list",
	Long: `Remove every app from the saved list. A backup of the file is taken
first; restore it with 'zappi backup restore'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := cmd.OutOrStdout()
		st := newStore(loggerFrom(cmd.Context()))

		if !clearYes {
			ok, err := prompt.NewSelectorWithIO(cmd.InOrStdin(), w, nil).
				Confirm(fmt.Sprintf("Remove all %d saved app(s)?", len(st.SavedApps())))
			if err != nil && !errors.Is(err, prompt.ErrSelectionCancelled) {
				return err
			}
			if !ok {
				fmt.Fprintln(w, "Aborted")
				return nil
			}
		}

		if err := st.ClearApps(); err != nil {
			return errors.NewSystemError(err, "Check that "+st.Path()+" is writable")
		}
		cli.NewPrinter(w).Success("Cleared saved list")
		return nil
	},
}
