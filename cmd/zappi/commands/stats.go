package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsJSON bool

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show saved-list statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st := newStore(loggerFrom(cmd.Context())).Stats()
		w := cmd.OutOrStdout()
		if statsJSON {
			return writeJSON(w, st)
		}

		updated := "never"
		if !st.LastUpdated.IsZero() {
			updated = st.LastUpdated.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "Saved apps:    %d\n", st.TotalApps)
		fmt.Fprintf(w, "Last updated:  %s\n", updated)
		fmt.Fprintf(w, "Schema:        %s\n", st.Version)
		fmt.Fprintf(w, "File:          %s (%d bytes)\n", st.Path, st.Size)
		return nil
	},
}
