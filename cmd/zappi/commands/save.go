package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/zappi/internal/cli"
	"github.com/thoreinstein/zappi/internal/platform"
	"github.com/thoreinstein/zappi/internal/store"
)

func init() {
	rootCmd.AddCommand(saveCmd)
}

var saveCmd = &cobra.Command{
	Use:   "save <name>...",
	Short: "Replace the saved list with the named apps",
	Long: `Replace the saved list with the given application names. Each app is
recorded as installed on the current platform.

To add a single app without touching the rest of the list, use 'zappi add'.`,
	Example: `  zappi save Firefox "Visual Studio Code" Slack`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runSave,
}

func runSave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, err := newService(ctx, serviceOptions{})
	if err != nil {
		return err
	}

	tag := platform.Detect().Tag
	records := make([]store.Record, len(args))
	for i, name := range args {
		records[i] = store.Record{Name: name, Installed: true, Platform: tag}
	}

	saved, err := saveRecords(svc, records)
	if err != nil {
		return err
	}

	cli.NewPrinter(cmd.OutOrStdout()).Success("Saved %d app(s) to %s", saved, svc.Store().Path())
	return nil
}
