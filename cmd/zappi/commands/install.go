package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/zappi/internal/cli"
	"github.com/thoreinstein/zappi/internal/install"
)

var (
	installNative  bool
	installWorkers int
	installJSON    bool
)

func init() {
	installCmd.Flags().BoolVar(&installNative, "native", false,
		"install with the platform's package managers instead of simulating")
	installCmd.Flags().IntVarP(&installWorkers, "workers", "w", 0,
		"apps installed concurrently (default: install.workers)")
	installCmd.Flags().BoolVar(&installJSON, "json", false,
		"output the batch result as JSON")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install every app in the saved list",
	Long: `Install every saved app and report the outcome of each.

By default installs are simulated (install.backend=simulated). Pass --native
to run the platform's package managers: brew on macOS, winget then choco on
Windows, and apt-get, dnf or pacman on Linux. A failed app never stops the
rest of the batch.`,
	Example: `  # Dry run
  zappi install

  # Real installs, four at a time
  zappi install --native --workers 4`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	p := cli.NewPrinter(cmd.OutOrStdout())

	opts := serviceOptions{native: installNative, workers: installWorkers}
	if !installJSON {
		opts.progress = p.Outcome
	}

	svc, err := newService(ctx, opts)
	if err != nil {
		return err
	}

	res := svc.InstallSaved(ctx)
	if installJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}

	// outcomes were streamed by the progress callback
	p.Batch(install.BatchResult{Message: res.Message})
	return nil
}
