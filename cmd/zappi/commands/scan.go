package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zappi/internal/cli"
	"github.com/thoreinstein/zappi/internal/cli/prompt"
	"github.com/thoreinstein/zappi/internal/engine"
	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/store"
)

var (
	scanSelect bool
	scanSave   bool
	scanJSON   bool
)

// selector is the part of prompt.Selector that scan --select uses.
type selector interface {
	SelectRecords(records []store.Record) ([]store.Record, error)
}

// newSelector is replaced in tests.
var newSelector = func() selector { return prompt.NewSelector() }

func init() {
	scanCmd.Flags().BoolVar(&scanSelect, "select", false,
		"pick apps interactively with a fuzzy finder")
	scanCmd.Flags().BoolVar(&scanSave, "save", false,
		"replace the saved list with the result")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false,
		"output records as JSON")
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the applications installed on this machine",
	Long: `Enumerate installed applications using the platform's native sources.

Scanning never fails: when no source can be read, a built-in catalog of
common applications is shown instead and the reason is written to the
error log.`,
	Example: `  # Show everything that was found
  zappi scan

  # Curate and save
  zappi scan --select --save

  # Machine-readable output
  zappi scan --json`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	svc, err := newService(ctx, serviceOptions{})
	if err != nil {
		return err
	}

	records := svc.Scan(ctx)

	if scanSelect {
		picked, err := newSelector().SelectRecords(records)
		if err != nil {
			if errors.Is(err, prompt.ErrSelectionCancelled) {
				fmt.Fprintln(w, "Selection cancelled")
				return nil
			}
			return errors.Wrap(err, "selecting apps")
		}
		records = picked
	}

	saved := 0
	if scanSave {
		if saved, err = saveRecords(svc, records); err != nil {
			return err
		}
	}

	if scanJSON {
		return writeJSON(w, records)
	}

	p := cli.NewPrinter(w)
	p.Records(records)
	fmt.Fprintf(w, "\n%d app(s) found\n", len(records))
	if scanSave {
		p.Success("Saved %d app(s) to %s", saved, svc.Store().Path())
	}
	return nil
}

// saveRecords stores records and returns how many entries were kept.
func saveRecords(svc *engine.Service, records []store.Record) (int, error) {
	res := svc.Save(records)
	if !res.Success {
		return 0, errors.NewSystemError(res.Err, "Check that "+svc.Store().Path()+" is writable")
	}
	return res.Count, nil
}
