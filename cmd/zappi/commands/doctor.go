package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zappi/cmd/zappi/commands/flags"
	"github.com/thoreinstein/zappi/internal/config"
	"github.com/thoreinstein/zappi/internal/doctor"
	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/platform"
	"github.com/thoreinstein/zappi/internal/runner"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
	doctorFix     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"repair fixable problems, then check again")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose store and tooling issues",
	Long: `Run diagnostic checks on the saved-apps file, the package managers used
by native installs, and the configuration.

With --fix, a missing store is created, a corrupt one is restored from the
latest backup, and loose file permissions are tightened.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	PreRunE: validateDoctorFlags,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDoctorWithWriter(cmd.OutOrStdout(), newDoctorRunner())
	},
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	for _, set := range []bool{doctorJSON, doctorQuiet, doctorVerbose} {
		if set {
			count++
		}
	}
	if count > 1 {
		return errors.NewUserError(errors.New("flags --json, --quiet, and --verbose are mutually exclusive"), "")
	}
	return nil
}

func newDoctorRunner() *doctor.Runner {
	cfg := flags.Config()
	return doctor.NewRunner(
		doctor.NewConfigCheck(cfg, config.ConfigFileUsed()),
		doctor.NewStoreCheck(cfg.Store.Path, newBackupManager()),
		doctor.NewToolingCheck(platform.Detect().Tag, runner.New()),
	)
}

func runDoctorWithWriter(w io.Writer, r *doctor.Runner) error {
	report := r.Run()

	if doctorFix {
		fixes := r.Fix()
		if !doctorQuiet && !doctorJSON {
			for _, f := range fixes {
				icon := "✓"
				if !f.Fixed {
					icon = "✗"
				}
				fmt.Fprintf(w, "%s fix %s: %s\n", icon, f.Path, f.Description)
			}
			if len(fixes) > 0 {
				fmt.Fprintln(w)
			}
		}
		if len(fixes) > 0 {
			report = r.Run()
		}
	}

	if err := outputDoctorReport(w, report); err != nil {
		return err
	}

	// Determine exit code based on results
	if report.HasErrors() {
		return errors.NewExitError(nil, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(nil, errors.ExitUser)
	}
	return nil
}

func outputDoctorReport(w io.Writer, report *doctor.DoctorReport) error {
	switch {
	case doctorQuiet:
		return nil
	case doctorJSON:
		return writeJSON(w, report)
	default:
		outputDoctorText(w, report)
		return nil
	}
}

func outputDoctorText(w io.Writer, report *doctor.DoctorReport) {
	// In normal mode, show only errors and warnings
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)

		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
		if result.Fixable && problem && !doctorFix {
			fmt.Fprintln(w, "  fixable: run 'zappi doctor --fix'")
		}
	}

	if hasOutput || showAll {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}
