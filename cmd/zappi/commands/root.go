// Package commands implements the CLI commands for zappi.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/zappi/cmd"
	"github.com/thoreinstein/zappi/cmd/zappi/commands/backup"
	"github.com/thoreinstein/zappi/cmd/zappi/commands/flags"
	ibackup "github.com/thoreinstein/zappi/internal/backup"
	"github.com/thoreinstein/zappi/internal/config"
	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

// errorLog is the diagnostic side-channel opened by setupLogging.
var errorLog *logging.ErrorLog

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	pf.BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	pf.StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	pf.StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	pf.StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml or ~/.config/zappi/config.yaml)")
	pf.String("store", "",
		"saved-apps file (default: ~/.zappi/apps.json)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("zappi version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(backup.Cmd)
}

func initConfig() {
	config.Init()
	_ = viper.BindPFlag("store.path", rootCmd.PersistentFlags().Lookup("store"))
	cfg, err := config.Load(configFile)
	configLoadErr = err
	if err == nil {
		flags.SetConfig(cfg)
	}
	ibackup.Version = cmd.Version
}

var rootCmd = &cobra.Command{
	Use:   "zappi",
	Short: "Inventory installed applications and reinstall them anywhere",
	Long: `zappi scans the applications installed on this machine, lets you curate
and save a list of them, and replays that list later through the platform's
package manager.

Detection uses the native sources of each platform: the Applications folder
on macOS, the uninstall registry and Program Files on Windows, desktop entries
and the package database on Linux. When nothing can be read, a built-in
catalog of common applications is returned instead.`,
	Example: `  # See what is installed
  zappi scan

  # Pick apps interactively and save them
  zappi scan --select --save

  # Reinstall the saved list on a new machine
  zappi install --native

  # Check the store and package managers
  zappi doctor`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return validateConfig(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("ZAPPI_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	handlers := []slog.Handler{logging.NewFormatHandler(logging.Config{
		Level:  level,
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
	})}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	closeErrorLog()
	if path := flags.Config().Log.ErrorFile; path != "" {
		el, err := logging.OpenErrorLog(path)
		if err != nil {
			// the side-channel is best effort
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		} else {
			errorLog = el
			handlers = append(handlers, el)
		}
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

func closeErrorLog() {
	if errorLog != nil {
		_ = errorLog.Close()
		errorLog = nil
	}
}

// validateConfig reports load and validation failures. Commands that must
// work with a broken config (help, version, doctor, config edit) skip it.
func validateConfig(cmd *cobra.Command, _ []string) error {
	switch cmd.Name() {
	case "help", "version", "doctor", "edit":
		return nil
	}

	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}

	if errs := config.Validate(flags.Config()); len(errs) > 0 {
		return errors.NewConfigError(errors.Wrapf(errs[0], "%d configuration problem(s)", len(errs)))
	}
	return nil
}

// Execute runs the root command and prints any error with its suggestion.
func Execute() error {
	err := rootCmd.Execute()
	closeErrorLog()
	printError(rootCmd.ErrOrStderr(), err)
	return err
}

func printError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err == nil && exitErr.Suggestion == "" {
			// exit status only
			return
		}
		if exitErr.Err != nil {
			fmt.Fprintf(w, "Error: %v\n", exitErr.Err)
		}
		if exitErr.Suggestion != "" {
			fmt.Fprintf(w, "%s\n", exitErr.Suggestion)
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
