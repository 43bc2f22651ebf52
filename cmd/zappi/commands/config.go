package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/zappi/cmd/zappi/commands/flags"
	"github.com/thoreinstein/zappi/internal/config"
	"github.com/thoreinstein/zappi/internal/editor"
	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/paths"
	"github.com/thoreinstein/zappi/pkg/fileutil"
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect zappi configuration",
	Long: `Inspect the effective configuration.

Values come from config.yaml (in the working directory or
~/.config/zappi/), ZAPPI_* environment variables (for example
ZAPPI_INSTALL_WORKERS=4) and the built-in defaults, in that order.

Without a subcommand, shows the effective configuration.`,
	Example: `  # Show everything
  zappi config show

  # Get a single value
  zappi config get install.backend`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long:  `Get a single configuration value by key. Supports dot notation for nested keys.`,
	Example: `  zappi config get store.path
  zappi config get install.simulate.success_rate`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in your editor",
	Long: `Open config.yaml in $EDITOR (falling back to $VISUAL, nano, then vi).

If no config file exists yet, one is written with the current values first.
Pass --config to edit a specific file.`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

// newLauncher is replaced in tests.
var newLauncher = func(cmd *cobra.Command) editor.Launcher {
	return editor.Launcher{Stdin: cmd.InOrStdin(), Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	return writeConfig(cmd.OutOrStdout(), flags.Config(), config.ConfigFileUsed())
}

func writeConfig(w io.Writer, cfg *config.Config, file string) error {
	if file == "" {
		file = "(none, using defaults)"
	}
	fmt.Fprintf(w, "# config file: %s\n", file)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return errors.Wrap(err, "encoding configuration")
	}
	return errors.Wrap(enc.Close(), "encoding configuration")
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !viper.IsSet(key) {
		return errors.NewUserError(errors.Wrapf(errors.ErrNotFound, "config key %q", key), "Run 'zappi config show' to list keys")
	}
	fmt.Fprintln(cmd.OutOrStdout(), viper.Get(key))
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := configFile
	if path == "" {
		path = config.ConfigFileUsed()
	}
	if path == "" {
		path = filepath.Join(paths.ConfigDir(), "config.yaml")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
			return errors.NewSystemError(err, "")
		}
		if err := fileutil.AtomicWriteYAML(path, flags.Config()); err != nil {
			return errors.NewSystemError(err, "")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Location: %s\n", path)
	return newLauncher(cmd).Open(cmd.Context(), path)
}
