package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/zappi/internal/cli"
	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/store"
)

var (
	addPlatform     string
	addVersion      string
	addNotInstalled bool
)

func init() {
	addCmd.Flags().StringVarP(&addPlatform, "platform", "p", "",
		"platform the app belongs to: darwin, win32, linux (default: current)")
	addCmd.Flags().StringVar(&addVersion, "version", "", "version string to record")
	addCmd.Flags().BoolVar(&addNotInstalled, "not-installed", false,
		"record the app as not currently installed")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or update one app in the saved list",
	Long: `Add an app to the saved list. If an app with the same name is already
saved it is replaced in place.`,
	Example: `  zappi add Firefox
  zappi add "Visual Studio Code" --platform macos --version 1.94`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	tag, err := cli.ResolvePlatform(addPlatform)
	if err != nil {
		return errors.NewUserError(err, "Run 'zappi add --help' to see valid platforms")
	}

	st := newStore(loggerFrom(cmd.Context()))
	rec := store.Record{
		Name:      args[0],
		Installed: !addNotInstalled,
		Platform:  tag,
		Version:   addVersion,
	}
	if err := st.AddApp(rec); err != nil {
		if errors.Is(err, errors.ErrInvalidRecord) {
			return errors.NewUserError(err, "")
		}
		return errors.NewSystemError(err, "Check that "+st.Path()+" is writable")
	}

	cli.NewPrinter(cmd.OutOrStdout()).Success("Added %s", rec.Name)
	return nil
}
