package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zappi/cmd"
	"github.com/thoreinstein/zappi/internal/platform"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, and build date of zappi along with the detected platform.`,
	Run: func(c *cobra.Command, _ []string) {
		info := platform.Detect()
		w := c.OutOrStdout()
		fmt.Fprintf(w, "zappi version %s\n", cmd.Version)
		fmt.Fprintf(w, "  commit:    %s\n", cmd.Commit)
		fmt.Fprintf(w, "  built:     %s\n", cmd.Date)
		fmt.Fprintf(w, "  go:        %s\n", runtime.Version())
		fmt.Fprintf(w, "  platform:  %s (%s/%s)\n", info.Tag, info.OS, info.Arch)
		fmt.Fprintf(w, "  installer: %s\n", platform.MethodFor(info.Tag))
	},
}
