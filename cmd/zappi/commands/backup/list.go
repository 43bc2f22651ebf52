package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zappi/internal/backup"
	"github.com/thoreinstein/zappi/internal/errors"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	Long:  `List saved-list snapshots, most recent first.`,
	Example: `  zappi backup list
  zappi backup list --json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runListWithWriter(cmd.OutOrStdout(), newManager())
	},
}

// infoOutput represents a single backup in JSON output.
type infoOutput struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Reason       string    `json:"reason"`
	Size         int64     `json:"size"`
	ZappiVersion string    `json:"zappi_version"`
}

func runListWithWriter(w io.Writer, mgr *backup.Manager) error {
	manifests, err := mgr.List()
	if err != nil && !errors.Is(err, backup.ErrNoBackupsFound) {
		return errors.Wrap(err, "listing backups")
	}

	if listJSON {
		out := make([]infoOutput, len(manifests))
		for i, m := range manifests {
			out[i] = infoOutput{
				ID:           m.ID,
				CreatedAt:    m.CreatedAt,
				Reason:       m.Reason,
				Size:         m.Size,
				ZappiVersion: m.ZappiVersion,
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(out), "encoding output")
	}

	if len(manifests) == 0 {
		fmt.Fprintln(w, "No backups available")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Backups are created automatically before zappi clears or replaces the saved list.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tREASON\tSIZE\tVERSION")
	for _, m := range manifests {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			m.ID,
			m.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			m.Reason,
			m.Size,
			m.ZappiVersion)
	}
	return tw.Flush()
}
