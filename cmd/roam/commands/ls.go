package commands

import (
	"context"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roamfs/roamfs/internal/cli/output"
	"github.com/roamfs/roamfs/pkg/client"
)

var lsAll bool

var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List directory contents",
	Long: `List the entries of a directory on the configured backend.

Hidden entries (dot files) are omitted unless -a is given.

Examples:
  # List the root directory
  roam ls

  # List a subdirectory including hidden entries
  roam ls -a /var/log`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := "/"
		if len(args) == 1 {
			target = args[0]
		}

		return withClient(cmd, func(ctx context.Context, c client.Client) error {
			entries, err := c.List(ctx, target)
			if err != nil {
				return err
			}

			sort.Slice(entries, func(i, j int) bool {
				return entries[i].Name() < entries[j].Name()
			})

			table := output.NewTableData("MODE", "SIZE", "MODIFIED", "NAME")
			for _, e := range entries {
				if !lsAll && e.IsHidden() {
					continue
				}
				table.AddRow(
					output.FormatMode(e),
					output.FormatSize(e),
					output.FormatTime(e.Metadata().Modified),
					output.FormatName(e),
				)
			}
			return output.PrintTable(os.Stdout, table)
		})
	},
}

func init() {
	lsCmd.Flags().BoolVarP(&lsAll, "all", "a", false, "Include hidden entries")
}
