package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roamfs/roamfs/internal/cli/output"
	"github.com/roamfs/roamfs/pkg/client"
	"github.com/roamfs/roamfs/pkg/fs"
)

var statCmd = &cobra.Command{
	Use:   "stat <path>",
	Short: "Show entry details",
	Long: `Show everything the backend reports about a single file or
directory: type, size, permissions, ownership and timestamps.

Fields the backend does not support are shown as "-".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c client.Client) error {
			entry, err := c.Stat(ctx, args[0])
			if err != nil {
				return err
			}
			return printEntry(entry)
		})
	},
}

func printEntry(entry fs.Entry) error {
	md := entry.Metadata()

	kind := "file"
	if entry.IsDir() {
		kind = "directory"
	}

	table := output.NewTableData("FIELD", "VALUE")
	table.AddRow("Path", entry.Path())
	table.AddRow("Name", entry.Name())
	table.AddRow("Type", kind)

	if entry.IsFile() {
		table.AddRow("Size", fmt.Sprintf("%d", md.Size))
		if ext, ok := entry.Extension(); ok {
			table.AddRow("Extension", ext)
		} else {
			table.AddRow("Extension", "-")
		}
	}

	if md.Mode != nil {
		table.AddRow("Permissions", fmt.Sprintf("%s (%s)", md.Mode.String(), md.Mode.Octal()))
	} else {
		table.AddRow("Permissions", "-")
	}
	table.AddRow("Owner", formatID(md.UID))
	table.AddRow("Group", formatID(md.GID))
	table.AddRow("Modified", output.FormatTime(md.Modified))
	table.AddRow("Accessed", output.FormatTime(md.Accessed))
	table.AddRow("Created", output.FormatTime(md.Created))

	if md.IsSymlink() {
		table.AddRow("Symlink", md.Symlink)
	}
	table.AddRow("Hidden", strconv.FormatBool(entry.IsHidden()))

	return output.PrintTable(os.Stdout, table)
}

func formatID(id *uint32) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatUint(uint64(*id), 10)
}
