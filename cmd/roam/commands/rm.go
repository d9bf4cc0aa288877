package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roamfs/roamfs/internal/cli/prompt"
	"github.com/roamfs/roamfs/pkg/client"
)

var (
	rmRecursive bool
	rmForce     bool
)

var rmCmd = &cobra.Command{
	Use:   "rm <path>...",
	Short: "Remove files and directories",
	Long: `Remove files, empty directories, or (with -r) whole directory
trees on the configured backend.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c client.Client) error {
			for _, p := range args {
				entry, err := c.Stat(ctx, p)
				if err != nil {
					return err
				}

				switch {
				case entry.IsFile():
					err = c.RemoveFile(ctx, p)
				case rmRecursive:
					ok, perr := prompt.ConfirmWithForce(fmt.Sprintf("Remove %s and all its contents?", p), rmForce)
					if perr != nil {
						return perr
					}
					if !ok {
						continue
					}
					err = c.RemoveDirAll(ctx, p)
				default:
					err = c.RemoveDir(ctx, p)
				}
				if err != nil {
					if client.IsCode(err, client.ErrDirectoryNotEmpty) {
						return fmt.Errorf("%s is not empty (use -r to remove recursively)", p)
					}
					return err
				}
			}
			return nil
		})
	},
}

func init() {
	rmCmd.Flags().BoolVarP(&rmRecursive, "recursive", "r", false, "Remove directories and their contents recursively")
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "Do not ask for confirmation before recursive removal")
}
