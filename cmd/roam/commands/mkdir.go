package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roamfs/roamfs/pkg/client"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <path>...",
	Short: "Create directories",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c client.Client) error {
			for _, p := range args {
				if err := c.MakeDir(ctx, p); err != nil {
					return err
				}
			}
			return nil
		})
	},
}
