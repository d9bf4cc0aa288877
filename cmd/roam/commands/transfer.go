package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roamfs/roamfs/pkg/client"
)

var getCmd = &cobra.Command{
	Use:   "get <remote> [local]",
	Short: "Download a file",
	Long: `Download a file from the backend to the local disk. When the
local path is omitted the file is written to the current directory
under its remote name.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		remote := args[0]
		local := path.Base(remote)
		if len(args) == 2 {
			local = args[1]
		}

		return withClient(cmd, func(ctx context.Context, c client.Client) error {
			ctx, cancel := transferContext(ctx)
			defer cancel()

			r, err := c.Open(ctx, remote)
			if err != nil {
				return err
			}
			defer r.Close()

			f, err := os.Create(local)
			if err != nil {
				return fmt.Errorf("could not create %s: %w", local, err)
			}

			n, err := copyBuffered(f, r)
			if err != nil {
				f.Close()
				os.Remove(local)
				return fmt.Errorf("download of %s failed: %w", remote, err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %s (%d bytes)\n", remote, n)
			return nil
		})
	},
}

var putCmd = &cobra.Command{
	Use:   "put <local> [remote]",
	Short: "Upload a file",
	Long: `Upload a local file to the backend. When the remote path is
omitted the file is written to the working directory under its local
name.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		local := args[0]
		remote := filepath.Base(local)
		if len(args) == 2 {
			remote = args[1]
		}

		return withClient(cmd, func(ctx context.Context, c client.Client) error {
			ctx, cancel := transferContext(ctx)
			defer cancel()

			f, err := os.Open(local)
			if err != nil {
				return fmt.Errorf("could not open %s: %w", local, err)
			}
			defer f.Close()

			w, err := c.Create(ctx, remote)
			if err != nil {
				return err
			}

			n, err := copyBuffered(w, f)
			if err != nil {
				w.Close()
				return fmt.Errorf("upload of %s failed: %w", local, err)
			}
			if err := w.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s (%d bytes)\n", local, n)
			return nil
		})
	},
}

// transferContext applies the configured transfer timeout.
func transferContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if cfg.Transfer.Timeout > 0 {
		return context.WithTimeout(ctx, cfg.Transfer.Timeout)
	}
	return context.WithCancel(ctx)
}

// copyBuffered copies with the configured buffer size.
func copyBuffered(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, cfg.Transfer.BufferSize.Bytes())
	return io.CopyBuffer(dst, src, buf)
}
