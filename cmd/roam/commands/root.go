// Package commands implements the CLI commands for the roam client.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roamfs/roamfs/internal/logger"
	"github.com/roamfs/roamfs/pkg/client"
	"github.com/roamfs/roamfs/pkg/config"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	cfgPath     string
	logLevel    string
	backendType string
	cfg         *config.Config
)

// rootCmd represents the base command when called without any
// subcommands.
var rootCmd = &cobra.Command{
	Use:   "roam",
	Short: "RoamFS - one client for local, SFTP and S3 filesystems",
	Long: `roam browses and manipulates remote filesystems through a single
uniform interface, regardless of the protocol behind them.

The backend is selected in the configuration file (or via ROAMFS_*
environment variables): an in-memory scratch space, a local directory,
an SFTP server or an S3 bucket.

Use "roam [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.Logging.Level = logLevel
		}
		if backendType != "" {
			loaded.Backend.Type = backendType
		}
		if err := config.Validate(loaded); err != nil {
			return err
		}
		cfg = loaded

		return logger.Init(logger.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: "stderr",
		})
	},
}

// SetVersionInfo stores the build-time version information.
func SetVersionInfo(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "",
		"Path to config file (default: $XDG_CONFIG_HOME/roamfs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override the configured log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&backendType, "backend", "",
		"Override the configured backend (memory, local, sftp, s3)")

	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(statCmd)
	rootCmd.AddCommand(mkdirCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(putCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// withClient connects the configured backend, runs fn and disconnects.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, c client.Client) error) error {
	ctx := cmd.Context()

	c, err := newBackendClient(cfg)
	if err != nil {
		return err
	}
	if err := c.Connect(ctx); err != nil {
		return fmt.Errorf("could not connect %s backend: %w", cfg.Backend.Type, err)
	}
	defer func() {
		_ = c.Disconnect(context.WithoutCancel(ctx))
	}()

	return fn(ctx, c)
}
