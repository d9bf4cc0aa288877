package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roamfs/roamfs/internal/cli/output"
	"github.com/roamfs/roamfs/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after merging file, environment and
defaults. Secrets are redacted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		redacted := *cfg
		if redacted.Backend.SFTP.Password != "" {
			redacted.Backend.SFTP.Password = "<redacted>"
		}
		if redacted.Backend.SFTP.PrivateKeyPassphrase != "" {
			redacted.Backend.SFTP.PrivateKeyPassphrase = "<redacted>"
		}
		if redacted.Backend.S3.SecretAccessKey != "" {
			redacted.Backend.S3.SecretAccessKey = "<redacted>"
		}
		return output.PrintYAML(cmd.OutOrStdout(), &redacted)
	},
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	// Init must work without an existing configuration.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		target := cfgPath
		if target == "" {
			target = config.GetDefaultConfigPath()
		}

		if _, err := os.Stat(target); err == nil && !configInitForce {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", target)
		}

		if err := config.Save(config.GetDefaultConfig(), target); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", target)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
