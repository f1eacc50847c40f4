package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bedrib/mediamover/pkg/configs"
	"github.com/bedrib/mediamover/pkg/internal/storage/rclone"
)

var (
	remoteCmd = &cobra.Command{
		Use:   "remote",
		Short: "Remote storage related commands",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configs.InitConfig(configPath)
		},
	}

	remoteCheckCmd = &cobra.Command{
		Use:   "check",
		Short: "verify that the configured rclone remote is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := rclone.New()

			cfg := client.GetConfig()
			fmt.Fprintf(cmd.OutOrStdout(), "checking remote %s (binary: %s)\n", cfg.Remote, cfg.Binary)

			if err := client.HealthCheck(); err != nil {
				return fmt.Errorf("remote check failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "remote is reachable")

			return nil
		},
	}
)

// registerRemoteCommands 注册远端存储相关命令.
func registerRemoteCommands() {
	rootCmd.AddCommand(remoteCmd)
	remoteCmd.AddCommand(remoteCheckCmd)
}
