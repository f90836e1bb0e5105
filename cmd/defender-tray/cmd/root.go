package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/defender-tray/internal/config"
	"github.com/oshokin/defender-tray/internal/service/agent"
	"github.com/oshokin/defender-tray/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string

	// rootCmd represents the tray agent command.
	rootCmd = &cobra.Command{
		Use:   version.Name,
		Short: "Show and toggle Windows Defender real-time protection.",
		Long: `Tray agent that watches Windows Defender real-time protection.

Polls the protection status at a configurable interval and shows it as an icon.
The toggle action flips protection through an elevated PowerShell script and
verifies the write before reporting success. The status action reports the
last observed state. The quit action stops the agent.

On hosts without a tray the agent reads actions from standard input, one per line.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return agent.Run(ctx, &agent.Options{
				ConfigPath: configPath,
			})
		},
	}
)

// Execute runs the defender-tray CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
}
