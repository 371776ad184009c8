// Package cli implements verdantctl, the operator command line for the
// verdant service.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dukerupert/verdant/internal"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "verdantctl",
		Short: "Operator tooling for the verdant plant shop service",
		Long: `verdantctl applies database migrations and loads catalog fixtures.

It reads the same environment (and .env file) as the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute(version string) error {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// loadConfig reads the service configuration and builds a logger for it.
func loadConfig() (*internal.Config, *slog.Logger, error) {
	cfg, err := internal.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	return cfg, internal.NewLogger(os.Stderr, cfg.Env, level), nil
}
