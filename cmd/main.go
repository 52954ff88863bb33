// Package main provides the CLI entrypoint for the URL normalizer.
// It wires subcommands (normalize, equal, serve), loads configuration, and initializes logging.
package main

import (
	"context"
	"fmt"
	"os"

	"urlnorm/internal/config"
	"urlnorm/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newRootCommand builds the root command. Configuration is loaded before any
// subcommand runs and shared with all of them through cfg.
func newRootCommand() *cobra.Command {
	cfg := &config.Config{}
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "urlnorm",
		Short:         "Normalizes URLs into a canonical form",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}
			*cfg = *loaded

			if err := logger.Setup(cfg.Environment, cfg.Log.Level); err != nil {
				return fmt.Errorf("could not setup logger: %w", err)
			}

			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yml", "Config File Path")

	rootCmd.AddCommand(
		normalizeCommand(cfg),
		equalCommand(cfg),
		serveCommand(cfg),
	)

	return rootCmd
}

// main executes the CLI and maps any command error to exit status 1.
func main() {
	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync()

			panic(p)
		}
	}()

	err := newRootCommand().ExecuteContext(ctx)
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "urlnorm:", err)
		os.Exit(1) //nolint: gocritic
	}
}
