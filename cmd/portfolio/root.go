package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/mindseye-dev/portfolio/internal/config"
	"github.com/mindseye-dev/portfolio/internal/logger"
	"github.com/mindseye-dev/portfolio/internal/setup"
)

var (
	configFolder string
	cfg          *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:               "portfolio",
	Short:             "Photography portfolio server and maintenance tools",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFolder, "config", "config", "path to folder with configs")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(orphansCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(categoriesCmd)
}

// loadConfig reads the config and sets up logging. Maintenance commands log
// to stderr so their stdout can be piped.
func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configFolder)
	if err != nil {
		return err
	}
	cfg = c

	if cmd.Name() == serveCmd.Name() {
		logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)
	} else {
		logger.InitializeTo(os.Stderr, cfg.Public.LogLevel, cfg.Public.LogJSON)
	}
	return nil
}

// withDependencies runs fn against fully wired services and releases them after.
func withDependencies(ctx context.Context, fn func(*setup.Dependencies) error) error {
	deps, err := setup.SetupDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Cleanup()
	return fn(deps)
}
