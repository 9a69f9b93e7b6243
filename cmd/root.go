package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/axellelanca/catalog/internal/config"
	"github.com/spf13/cobra"
)

// Cfg is the global variable that will contain the loaded configuration.
// It is accessible to all Cobra commands throughout the application.
var Cfg *config.Config

// RootCmd is the base command for the CLI application.
// All other commands (run-server, migrate, create-admin, stats) are added as subcommands.
var RootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Product catalog backend",
	Long: `A product catalog backend: brands, products, sales channels and prices
behind a JWT-protected REST API, with asynchronous visit tracking and
update notifications for administrators.`,
}

// Execute is the main entry point for the Cobra application.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Configuration is loaded before any command runs.
	// Subcommands register themselves from their own init() to avoid import cycles.
	cobra.OnInitialize(initConfig)
}

// initConfig loads the application configuration into cmd.Cfg.
// A broken config file is fatal; a missing one falls back to defaults and environment.
func initConfig() {
	var err error
	Cfg, err = config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
}
