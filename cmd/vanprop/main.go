// Package main provides the vanprop operator CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stwalsh4118/vanprop/internal/config"
	"github.com/stwalsh4118/vanprop/internal/handlers"
	"github.com/stwalsh4118/vanprop/internal/logger"
)

var (
	// cfg and log are initialized by PersistentPreRunE.
	cfg *config.Config
	log *logger.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vanprop",
	Short: "vanprop manages the Vancouver property database",
	Long: `vanprop applies the database schema and imports City of Vancouver
property tax records from the open-data API.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vanprop v%s\n", handlers.APIVersion)
	},
}

// loadConfig reads configuration and builds the logger for every command
// except version.
func loadConfig(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cfg = loaded
	log = logger.NewWithOptions(logger.Options{
		Env:   cfg.Server.Env,
		Level: cfg.Server.LogLevel,
	})
	return nil
}
