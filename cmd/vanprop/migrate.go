package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stwalsh4118/vanprop/internal/database"
)

const migrateTimeout = time.Minute

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long:  `Create any missing tables and indexes. Running it again is a no-op.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
		defer cancel()

		db, err := database.NewPostgresPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			return err
		}

		log.Info("Schema applied", map[string]interface{}{
			"host":     cfg.Database.Host,
			"database": cfg.Database.Name,
		})
		fmt.Fprintln(cmd.OutOrStdout(), "Schema applied successfully")
		return nil
	},
}
