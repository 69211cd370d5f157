// Package dbtest opens the integration-test database shared by repository and
// importer tests. Tests are skipped in -short mode or when Postgres is unreachable.
package dbtest

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stwalsh4118/vanprop/internal/config"
	"github.com/stwalsh4118/vanprop/internal/database"
)

// Config returns connection settings from DB_* variables with local defaults.
func Config() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:     getEnvOrDefault("DB_HOST", "localhost"),
		Port:     getEnvOrDefault("DB_PORT", "5432"),
		Name:     getEnvOrDefault("DB_NAME", "vanprop_test"),
		User:     getEnvOrDefault("DB_USER", "postgres"),
		Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
		SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
		PoolMin:  1,
		PoolMax:  5,
	}
}

// Open connects, applies the schema and truncates every table.
// The pool is closed when the test finishes.
func Open(t *testing.T) *database.Database {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := database.NewPostgresPool(ctx, Config())
	if err != nil {
		t.Skipf("Skipping integration test, database unavailable: %v", err)
	}
	t.Cleanup(db.Close)

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	Reset(t, db)

	return db
}

// Reset empties all tables and restarts their sequences.
func Reset(t *testing.T, db *database.Database) {
	t.Helper()

	_, err := db.Pool.Exec(context.Background(), `
		TRUNCATE saved_searches, watchlist, tax_history, properties, users, neighborhoods
		RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("failed to reset test database: %v", err)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
