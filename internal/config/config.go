package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Import   ImportConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port      string
	Env       string
	LogLevel  string
	APIPrefix string
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	SSLMode     string
	PoolMin     int
	PoolMax     int
	AutoMigrate bool
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins []string
}

// ImportConfig controls the open-data importer.
type ImportConfig struct {
	SourceURL  string
	BatchSize  int
	MaxRecords int
	RatePerSec float64
	Timeout    time.Duration
}

// DefaultSourceURL is the City of Vancouver property tax dataset endpoint.
const DefaultSourceURL = "https://opendata.vancouver.ca/api/explore/v2.1/catalog/datasets/property-tax-report/records"

// dotEnvFiles are loaded in order; values already in the environment win.
var dotEnvFiles = []string{".env.local", ".env"}

// Load reads configuration from .env files and environment variables.
// It uses viper to read values and provides sensible defaults for development.
func Load() (*Config, error) {
	if err := loadDotEnv(dotEnvFiles...); err != nil {
		return nil, err
	}

	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("API_PREFIX", "/api")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "vanprop")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_POOL_MIN", 2)
	v.SetDefault("DB_POOL_MAX", 10)
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("IMPORT_SOURCE_URL", DefaultSourceURL)
	v.SetDefault("IMPORT_BATCH_SIZE", 100)
	v.SetDefault("IMPORT_MAX_RECORDS", 500)
	v.SetDefault("IMPORT_RATE_PER_SEC", 10.0)
	v.SetDefault("IMPORT_TIMEOUT", "30s")

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:      v.GetString("PORT"),
			Env:       v.GetString("ENV"),
			LogLevel:  v.GetString("LOG_LEVEL"),
			APIPrefix: normalizePrefix(v.GetString("API_PREFIX")),
		},
		Database: DatabaseConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			Name:        v.GetString("DB_NAME"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			PoolMin:     v.GetInt("DB_POOL_MIN"),
			PoolMax:     v.GetInt("DB_POOL_MAX"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		CORS: CORSConfig{
			Origins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
		Import: ImportConfig{
			SourceURL:  v.GetString("IMPORT_SOURCE_URL"),
			BatchSize:  v.GetInt("IMPORT_BATCH_SIZE"),
			MaxRecords: v.GetInt("IMPORT_MAX_RECORDS"),
			RatePerSec: v.GetFloat64("IMPORT_RATE_PER_SEC"),
			Timeout:    v.GetDuration("IMPORT_TIMEOUT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Port == "" {
		return fmt.Errorf("DB_PORT is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Database.PoolMin < 0 {
		return fmt.Errorf("DB_POOL_MIN must be non-negative")
	}
	if c.Database.PoolMax < 1 {
		return fmt.Errorf("DB_POOL_MAX must be at least 1")
	}
	if c.Database.PoolMin > c.Database.PoolMax {
		return fmt.Errorf("DB_POOL_MIN must be less than or equal to DB_POOL_MAX")
	}

	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}

	if c.Import.SourceURL == "" {
		return fmt.Errorf("IMPORT_SOURCE_URL is required")
	}
	if c.Import.BatchSize < 1 {
		return fmt.Errorf("IMPORT_BATCH_SIZE must be at least 1")
	}
	if c.Import.MaxRecords < 0 {
		return fmt.Errorf("IMPORT_MAX_RECORDS must be non-negative")
	}
	if c.Import.RatePerSec <= 0 {
		return fmt.Errorf("IMPORT_RATE_PER_SEC must be positive")
	}
	if c.Import.Timeout <= 0 {
		return fmt.Errorf("IMPORT_TIMEOUT must be positive")
	}

	return nil
}

// loadDotEnv populates the process environment from the given files.
// Missing files are skipped and existing variables are never overridden.
func loadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// normalizePrefix makes sure the API prefix starts with a slash and has no trailing slash.
func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}

// parseOrigins splits a comma-separated string of origins into a slice.
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
