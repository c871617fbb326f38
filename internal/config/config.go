package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Snapshot SnapshotConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port        string
	StaticDir   string
	OpenBrowser bool
}

// DatabaseConfig holds settings for the SQLite store.
type DatabaseConfig struct {
	Path string
}

// SnapshotConfig holds scheduler-related settings for the periodic low-stock
// snapshot.
type SnapshotConfig struct {
	Enabled      bool
	CronSchedule string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getenvWithDefault("APP_PORT", "8080"),
			StaticDir:   os.Getenv("STATIC_DIR"),
			OpenBrowser: getenvBool("OPEN_BROWSER", false),
		},
		Database: DatabaseConfig{
			Path: getenvWithDefault("STOCKROOM_DB_PATH", "inventory.db"),
		},
		Snapshot: SnapshotConfig{
			Enabled:      getenvBool("SNAPSHOT_ENABLED", true),
			CronSchedule: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 * * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Database.Path == "" {
		return errors.New("STOCKROOM_DB_PATH must be provided")
	}

	if c.Snapshot.Enabled && c.Snapshot.CronSchedule == "" {
		return errors.New("SNAPSHOT_CRON_SCHEDULE must be provided when snapshots are enabled")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
