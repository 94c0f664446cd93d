// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(Load),
)

// DatabaseConfig holds connection settings for the record store.
type DatabaseConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// AnalyticsConfig controls the dashboard snapshot refresh worker.
type AnalyticsConfig struct {
	RefreshInterval time.Duration
	SnapshotTTL     time.Duration
}

// Config is the root application configuration.
type Config struct {
	Environment     string
	HTTPAddr        string
	Database        DatabaseConfig
	Analytics       AnalyticsConfig
	BusinessInfoTTL time.Duration
	Bootstrap       BootstrapConfig
}

// BootstrapConfig controls dev-mode seeding.
type BootstrapConfig struct {
	EnsureDefaultShop bool
}

// IsProduction reports whether the app runs in the production environment.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Load reads configuration from the process environment, after loading a
// local .env file when one exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment: envString("WRENCHTRACK_ENV", "development"),
		HTTPAddr:    envString("WRENCHTRACK_HTTP_ADDR", ":8080"),
		Database: DatabaseConfig{
			DSN:          envString("WRENCHTRACK_DB_DSN", ""),
			MaxOpenConns: envInt("WRENCHTRACK_DB_MAX_OPEN", 10),
			MaxIdleConns: envInt("WRENCHTRACK_DB_MAX_IDLE", 5),
		},
		Analytics: AnalyticsConfig{
			RefreshInterval: envDuration("WRENCHTRACK_ANALYTICS_REFRESH", 30*time.Second),
			SnapshotTTL:     envDuration("WRENCHTRACK_ANALYTICS_TTL", 2*time.Minute),
		},
		BusinessInfoTTL: envDuration("WRENCHTRACK_BUSINESS_INFO_TTL", 5*time.Minute),
		Bootstrap: BootstrapConfig{
			EnsureDefaultShop: envBool("WRENCHTRACK_ENSURE_DEFAULT_SHOP", true),
		},
	}
	return cfg, nil
}

func envString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
