package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"
)

// Config holds the runtime settings of the API server.
type Config struct {
	// HTTPAddr is the listen address, e.g. ":3000".
	HTTPAddr string
	// DatabaseURL selects the Postgres store when set.
	DatabaseURL string
	// SQLitePath is used when DatabaseURL is empty.
	SQLitePath string
	DBDebug    bool

	LogLevel         zapcore.Level
	TelemetryEnabled bool
	ShutdownTimeout  time.Duration
}

// Load reads the configuration from the environment. Call it after the .env
// file has been loaded.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":3000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getenv("SQLITE_PATH", "rechner.db"),
	}

	var err error

	if cfg.DBDebug, err = parseBool("DB_DEBUG", false); err != nil {
		return Config{}, err
	}
	if cfg.TelemetryEnabled, err = parseBool("OTEL_ENABLED", true); err != nil {
		return Config{}, err
	}

	if cfg.LogLevel, err = zapcore.ParseLevel(getenv("LOG_LEVEL", "info")); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(getenv("SHUTDOWN_TIMEOUT", "5s")); err != nil {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	if cfg.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: must be positive, got %s", cfg.ShutdownTimeout)
	}

	return cfg, nil
}

// StoreDriver names the record store backend the configuration selects.
func (c Config) StoreDriver() string {
	if c.DatabaseURL != "" {
		return "postgres"
	}
	return "sqlite"
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func parseBool(key string, fallback bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
