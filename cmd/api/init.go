package main

import (
	"context"
	"fmt"

	"rechner-api/internal/calculator"
	"rechner-api/internal/config"
	"rechner-api/internal/observability"
	"rechner-api/internal/rechnungen"
)

// initTelemetry starts the OTel providers when enabled and registers the
// domain metric instruments. Add new domain InitMetrics calls here as the
// project grows.
func initTelemetry(ctx context.Context, cfg config.Config) (map[string]observability.ShutdownFunc, error) {
	shutdowns := map[string]observability.ShutdownFunc{}

	if cfg.TelemetryEnabled {
		var err error
		shutdowns, err = observability.InitTelemetry(ctx)
		if err != nil {
			return nil, err
		}
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, err
	}
	if err := rechnungen.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdowns, nil
}

// openStore opens the record store selected by cfg.
func openStore(ctx context.Context, cfg config.Config) (rechnungen.Store, error) {
	switch cfg.StoreDriver() {
	case "postgres":
		s, err := rechnungen.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return s, nil
	default:
		s, err := rechnungen.OpenSQLite(cfg.SQLitePath, cfg.DBDebug)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store %s: %w", cfg.SQLitePath, err)
		}
		return s, nil
	}
}
