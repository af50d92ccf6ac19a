package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"go.uber.org/zap"

	"rechner-api/internal/config"
	"rechner-api/internal/observability"
	"rechner-api/internal/server"
)

func main() {

	ctx := context.Background()

	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Logger
	if err := observability.InitLogger(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Tracing, metrics, log export
	telemetryShutdowns, err := initTelemetry(ctx, cfg)
	if err != nil {
		observability.Logger.Fatal("telemetry init failed", zap.Error(err))
	}

	// Record store
	store, err := openStore(ctx, cfg)
	if err != nil {
		observability.Logger.Fatal("store init failed", zap.Error(err))
	}

	observability.Logger.Info("store opened", zap.String("driver", cfg.StoreDriver()))

	// Router
	router := server.NewRouter(store)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		observability.Logger.Info("server started", zap.String("addr", cfg.HTTPAddr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Fatal("server failed", zap.Error(err))
		}
	}()

	os.Exit(waitForShutdown(ctx, cfg, srv, store.Close, telemetryShutdowns))
}

// waitForShutdown blocks until SIGINT/SIGTERM, then stops the HTTP server,
// the store and the telemetry providers within cfg.ShutdownTimeout and
// returns the process exit code.
func waitForShutdown(ctx context.Context, cfg config.Config, srv *http.Server, closeStore func() error, telemetry map[string]observability.ShutdownFunc) int {

	ops := map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			observability.Logger.Info("shutting down server")
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			// The store closes once no request can reach it any more.
			return closeStore()
		},
	}
	for name, shutdown := range telemetry {
		ops[name] = gfshutdown.Operation(shutdown)
	}

	code := <-gfshutdown.GracefulShutdown(ctx, cfg.ShutdownTimeout, ops)

	observability.Logger.Info("server stopped", zap.Int("exit_code", code))
	observability.SyncLogger()

	return code
}
