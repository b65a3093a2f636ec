package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/forecast-lookup/internal/adapter/http"
	"github.com/couchcryptid/forecast-lookup/internal/adapter/openmeteo"
	"github.com/couchcryptid/forecast-lookup/internal/config"
	"github.com/couchcryptid/forecast-lookup/internal/domain"
	"github.com/couchcryptid/forecast-lookup/internal/observability"
	"github.com/couchcryptid/forecast-lookup/internal/tool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := openmeteo.NewClient(cfg.GeocodingURL, cfg.ForecastURL, cfg.UpstreamTimeout, metrics, logger)
	lookup := domain.NewLookup(client, client, logger)

	registry := tool.NewRegistry()
	tool.RegisterForecast(registry, lookup)
	logger.Info("tools registered", "count", len(registry.List()))

	if cfg.AuthSecret == "" {
		logger.Warn("TOOL_AUTH_SECRET is unset, admin tools cannot be invoked")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, registry, metrics, cfg.AuthSecret, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
