package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/seismolab/vrancea-gmm/internal/adapter/http"
	kafkaadapter "github.com/seismolab/vrancea-gmm/internal/adapter/kafka"
	"github.com/seismolab/vrancea-gmm/internal/adapter/sitecond"
	"github.com/seismolab/vrancea-gmm/internal/config"
	"github.com/seismolab/vrancea-gmm/internal/gmm"
	"github.com/seismolab/vrancea-gmm/internal/observability"
	"github.com/seismolab/vrancea-gmm/internal/pipeline"
)

func main() {
	// Local development convenience; production sets real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Initialize the Vs30 provider (feature-flagged via SITECOND_URL / SITECOND_ENABLED).
	var provider gmm.SiteConditionsProvider
	if cfg.SiteCondEnabled {
		client := sitecond.NewClient(cfg.SiteCondURL, cfg.SiteCondTimeout, logger, metrics)
		provider = sitecond.NewCachedProvider(client, cfg.SiteCondCacheTTL, metrics)
		metrics.SiteCondEnabled.Set(1)
		logger.Info("site-conditions enrichment enabled", "url", cfg.SiteCondURL, "cache_ttl", cfg.SiteCondCacheTTL)
	} else {
		logger.Info("site-conditions enrichment disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(provider, logger)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the prediction pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
