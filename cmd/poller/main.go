package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/metar-compare/internal/adapter/aviationweather"
	"github.com/couchcryptid/metar-compare/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/metar-compare/internal/adapter/kafka"
	"github.com/couchcryptid/metar-compare/internal/config"
	"github.com/couchcryptid/metar-compare/internal/domain"
	"github.com/couchcryptid/metar-compare/internal/observability"
	"github.com/couchcryptid/metar-compare/internal/pipeline"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var source domain.ObservationSource = aviationweather.NewClient(cfg, metrics, logger)
	if cfg.CacheTTL > 0 {
		source = aviationweather.NewCachedSource(source, cfg.CacheSize, cfg.CacheTTL, metrics)
		logger.Info("observation cache enabled", "size", cfg.CacheSize, "ttl", cfg.CacheTTL)
	}

	// Publishing is feature-flagged via KAFKA_ENABLED.
	var (
		loader pipeline.ComparisonLoader
		writer *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		loader = writer
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	comparer := pipeline.NewComparer(cfg.TargetStation, cfg.ReferenceStation, cfg.TargetLabel, cfg.ReferenceLabel)
	p := pipeline.New(source, comparer, loader, logger, metrics, cfg.PollInterval)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("poller error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
