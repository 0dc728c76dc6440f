// Command compare fetches the latest METAR reports for the target and
// reference stations and prints how the target compares.
//
// Usage:
//
//	go run ./cmd/compare -target KMDW -reference KRDU -label "Oak Park" -reference-label Raleigh
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/couchcryptid/metar-compare/internal/adapter/aviationweather"
	"github.com/couchcryptid/metar-compare/internal/config"
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

	target := flag.String("target", cfg.TargetStation, "target station ICAO identifier")
	reference := flag.String("reference", cfg.ReferenceStation, "reference station ICAO identifier")
	label := flag.String("label", cfg.TargetLabel, "display name for the target location")
	referenceLabel := flag.String("reference-label", cfg.ReferenceLabel, "display name for the reference location")
	format := flag.String("format", cfg.FeedFormat, "feed format: xml or json")
	hours := flag.Int("hours", cfg.HoursBeforeNow, "hours of history to request")
	flag.Parse()

	cfg.TargetStation = strings.ToUpper(*target)
	cfg.ReferenceStation = strings.ToUpper(*reference)
	cfg.TargetLabel = *label
	cfg.ReferenceLabel = *referenceLabel
	cfg.FeedFormat = strings.ToLower(*format)
	cfg.HoursBeforeNow = *hours
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid flags", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	source := aviationweather.NewClient(cfg, metrics, logger)
	comparer := pipeline.NewComparer(cfg.TargetStation, cfg.ReferenceStation, cfg.TargetLabel, cfg.ReferenceLabel)
	p := pipeline.New(source, comparer, nil, logger, metrics, cfg.PollInterval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	comparison, err := p.PollOnce(ctx)
	if err != nil {
		logger.Error("comparison failed", "error", err)
		os.Exit(1)
	}

	for _, line := range comparison.Lines() {
		fmt.Println(line)
	}
}
