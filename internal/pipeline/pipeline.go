package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/metar-compare/internal/domain"
	"github.com/couchcryptid/metar-compare/internal/observability"
)

// Comparer builds a comparison from a flat observation list.
type Comparer interface {
	Stations() []string
	Compare(observations []domain.Observation) (domain.Comparison, error)
}

// ComparisonLoader publishes a finished comparison.
type ComparisonLoader interface {
	LoadComparison(ctx context.Context, c domain.Comparison) error
}

const initialBackoff = time.Second

// Poller orchestrates the fetch-compare-publish loop.
type Poller struct {
	source   domain.ObservationSource
	comparer Comparer
	loader   ComparisonLoader
	logger   *slog.Logger
	metrics  *observability.Metrics
	interval time.Duration
	ready    atomic.Bool
	latest   atomic.Pointer[domain.Comparison]
}

// New creates a Poller. loader may be nil when comparisons are only served over HTTP.
func New(source domain.ObservationSource, comparer Comparer, loader ComparisonLoader, logger *slog.Logger, metrics *observability.Metrics, interval time.Duration) *Poller {
	return &Poller{
		source:   source,
		comparer: comparer,
		loader:   loader,
		logger:   logger,
		metrics:  metrics,
		interval: interval,
	}
}

// CheckReadiness returns nil once a comparison has been produced, or an error
// describing why the service is not yet ready.
func (p *Poller) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("poller has not produced a comparison yet")
	}
	return nil
}

// Latest returns the most recent comparison, if any.
func (p *Poller) Latest() (domain.Comparison, bool) {
	c := p.latest.Load()
	if c == nil {
		return domain.Comparison{}, false
	}
	return *c, true
}

// Run polls until the context is cancelled. Failed cycles back off
// exponentially from one second up to the poll interval.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("poller started", "stations", p.comparer.Stations(), "interval", p.interval)
	p.metrics.PollerRunning.Set(1)
	defer p.metrics.PollerRunning.Set(0)

	backoff := initialBackoff
	maxBackoff := max(p.interval, initialBackoff)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopping", "reason", ctx.Err())
			return nil
		default:
		}

		wait := p.interval
		if _, err := p.PollOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.logger.Error("poll failed", "error", err, "retry_in", backoff)
			p.metrics.ComparisonErrors.Inc()
			wait = backoff
			backoff = nextBackoff(backoff, maxBackoff)
		} else {
			backoff = initialBackoff
		}

		if !sleepWithContext(ctx, wait) {
			p.logger.Info("poller stopping", "reason", ctx.Err())
			return nil
		}
	}
}

// PollOnce runs a single fetch-compare-publish cycle. The comparison is
// recorded as the latest even if publishing it fails.
func (p *Poller) PollOnce(ctx context.Context) (domain.Comparison, error) {
	observations, err := p.source.FetchObservations(ctx, p.comparer.Stations())
	if err != nil {
		return domain.Comparison{}, fmt.Errorf("fetch observations: %w", err)
	}

	comparison, err := p.comparer.Compare(observations)
	if err != nil {
		return domain.Comparison{}, fmt.Errorf("compare stations: %w", err)
	}

	p.record(comparison)

	if p.loader != nil {
		if err := p.loader.LoadComparison(ctx, comparison); err != nil {
			return comparison, fmt.Errorf("publish comparison: %w", err)
		}
	}
	return comparison, nil
}

func (p *Poller) record(c domain.Comparison) {
	p.latest.Store(&c)
	p.ready.Store(true)
	p.metrics.ComparisonsProduced.Inc()

	for _, s := range []domain.TemperatureSummary{c.Target, c.Reference} {
		p.metrics.StationTemperature.WithLabelValues(s.StationID, "temp").Set(s.TempF)
		p.metrics.StationTemperature.WithLabelValues(s.StationID, "wind_chill").Set(s.WindChillF)
		p.metrics.StationTemperature.WithLabelValues(s.StationID, "heat_index").Set(s.HeatIndexF)
	}

	p.logger.Info("comparison produced",
		"target", c.Target.StationID,
		"reference", c.Reference.StationID,
		"target_observed", c.Target.ObservationTime,
		"reference_observed", c.Reference.ObservationTime,
		"temp_diff_f", c.TempDiffF,
		"wind_chill_diff_f", c.WindChillDiffF,
	)
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
