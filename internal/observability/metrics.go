package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "metar_compare"

// Metrics holds the Prometheus counters, histograms, and gauges for the poller.
type Metrics struct {
	ObservationsReceived prometheus.Counter
	ObservationsSkipped  prometheus.Counter
	ComparisonsProduced  prometheus.Counter
	ComparisonErrors     prometheus.Counter
	PollerRunning        prometheus.Gauge

	// Feed metrics.
	FetchRequests *prometheus.CounterVec // labels: outcome={success,error}
	FetchCache    *prometheus.CounterVec // labels: result={hit,miss}
	FetchDuration prometheus.Histogram

	// StationTemperature tracks the latest derived values. labels: station, kind={temp,wind_chill,heat_index}
	StationTemperature *prometheus.GaugeVec
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ObservationsReceived,
		m.ObservationsSkipped,
		m.ComparisonsProduced,
		m.ComparisonErrors,
		m.PollerRunning,
		m.FetchRequests,
		m.FetchCache,
		m.FetchDuration,
		m.StationTemperature,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ObservationsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "observations_received_total",
			Help:      "Total METAR observations decoded from the feed.",
		}),
		ObservationsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "observations_skipped_total",
			Help:      "METAR records dropped for missing required fields.",
		}),
		ComparisonsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparisons_produced_total",
			Help:      "Total station comparisons computed.",
		}),
		ComparisonErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparison_errors_total",
			Help:      "Poll cycles that failed to produce a comparison.",
		}),
		PollerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "poller_running",
			Help:      "1 when the poller is active, 0 when shut down.",
		}),
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_requests_total",
			Help:      "Feed requests by outcome, including retries.",
		}, []string{"outcome"}),
		FetchCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_cache_total",
			Help:      "Observation cache lookups by result.",
		}, []string{"result"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Feed request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StationTemperature: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "station_temperature_fahrenheit",
			Help:      "Latest derived temperature per station.",
		}, []string{"station", "kind"}),
	}
}
