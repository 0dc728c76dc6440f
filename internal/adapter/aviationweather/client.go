package aviationweather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/couchcryptid/metar-compare/internal/config"
	"github.com/couchcryptid/metar-compare/internal/domain"
	"github.com/couchcryptid/metar-compare/internal/observability"
)

// Client implements domain.ObservationSource using the aviationweather.gov data API.
type Client struct {
	baseURL    string
	format     string
	hours      int
	userAgent  string
	httpClient *http.Client
	attempts   uint
	retryDelay time.Duration
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a METAR feed client from the feed settings in cfg.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL:   cfg.AviationWeatherURL,
		format:    cfg.FeedFormat,
		hours:     cfg.HoursBeforeNow,
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: cfg.FetchTimeout,
		},
		attempts:   uint(cfg.FetchAttempts),
		retryDelay: cfg.FetchRetryDelay,
		metrics:    metrics,
		logger:     logger,
	}
}

// FetchObservations returns every METAR reported for stations within the
// configured look-back window. Server errors and transport failures are
// retried with exponential backoff; client errors are not.
func (c *Client) FetchObservations(ctx context.Context, stations []string) ([]domain.Observation, error) {
	if len(stations) == 0 {
		return nil, errors.New("no stations requested")
	}

	params := url.Values{
		"ids":    {strings.Join(stations, ",")},
		"format": {c.format},
		"hours":  {strconv.Itoa(c.hours)},
	}
	fullURL := c.baseURL + "?" + params.Encode()

	var observations []domain.Observation
	err := retry.Do(
		func() error {
			var err error
			observations, err = c.doRequest(ctx, fullURL)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("metar fetch failed, retrying",
				"attempt", n+1,
				"stations", params.Get("ids"),
				"error", err,
			)
		}),
	)
	if err != nil {
		return nil, err
	}
	return observations, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) ([]domain.Observation, error) {
	start := time.Now()
	observations, err := c.request(ctx, fullURL)
	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		return nil, err
	}
	c.metrics.FetchRequests.WithLabelValues("success").Inc()
	return observations, nil
}

func (c *Client) request(ctx context.Context, fullURL string) ([]domain.Observation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("metar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		apiErr := fmt.Errorf("aviationweather API error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, retry.Unrecoverable(apiErr)
		}
		return nil, apiErr
	}

	var result decodeResult
	switch c.format {
	case "json":
		result, err = decodeJSON(resp.Body)
	default:
		result, err = decodeXML(resp.Body)
	}
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("decode response: %w", err))
	}

	c.metrics.ObservationsReceived.Add(float64(len(result.observations)))
	if result.skipped > 0 {
		c.metrics.ObservationsSkipped.Add(float64(result.skipped))
		c.logger.Debug("skipped incomplete metar records", "count", result.skipped)
	}
	return result.observations, nil
}
