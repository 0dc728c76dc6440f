package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	AviationWeatherURL string
	FeedFormat         string
	TargetStation      string
	ReferenceStation   string
	TargetLabel        string
	ReferenceLabel     string
	HoursBeforeNow     int
	UserAgent          string

	FetchTimeout    time.Duration
	FetchAttempts   int
	FetchRetryDelay time.Duration

	// Observation cache; a zero TTL disables it.
	CacheTTL  time.Duration
	CacheSize int

	PollInterval time.Duration

	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Stations returns the target and reference station identifiers in request order.
func (c *Config) Stations() []string {
	return []string{c.TargetStation, c.ReferenceStation}
}

// LoadDotEnv loads variables from a .env file without overriding ones already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parsePositiveDuration("FETCH_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	retryDelay, err := parsePositiveDuration("FETCH_RETRY_DELAY", "500ms")
	if err != nil {
		return nil, err
	}
	pollInterval, err := parsePositiveDuration("POLL_INTERVAL", "10m")
	if err != nil {
		return nil, err
	}

	cacheTTL, err := time.ParseDuration(sharedcfg.EnvOrDefault("CACHE_TTL", "5m"))
	if err != nil || cacheTTL < 0 {
		return nil, errors.New("invalid CACHE_TTL")
	}

	hours, err := parseIntInRange("HOURS_BEFORE_NOW", 2, 1, 48)
	if err != nil {
		return nil, err
	}
	attempts, err := parseIntInRange("FETCH_ATTEMPTS", 3, 1, 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AviationWeatherURL: sharedcfg.EnvOrDefault("AVIATIONWEATHER_URL", "https://aviationweather.gov/api/data/metar"),
		FeedFormat:         strings.ToLower(sharedcfg.EnvOrDefault("FEED_FORMAT", "xml")),
		TargetStation:      strings.ToUpper(sharedcfg.EnvOrDefault("TARGET_STATION", "KMDW")),
		ReferenceStation:   strings.ToUpper(sharedcfg.EnvOrDefault("REFERENCE_STATION", "KRDU")),
		TargetLabel:        sharedcfg.EnvOrDefault("TARGET_LABEL", "Oak Park"),
		ReferenceLabel:     sharedcfg.EnvOrDefault("REFERENCE_LABEL", "Raleigh"),
		HoursBeforeNow:     hours,
		UserAgent:          sharedcfg.EnvOrDefault("USER_AGENT", "metar-compare"),

		FetchTimeout:    fetchTimeout,
		FetchAttempts:   attempts,
		FetchRetryDelay: retryDelay,

		CacheTTL:  cacheTTL,
		CacheSize: parseCacheSize(),

		PollInterval: pollInterval,

		KafkaEnabled: os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers: sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "station-temperature-comparisons"),

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints. Load calls it; commands call it
// again after applying flag overrides.
func (c *Config) Validate() error {
	if c.TargetStation == "" {
		return errors.New("TARGET_STATION is required")
	}
	if c.ReferenceStation == "" {
		return errors.New("REFERENCE_STATION is required")
	}
	if c.TargetStation == c.ReferenceStation {
		return errors.New("TARGET_STATION and REFERENCE_STATION must differ")
	}
	if c.FeedFormat != "xml" && c.FeedFormat != "json" {
		return fmt.Errorf("invalid FEED_FORMAT %q: must be xml or json", c.FeedFormat)
	}
	if c.AviationWeatherURL == "" {
		return errors.New("AVIATIONWEATHER_URL is required")
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if c.KafkaEnabled && c.KafkaTopic == "" {
		return errors.New("KAFKA_TOPIC is required when KAFKA_ENABLED is true")
	}
	return nil
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseIntInRange(key string, fallback, lo, hi int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("invalid %s: must be an integer between %d and %d", key, lo, hi)
	}
	return n, nil
}

func parseCacheSize() int {
	if s := os.Getenv("CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 16
}
