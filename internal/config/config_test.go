package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://aviationweather.gov/api/data/metar", cfg.AviationWeatherURL)
	assert.Equal(t, "xml", cfg.FeedFormat)
	assert.Equal(t, "KMDW", cfg.TargetStation)
	assert.Equal(t, "KRDU", cfg.ReferenceStation)
	assert.Equal(t, "Oak Park", cfg.TargetLabel)
	assert.Equal(t, "Raleigh", cfg.ReferenceLabel)
	assert.Equal(t, 2, cfg.HoursBeforeNow)
	assert.Equal(t, "metar-compare", cfg.UserAgent)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 3, cfg.FetchAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.FetchRetryDelay)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 16, cfg.CacheSize)
	assert.Equal(t, 10*time.Minute, cfg.PollInterval)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "station-temperature-comparisons", cfg.KafkaTopic)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"KMDW", "KRDU"}, cfg.Stations())
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("AVIATIONWEATHER_URL", "http://localhost:9999/metar")
	t.Setenv("FEED_FORMAT", "JSON")
	t.Setenv("TARGET_STATION", "kord")
	t.Setenv("REFERENCE_STATION", "KATL")
	t.Setenv("TARGET_LABEL", "Chicago")
	t.Setenv("REFERENCE_LABEL", "Atlanta")
	t.Setenv("HOURS_BEFORE_NOW", "6")
	t.Setenv("USER_AGENT", "test-agent")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("FETCH_ATTEMPTS", "5")
	t.Setenv("FETCH_RETRY_DELAY", "1s")
	t.Setenv("CACHE_TTL", "0s")
	t.Setenv("CACHE_SIZE", "4")
	t.Setenv("POLL_INTERVAL", "1m")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "custom-topic")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/metar", cfg.AviationWeatherURL)
	assert.Equal(t, "json", cfg.FeedFormat)
	assert.Equal(t, "KORD", cfg.TargetStation)
	assert.Equal(t, "KATL", cfg.ReferenceStation)
	assert.Equal(t, "Chicago", cfg.TargetLabel)
	assert.Equal(t, "Atlanta", cfg.ReferenceLabel)
	assert.Equal(t, 6, cfg.HoursBeforeNow)
	assert.Equal(t, "test-agent", cfg.UserAgent)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 5, cfg.FetchAttempts)
	assert.Equal(t, time.Second, cfg.FetchRetryDelay)
	assert.Equal(t, time.Duration(0), cfg.CacheTTL)
	assert.Equal(t, 4, cfg.CacheSize)
	assert.Equal(t, time.Minute, cfg.PollInterval)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-topic", cfg.KafkaTopic)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"SHUTDOWN_TIMEOUT", "not-a-duration"},
		{"FETCH_TIMEOUT", "0s"},
		{"FETCH_RETRY_DELAY", "bad"},
		{"POLL_INTERVAL", "-1m"},
		{"CACHE_TTL", "-5m"},
		{"HOURS_BEFORE_NOW", "0"},
		{"HOURS_BEFORE_NOW", "49"},
		{"FETCH_ATTEMPTS", "many"},
		{"FEED_FORMAT", "csv"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_SameStations(t *testing.T) {
	t.Setenv("TARGET_STATION", "KRDU")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must differ")
}

func TestLoad_InvalidCacheSizeFallsBack(t *testing.T) {
	t.Setenv("CACHE_SIZE", "-3")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.CacheSize)
}

func TestValidate_KafkaTopicRequired(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.KafkaEnabled = true
	cfg.KafkaTopic = ""
	require.Error(t, cfg.Validate())
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("sets unset variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("TARGET_LABEL=Midway\nREFERENCE_STATION=KCLT\n"), 0o600))

		t.Setenv("TARGET_LABEL", "")
		t.Setenv("REFERENCE_STATION", "KGSO")
		os.Unsetenv("TARGET_LABEL")

		require.NoError(t, LoadDotEnv(path))

		assert.Equal(t, "Midway", os.Getenv("TARGET_LABEL"))
		assert.Equal(t, "KGSO", os.Getenv("REFERENCE_STATION"), "existing variables win")
	})
}
