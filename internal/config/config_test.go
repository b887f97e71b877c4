package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultFeedBaseURL, cfg.FeedBaseURL)
	assert.Equal(t, 15*time.Second, cfg.FeedConnectTimeout)
	assert.Equal(t, 10*time.Second, cfg.FeedReadTimeout)
	assert.Equal(t, "quake-feed-service/1.0", cfg.FeedUserAgent)
	assert.Empty(t, cfg.PreferencesFile)
	assert.True(t, cfg.ConnectivityCheck)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.KafkaEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "earthquake-events", cfg.KafkaTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("FEED_BASE_URL", "http://localhost:9000/query")
	t.Setenv("FEED_CONNECT_TIMEOUT", "2s")
	t.Setenv("FEED_READ_TIMEOUT", "500ms")
	t.Setenv("FEED_USER_AGENT", "test-agent")
	t.Setenv("PREFERENCES_FILE", "/etc/quake/prefs.toml")
	t.Setenv("CONNECTIVITY_CHECK", "false")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "quakes")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/query", cfg.FeedBaseURL)
	assert.Equal(t, 2*time.Second, cfg.FeedConnectTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.FeedReadTimeout)
	assert.Equal(t, "test-agent", cfg.FeedUserAgent)
	assert.Equal(t, "/etc/quake/prefs.toml", cfg.PreferencesFile)
	assert.False(t, cfg.ConnectivityCheck)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "quakes", cfg.KafkaTopic)
}

func TestLoad_InvalidDurations(t *testing.T) {
	for _, key := range []string{"SHUTDOWN_TIMEOUT", "FEED_CONNECT_TIMEOUT", "FEED_READ_TIMEOUT"} {
		t.Run(key+" not a duration", func(t *testing.T) {
			t.Setenv(key, "not-a-duration")
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
		t.Run(key+" negative", func(t *testing.T) {
			t.Setenv(key, "-1s")
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_InvalidFeedBaseURL(t *testing.T) {
	t.Setenv("FEED_BASE_URL", "not a url")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FEED_BASE_URL")
}
