package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// DefaultFeedBaseURL is the USGS FDSN event query endpoint.
const DefaultFeedBaseURL = "https://earthquake.usgs.gov/fdsnws/event/1/query"

// Config holds all service settings, populated from environment variables.
type Config struct {
	FeedBaseURL        string
	FeedConnectTimeout time.Duration
	FeedReadTimeout    time.Duration
	FeedUserAgent      string
	PreferencesFile    string
	ConnectivityCheck  bool

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka publishing of fetched events (enabled when brokers are set).
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}
	connectTimeout, err := parsePositiveDuration("FEED_CONNECT_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	readTimeout, err := parsePositiveDuration("FEED_READ_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		FeedBaseURL:        sharedcfg.EnvOrDefault("FEED_BASE_URL", DefaultFeedBaseURL),
		FeedConnectTimeout: connectTimeout,
		FeedReadTimeout:    readTimeout,
		FeedUserAgent:      sharedcfg.EnvOrDefault("FEED_USER_AGENT", "quake-feed-service/1.0"),
		PreferencesFile:    os.Getenv("PREFERENCES_FILE"),
		ConnectivityCheck:  sharedcfg.EnvOrDefault("CONNECTIVITY_CHECK", "true") == "true",
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		KafkaEnabled:       len(brokers) > 0,
		KafkaBrokers:       brokers,
		KafkaTopic:         sharedcfg.EnvOrDefault("KAFKA_TOPIC", "earthquake-events"),
	}

	if u, err := url.Parse(cfg.FeedBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid FEED_BASE_URL %q", cfg.FeedBaseURL)
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}
