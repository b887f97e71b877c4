package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/quake-feed-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/quake-feed-service/internal/adapter/kafka"
	"github.com/couchcryptid/quake-feed-service/internal/adapter/netcheck"
	"github.com/couchcryptid/quake-feed-service/internal/adapter/usgs"
	"github.com/couchcryptid/quake-feed-service/internal/config"
	"github.com/couchcryptid/quake-feed-service/internal/observability"
	"github.com/couchcryptid/quake-feed-service/internal/preferences"
	"github.com/couchcryptid/quake-feed-service/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	prefs := preferences.Chain{preferences.DefaultEnv}
	if cfg.PreferencesFile != "" {
		file, err := preferences.LoadFile(cfg.PreferencesFile)
		if err != nil {
			logger.Error("failed to load preferences", "error", err)
			os.Exit(1)
		}
		prefs = append(prefs, file)
	}
	prefs = append(prefs, preferences.Defaults)

	query, err := preferences.QueryConfig(prefs)
	if err != nil {
		logger.Error("invalid feed preferences", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := usgs.NewClient(cfg.FeedConnectTimeout, cfg.FeedReadTimeout, cfg.FeedUserAgent, metrics, logger)
	events := store.New(cfg.FeedBaseURL, client, logger, metrics)

	// Optional Kafka publishing (enabled via KAFKA_BROKERS).
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, metrics, logger)
		events.Subscribe(writer.Observer(ctx))
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	}

	if cfg.ConnectivityCheck && !netcheck.Online(ctx, cfg.FeedBaseURL, cfg.FeedConnectTimeout) {
		logger.Warn("no internet connection, feed not requested", "url", cfg.FeedBaseURL)
	} else if err := events.Activate(ctx, query); err != nil {
		logger.Error("failed to activate event store", "error", err)
		os.Exit(1)
	} else {
		logger.Info("event store activated",
			"session_id", events.SessionID(),
			"min_magnitude", query.MinMagnitude,
			"order_by", query.OrderBy,
		)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, events, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
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
