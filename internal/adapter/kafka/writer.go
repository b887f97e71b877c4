package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/quake-feed-service/internal/config"
	"github.com/couchcryptid/quake-feed-service/internal/domain"
	"github.com/couchcryptid/quake-feed-service/internal/observability"
	"github.com/couchcryptid/quake-feed-service/internal/store"
	jsoniter "github.com/json-iterator/go"
	kafkago "github.com/segmentio/kafka-go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Writer produces earthquake events to a Kafka topic.
type Writer struct {
	writer  *kafkago.Writer
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, metrics: metrics, logger: logger}
}

// Publish serializes events and writes them in a single WriteMessages call.
func (w *Writer) Publish(ctx context.Context, events []domain.EarthquakeEvent, fetchedAt time.Time) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(events))
	for i := range events {
		msg, err := serializeToMessage(events[i], fetchedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		w.metrics.PublishErrors.Inc()
		return fmt.Errorf("publish earthquake events: %w", err)
	}
	w.metrics.EventsPublished.Add(float64(len(msgs)))
	return nil
}

// Observer returns a store observer that publishes successful results.
// Failures are logged, never propagated to the store.
func (w *Writer) Observer(ctx context.Context) store.Observer {
	return func(res *store.Result) {
		if !res.OK() {
			return
		}
		if err := w.Publish(ctx, res.Events, res.FetchedAt); err != nil {
			w.logger.Error("kafka publish failed", "error", err, "events", len(res.Events))
			return
		}
		w.logger.Info("published earthquake events", "events", len(res.Events), "topic", w.writer.Topic)
	}
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an event into a Kafka message keyed by its
// detail URL, which USGS assigns per event.
func serializeToMessage(event domain.EarthquakeEvent, fetchedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize earthquake event: %w", err)
	}
	key := event.DetailURL
	if key == "" {
		key = strconv.FormatInt(event.Timestamp, 10) + "|" + event.Place
	}
	return kafkago.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "magnitude", Value: []byte(strconv.FormatFloat(event.Magnitude, 'f', -1, 64))},
			{Key: "fetched_at", Value: []byte(fetchedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
