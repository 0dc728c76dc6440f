package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/metar-compare/internal/config"
	"github.com/couchcryptid/metar-compare/internal/domain"
)

// Writer produces comparison messages to a Kafka topic.
// It implements pipeline.ComparisonLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured comparison topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadComparison serializes and publishes a comparison.
func (w *Writer) LoadComparison(ctx context.Context, c domain.Comparison) error {
	msg, err := serializeToMessage(c)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write comparison: %w", err)
	}
	w.logger.Debug("comparison published", "topic", w.writer.Topic, "key", string(msg.Key))
	return nil
}

// Close flushes pending messages and closes the producer.
func (w *Writer) Close() error {
	return w.writer.Close()
}

// messageKey keys by station pair so one pair's comparisons stay ordered on a partition.
func messageKey(c domain.Comparison) string {
	return c.Target.StationID + ":" + c.Reference.StationID
}

// serializeToMessage marshals a Comparison into a Kafka message.
func serializeToMessage(c domain.Comparison) (kafkago.Message, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize comparison: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(messageKey(c)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "target_station", Value: []byte(c.Target.StationID)},
			{Key: "reference_station", Value: []byte(c.Reference.StationID)},
			{Key: "generated_at", Value: []byte(c.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
