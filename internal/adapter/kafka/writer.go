package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/athletics-rankings-etl/internal/config"
	"github.com/couchcryptid/athletics-rankings-etl/internal/domain"
	"github.com/couchcryptid/athletics-rankings-etl/internal/observability"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// Header keys set on every published record.
const (
	HeaderEventCode = "event_code"
	HeaderFetchedAt = "fetched_at"
	HeaderFetchID   = "fetch_id"
)

// messageWriter is the subset of *kafkago.Writer the sink uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes normalized records to a Kafka topic.
// It implements pipeline.Loader.
type Writer struct {
	writer  messageWriter
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger, metrics: metrics}
}

// Load publishes every record of a freshly fetched result set in a single
// WriteMessages call. All messages of one fetch share a fetch_id.
func (w *Writer) Load(ctx context.Context, rs domain.ResultSet) error {
	if len(rs.Records) == 0 {
		return nil
	}
	fetchID := uuid.NewString()
	msgs := make([]kafkago.Message, len(rs.Records))
	for i := range rs.Records {
		msg, err := serializeToMessage(rs.Event, fetchID, rs.FetchedAt, rs.Records[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %s records: %w", rs.Event, err)
	}
	w.metrics.RecordsPublished.Add(float64(len(msgs)))
	w.logger.Debug("records published", "event", rs.Event, "count", len(msgs), "fetch_id", fetchID)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a NormalizedRecord into a Kafka message keyed
// by event code and record ID.
func serializeToMessage(code, fetchID string, fetchedAt time.Time, rec domain.NormalizedRecord) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize record %s/%d: %w", code, rec.ID, err)
	}
	return kafkago.Message{
		Key:   []byte(code + "/" + strconv.Itoa(rec.ID)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: HeaderEventCode, Value: []byte(code)},
			{Key: HeaderFetchedAt, Value: []byte(fetchedAt.Format(time.RFC3339))},
			{Key: HeaderFetchID, Value: []byte(fetchID)},
		},
	}, nil
}
