package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/seismolab/vrancea-gmm/internal/config"
	"github.com/seismolab/vrancea-gmm/internal/gmm"
)

// Reader consumes rupture scenarios from the source topic.
// It implements pipeline.BatchExtractor.
type Reader struct {
	reader        *kafkago.Reader
	flushInterval time.Duration
	logger        *slog.Logger
}

// NewReader creates a consumer-group reader for the configured source topic.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    cfg.KafkaSourceTopic,
		GroupID:  cfg.KafkaGroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  cfg.BatchFlushInterval,
	})
	return &Reader{reader: r, flushInterval: cfg.BatchFlushInterval, logger: logger}
}

// ExtractBatch fetches up to batchSize scenarios, returning early once the
// flush interval elapses so a trickle of messages still flows through the
// pipeline. A partial (or empty) batch is not an error.
func (r *Reader) ExtractBatch(ctx context.Context, batchSize int) ([]gmm.RawScenario, error) {
	batchCtx, cancel := context.WithTimeout(ctx, r.flushInterval)
	defer cancel()

	batch := make([]gmm.RawScenario, 0, batchSize)
	for len(batch) < batchSize {
		msg, err := r.reader.FetchMessage(batchCtx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				break // flush interval elapsed
			}
			if ctx.Err() != nil {
				return batch, ctx.Err()
			}
			return nil, err
		}
		batch = append(batch, r.mapToRawScenario(msg))
	}
	return batch, nil
}

func (r *Reader) mapToRawScenario(msg kafkago.Message) gmm.RawScenario {
	raw := mapMessageToRawScenario(msg)
	raw.Commit = func(ctx context.Context) error {
		return r.reader.CommitMessages(ctx, msg)
	}
	return raw
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

// mapMessageToRawScenario converts a Kafka message into the domain's raw
// scenario form. The commit callback is attached by the Reader.
func mapMessageToRawScenario(msg kafkago.Message) gmm.RawScenario {
	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	return gmm.RawScenario{
		Key:       msg.Key,
		Value:     msg.Value,
		Headers:   headers,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
	}
}
