package kafka

import (
	"context"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/seismolab/vrancea-gmm/internal/config"
	"github.com/seismolab/vrancea-gmm/internal/gmm"
)

// Writer produces ground-motion fields to the sink topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch publishes multiple serialized fields in a single WriteMessages
// call for efficiency.
func (w *Writer) LoadBatch(ctx context.Context, msgs []gmm.OutputMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	kmsgs := make([]kafkago.Message, len(msgs))
	for i := range msgs {
		kmsgs[i] = toKafkaMessage(msgs[i])
	}
	return w.writer.WriteMessages(ctx, kmsgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// toKafkaMessage converts an already-serialized output message, carrying its
// headers across.
func toKafkaMessage(msg gmm.OutputMessage) kafkago.Message {
	headers := make([]kafkago.Header, 0, len(msg.Headers))
	for k, v := range msg.Headers {
		headers = append(headers, kafkago.Header{Key: k, Value: []byte(v)})
	}
	return kafkago.Message{
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
	}
}
