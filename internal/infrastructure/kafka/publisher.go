package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
	"github.com/arinherbz/chat-interferes-sub000/pkg/events"
	pkgkafka "github.com/arinherbz/chat-interferes-sub000/pkg/kafka"
)

// MessageWriter is satisfied by pkg/kafka.Producer.
type MessageWriter interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// Publisher implements port.EventPublisher using Kafka. Messages are keyed by
// aggregate id so one assessment's events stay ordered on a partition.
type Publisher struct {
	producer MessageWriter
	logger   *slog.Logger
	topic    string
}

var _ port.EventPublisher = (*Publisher)(nil)

// NewPublisher creates a new Kafka event publisher.
func NewPublisher(producer MessageWriter, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends domain events to Kafka.
func (p *Publisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(domainEvents))
	for _, evt := range domainEvents {
		eventType := evt.EventType()

		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", eventType, err)
		}

		p.logger.DebugContext(ctx, "publishing event",
			slog.String("event_type", eventType),
			slog.String("topic", p.topic),
			slog.Int("payload_size", len(payload)),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: payload,
			Headers: map[string]string{
				"event_type":     eventType,
				"event_id":       evt.EventID().String(),
				"aggregate_type": evt.AggregateType(),
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}

	return nil
}

// LogWriter is a MessageWriter for deployments without a broker. It logs
// each message instead of sending it.
type LogWriter struct {
	logger *slog.Logger
}

var _ MessageWriter = (*LogWriter)(nil)

func NewLogWriter(logger *slog.Logger) *LogWriter {
	return &LogWriter{logger: logger}
}

func (w *LogWriter) Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error {
	for _, m := range messages {
		w.logger.InfoContext(ctx, "event not sent, no broker configured",
			slog.String("topic", topic),
			slog.String("event_type", m.Headers["event_type"]),
			slog.String("key", string(m.Key)),
		)
	}
	return nil
}
