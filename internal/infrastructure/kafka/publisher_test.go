package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/event"
	"github.com/arinherbz/chat-interferes-sub000/pkg/events"
	pkgkafka "github.com/arinherbz/chat-interferes-sub000/pkg/kafka"
)

type recordingWriter struct {
	topic    string
	messages []pkgkafka.Message
	err      error
}

func (w *recordingWriter) Publish(_ context.Context, topic string, messages ...pkgkafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.topic = topic
	w.messages = append(w.messages, messages...)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisher_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := NewPublisher(w, "tradein.events", discardLogger())

	id := uuid.New()
	evt := event.NewIdentityBlocked(id, "490154203237518", "fraud", "Reported stolen", "")

	require.NoError(t, p.Publish(context.Background(), evt))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "tradein.events", w.topic)
	assert.Equal(t, id.String(), string(msg.Key))
	assert.Equal(t, event.TypeIdentityBlocked, msg.Headers["event_type"])
	assert.Equal(t, evt.EventID().String(), msg.Headers["event_id"])

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, event.TypeIdentityBlocked, body["event_type"])
	assert.Equal(t, "490154203237518", body["identity"])
}

func TestPublisher_Empty(t *testing.T) {
	w := &recordingWriter{err: errors.New("must not be called")}
	p := NewPublisher(w, "tradein.events", discardLogger())
	assert.NoError(t, p.Publish(context.Background(), []events.DomainEvent{}...))
}

func TestPublisher_WriterError(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker unavailable")}
	p := NewPublisher(w, "tradein.events", discardLogger())

	err := p.Publish(context.Background(), event.NewIdentityBlocked(uuid.New(), "490154203237518", "fraud", "x", ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tradein.events")
}

func TestLogWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	p := NewPublisher(NewLogWriter(logger), "tradein.events", logger)

	id := uuid.New()
	require.NoError(t, p.Publish(context.Background(), event.NewIdentityBlocked(id, "490154203237518", "fraud", "x", "")))
	assert.Contains(t, buf.String(), event.TypeIdentityBlocked)
	assert.Contains(t, buf.String(), id.String())
}
