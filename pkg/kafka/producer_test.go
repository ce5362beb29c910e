package kafka

import (
	"context"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer(t *testing.T) {
	t.Run("requires brokers", func(t *testing.T) {
		_, err := NewProducer(Config{})
		require.Error(t, err)
	})

	t.Run("rejects unknown SASL mechanism", func(t *testing.T) {
		_, err := NewProducer(Config{
			Brokers:       []string{"localhost:9092"},
			SASLEnabled:   true,
			SASLMechanism: "GSSAPI",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GSSAPI")
	})

	t.Run("configures plain SASL and TLS on the transport", func(t *testing.T) {
		p, err := NewProducer(Config{
			Brokers:      []string{"kafka-1:9092", "kafka-2:9092"},
			TLS:          true,
			SASLEnabled:  true,
			SASLUsername: "tradeind",
			SASLPassword: "secret",
		})
		require.NoError(t, err)
		assert.Len(t, p.brokers, 2)
		require.NotNil(t, p.transport.TLS)
		assert.Equal(t, plain.Mechanism{Username: "tradeind", Password: "secret"}, p.transport.SASL)
	})
}

func TestProducer_WriterReusedPerTopic(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)

	w1 := p.writer("tradein.events")
	w2 := p.writer("tradein.events")
	w3 := p.writer("tradein.blocklist")

	assert.Same(t, w1, w2)
	assert.NotSame(t, w1, w3)
	assert.Equal(t, kafkago.RequireAll, w1.RequiredAcks)

	require.NoError(t, p.Close())
	assert.Empty(t, p.writers)
}

func TestProducer_PublishNothingIsNoop(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)

	require.NoError(t, p.Publish(context.Background(), "tradein.events"))
	assert.Empty(t, p.writers)
}

func TestMessageConversion(t *testing.T) {
	msgs := toKafkaMessages([]Message{{
		Key:     []byte("TI-10001"),
		Value:   []byte(`{"score":85}`),
		Headers: map[string]string{"event_type": "tradein.assessment.submitted"},
	}})
	require.Len(t, msgs, 1)
	require.Len(t, msgs[0].Headers, 1)
	assert.Equal(t, "event_type", msgs[0].Headers[0].Key)

	back := fromKafkaMessage(msgs[0])
	assert.Equal(t, "TI-10001", string(back.Key))
	assert.Equal(t, "tradein.assessment.submitted", back.Headers["event_type"])
}

func TestNewConsumer_RequiresGroup(t *testing.T) {
	_, err := NewConsumer(Config{Brokers: []string{"localhost:9092"}}, "topic", nil, nil)
	require.Error(t, err)
}
