package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/event"
	"github.com/arinherbz/chat-interferes-sub000/internal/infrastructure/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadCatalog(t *testing.T) {
	t.Run("applies configured thresholds", func(t *testing.T) {
		cat, err := loadCatalog(config.EngineConfig{AcceptMinScore: 80, RejectMaxScore: 20})
		require.NoError(t, err)
		assert.Equal(t, 80, cat.DefaultRule().AcceptMin())
		assert.Equal(t, 20, cat.DefaultRule().RejectMax())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadCatalog(config.EngineConfig{CatalogFile: "/does/not/exist.yaml", AcceptMinScore: 70, RejectMaxScore: 30})
		require.Error(t, err)
	})
}

func TestOpenStorage_Memory(t *testing.T) {
	cat, err := loadCatalog(config.EngineConfig{AcceptMinScore: 70, RejectMaxScore: 30})
	require.NoError(t, err)

	cfg := config.Config{Storage: config.StorageConfig{Driver: config.StorageMemory}}
	st, err := openStorage(context.Background(), cfg, cat, discardLogger())
	require.NoError(t, err)
	defer st.close()

	assert.NotNil(t, st.assessments)
	assert.NotNil(t, st.reference.Questions)
	assert.Empty(t, st.checks)
}

func TestNewPublisher_WithoutBrokers(t *testing.T) {
	pub, release, err := newPublisher(config.KafkaConfig{Topic: "tradein.events"}, discardLogger())
	require.NoError(t, err)
	defer release()

	assert.NoError(t, pub.Publish(context.Background(),
		event.NewIdentityBlocked(uuid.New(), "490154203237518", "fraud", "reported stolen", "")))
}
