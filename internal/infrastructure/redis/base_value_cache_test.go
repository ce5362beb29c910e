package redis

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
	"github.com/arinherbz/chat-interferes-sub000/pkg/money"
)

type countingRepo struct {
	calls int
	value model.DeviceBaseValue
	err   error
}

func (r *countingRepo) FindBaseValue(_ context.Context, _ string, _ valueobject.DeviceDescriptor) (model.DeviceBaseValue, error) {
	r.calls++
	return r.value, r.err
}

func testDevice(t *testing.T) valueobject.DeviceDescriptor {
	t.Helper()
	d, err := valueobject.NewDeviceDescriptor("Apple", "iPhone 14 Pro", "256GB", "")
	require.NoError(t, err)
	return d
}

func TestBaseValueKey(t *testing.T) {
	d := testDevice(t)
	assert.Equal(t, "tradein:base_value:kampala-1|Apple|iPhone 14 Pro|256GB", baseValueKey("kampala-1", d))
	assert.NotEqual(t, baseValueKey("", d), baseValueKey("kampala-1", d))
}

func TestDecodeBaseValue(t *testing.T) {
	d := testDevice(t)

	v, err := decodeBaseValue([]byte(`{"shop_id":"","amount":"4000000","currency":"UGX"}`), d)
	require.NoError(t, err)
	assert.True(t, v.BaseValue().Equal(money.NewFromInt(4_000_000, money.UGX)))
	assert.True(t, v.Matches(d))

	_, err = decodeBaseValue([]byte(`not json`), d)
	assert.Error(t, err)
	_, err = decodeBaseValue([]byte(`{"amount":"-1","currency":"UGX"}`), d)
	assert.Error(t, err)
}

func TestBaseValueCache_FallsBackWhenRedisIsDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })

	d := testDevice(t)
	want, err := model.NewDeviceBaseValue("", d.Brand, d.Model, d.Storage, money.NewFromInt(4_000_000, money.UGX), true)
	require.NoError(t, err)
	next := &countingRepo{value: want}
	cache := NewBaseValueCache(client, next, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))

	got, err := cache.FindBaseValue(context.Background(), "kampala-1", d)
	require.NoError(t, err)
	assert.True(t, want.BaseValue().Equal(got.BaseValue()))
	assert.Equal(t, 1, next.calls)

	t.Run("repository errors pass through", func(t *testing.T) {
		next := &countingRepo{err: domainerr.ErrUnknownDeviceConfiguration}
		cache := NewBaseValueCache(client, next, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
		_, err := cache.FindBaseValue(context.Background(), "kampala-1", d)
		assert.ErrorIs(t, err, domainerr.ErrUnknownDeviceConfiguration)
	})
}
