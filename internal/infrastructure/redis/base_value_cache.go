package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
	"github.com/arinherbz/chat-interferes-sub000/pkg/money"
)

const baseValueKeyPrefix = "tradein:base_value:"

type cachedBaseValue struct {
	ShopID   string `json:"shop_id"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// BaseValueCache is a read-through cache in front of a BaseValueRepository.
// Redis failures degrade to the backing repository.
type BaseValueCache struct {
	client *redis.Client
	next   port.BaseValueRepository
	logger *slog.Logger
	ttl    time.Duration
}

var _ port.BaseValueRepository = (*BaseValueCache)(nil)

func NewBaseValueCache(client *redis.Client, next port.BaseValueRepository, ttl time.Duration, logger *slog.Logger) *BaseValueCache {
	return &BaseValueCache{client: client, next: next, ttl: ttl, logger: logger}
}

func (c *BaseValueCache) FindBaseValue(
	ctx context.Context,
	shopID string,
	device valueobject.DeviceDescriptor,
) (model.DeviceBaseValue, error) {
	key := baseValueKey(shopID, device)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		v, decodeErr := decodeBaseValue(raw, device)
		if decodeErr == nil {
			return v, nil
		}
		c.logger.WarnContext(ctx, "discarding corrupt base value cache entry", "key", key, "error", decodeErr)
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "base value cache read failed", "key", key, "error", err)
	}

	v, err := c.next.FindBaseValue(ctx, shopID, device)
	if err != nil {
		return model.DeviceBaseValue{}, err
	}

	payload, err := json.Marshal(cachedBaseValue{
		ShopID:   v.ShopID(),
		Amount:   v.BaseValue().Amount().String(),
		Currency: v.BaseValue().Currency().Code(),
	})
	if err == nil {
		err = c.client.Set(ctx, key, payload, c.ttl).Err()
	}
	if err != nil {
		c.logger.WarnContext(ctx, "base value cache write failed", "key", key, "error", err)
	}
	return v, nil
}

// Invalidate drops every cached base value.
func (c *BaseValueCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, baseValueKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan base value cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func baseValueKey(shopID string, d valueobject.DeviceDescriptor) string {
	return baseValueKeyPrefix + strings.Join([]string{shopID, d.Brand, d.Model, d.Storage}, "|")
}

func decodeBaseValue(raw []byte, device valueobject.DeviceDescriptor) (model.DeviceBaseValue, error) {
	var cached cachedBaseValue
	if err := json.Unmarshal(raw, &cached); err != nil {
		return model.DeviceBaseValue{}, err
	}
	amount, err := money.Parse(cached.Amount, cached.Currency)
	if err != nil {
		return model.DeviceBaseValue{}, err
	}
	return model.NewDeviceBaseValue(cached.ShopID, device.Brand, device.Model, device.Storage, amount, true)
}
