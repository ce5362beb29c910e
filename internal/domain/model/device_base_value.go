package model

import (
	"fmt"
	"strings"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
	"github.com/arinherbz/chat-interferes-sub000/pkg/money"
)

// DeviceBaseValue is the reference buy-back price for one configuration.
// An empty shopID is the default price list.
type DeviceBaseValue struct {
	shopID    string
	brand     string
	model     string
	storage   string
	baseValue money.Money
	isActive  bool
}

// NewDeviceBaseValue validates a price row.
func NewDeviceBaseValue(shopID, brand, model, storage string, baseValue money.Money, isActive bool) (DeviceBaseValue, error) {
	if strings.TrimSpace(brand) == "" || strings.TrimSpace(model) == "" || strings.TrimSpace(storage) == "" {
		return DeviceBaseValue{}, fmt.Errorf("brand, model and storage are required")
	}
	if !baseValue.IsPositive() {
		return DeviceBaseValue{}, fmt.Errorf("%s %s %s: base value must be positive", brand, model, storage)
	}
	return DeviceBaseValue{
		shopID:    shopID,
		brand:     brand,
		model:     model,
		storage:   storage,
		baseValue: baseValue,
		isActive:  isActive,
	}, nil
}

func (v DeviceBaseValue) ShopID() string         { return v.shopID }
func (v DeviceBaseValue) Brand() string          { return v.brand }
func (v DeviceBaseValue) Model() string          { return v.model }
func (v DeviceBaseValue) Storage() string        { return v.storage }
func (v DeviceBaseValue) BaseValue() money.Money { return v.baseValue }
func (v DeviceBaseValue) IsActive() bool         { return v.isActive }

// Matches reports an exact configuration match.
func (v DeviceBaseValue) Matches(d valueobject.DeviceDescriptor) bool {
	return v.brand == d.Brand && v.model == d.Model && v.storage == d.Storage
}
