package service

import (
	"fmt"

	"github.com/arinherbz/chat-interferes-sub000/pkg/money"
)

// OfferCalculator derives the offer from base value and condition score.
type OfferCalculator struct{}

// NewOfferCalculator creates a new OfferCalculator.
func NewOfferCalculator() *OfferCalculator {
	return &OfferCalculator{}
}

// Calculate returns base * score / 100 rounded half away from zero to whole
// currency units.
func (c *OfferCalculator) Calculate(base money.Money, score int) (money.Money, error) {
	if base.IsNegative() {
		return money.Money{}, fmt.Errorf("base value must not be negative")
	}
	if score < 0 || score > 100 {
		return money.Money{}, fmt.Errorf("score must be between 0 and 100, got %d", score)
	}
	return base.Percent(score), nil
}
