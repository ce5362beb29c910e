package valueobject

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	tradeInPrefix = "TI-"

	// FirstTradeInSequence is the sequence value of the first trade-in.
	FirstTradeInSequence = 10001
)

// TradeInNumber is the human-facing reference printed on receipts, e.g. TI-10001.
type TradeInNumber struct {
	value string
}

// NewTradeInNumber formats a sequence value.
func NewTradeInNumber(seq int64) (TradeInNumber, error) {
	if seq < 1 {
		return TradeInNumber{}, fmt.Errorf("trade-in sequence must be positive, got %d", seq)
	}
	return TradeInNumber{value: fmt.Sprintf("%s%05d", tradeInPrefix, seq)}, nil
}

// ParseTradeInNumber validates a stored or user-entered number.
func ParseTradeInNumber(s string) (TradeInNumber, error) {
	digits, ok := strings.CutPrefix(s, tradeInPrefix)
	if !ok || len(digits) < 5 {
		return TradeInNumber{}, fmt.Errorf("invalid trade-in number: %q", s)
	}
	if _, err := strconv.ParseUint(digits, 10, 63); err != nil {
		return TradeInNumber{}, fmt.Errorf("invalid trade-in number: %q", s)
	}
	return TradeInNumber{value: s}, nil
}

func (n TradeInNumber) String() string { return n.value }
func (n TradeInNumber) IsZero() bool   { return n.value == "" }
