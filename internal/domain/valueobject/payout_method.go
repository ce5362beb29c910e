package valueobject

import "fmt"

// PayoutMethod is how a completed trade-in was paid.
type PayoutMethod string

const (
	PayoutCash         PayoutMethod = "cash"
	PayoutMobileMoney  PayoutMethod = "mobile_money"
	PayoutBankTransfer PayoutMethod = "bank_transfer"
	PayoutStoreCredit  PayoutMethod = "store_credit"
)

// ParsePayoutMethod validates a payout method.
func ParsePayoutMethod(s string) (PayoutMethod, error) {
	switch m := PayoutMethod(s); m {
	case PayoutCash, PayoutMobileMoney, PayoutBankTransfer, PayoutStoreCredit:
		return m, nil
	}
	return "", fmt.Errorf("invalid payout method: %q", s)
}

// RequiresReference reports whether the method leaves a transaction
// reference that must be recorded.
func (m PayoutMethod) RequiresReference() bool {
	return m == PayoutMobileMoney || m == PayoutBankTransfer
}

func (m PayoutMethod) String() string { return string(m) }
