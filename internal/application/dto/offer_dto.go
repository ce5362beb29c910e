package dto

import (
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
)

// ValidateIdentityRequest is the input DTO for identity validation.
type ValidateIdentityRequest struct {
	Identity string `json:"identity"`
	// VisibleShop hides trade-in numbers of other shops when set.
	VisibleShop string `json:"-"`
}

// ValidateIdentityResponse reports format validity and any active trade-in.
type ValidateIdentityResponse struct {
	Identity        string `json:"identity"`
	ErrorCode       string `json:"error_code,omitempty"`
	Error           string `json:"error,omitempty"`
	Warning         string `json:"warning,omitempty"`
	ExistingTradeIn string `json:"existing_trade_in,omitempty"`
	Valid           bool   `json:"valid"`
	IsDuplicate     bool   `json:"is_duplicate"`
}

// CalculateOfferRequest is the input DTO for an offer preview. BaseValue,
// when set, overrides the stored base value; Identity, when set, runs the
// fraud guard without recording anything.
type CalculateOfferRequest struct {
	Answers   map[string]string `json:"answers"`
	BaseValue *string           `json:"base_value,omitempty"`
	Device    DeviceInput       `json:"device"`
	Locks     LockStatus        `json:"locks"`
	ShopID    string            `json:"shop_id"`
	Identity  string            `json:"identity,omitempty"`
}

// CalculateOfferResponse is the preview outcome.
type CalculateOfferResponse struct {
	RejectionReasons   []string            `json:"rejection_reasons"`
	DeductionBreakdown []DeductionResponse `json:"deduction_breakdown"`
	BaseValue          string              `json:"base_value"`
	CalculatedOffer    string              `json:"calculated_offer"`
	Currency           string              `json:"currency"`
	Decision           string              `json:"decision"`
	ConditionScore     int                 `json:"condition_score"`
}

// FromDeductions maps the breakdown to response lines.
func FromDeductions(in []valueobject.Deduction) []DeductionResponse {
	out := make([]DeductionResponse, 0, len(in))
	for _, d := range in {
		out = append(out, DeductionResponse{Question: d.Question, Points: d.Points})
	}
	return out
}
