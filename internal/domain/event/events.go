package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/arinherbz/chat-interferes-sub000/pkg/events"
)

const aggregateType = "TradeInAssessment"

// Event types.
const (
	TypeAssessmentSubmitted  = "tradein.assessment.submitted"
	TypeAssessmentReviewed   = "tradein.assessment.reviewed"
	TypePayoutCompleted      = "tradein.assessment.payout_completed"
	TypeAssessmentCancelled  = "tradein.assessment.cancelled"
	TypeIdentityBlocked      = "tradein.identity.blocked"
	blockedIdentityAggregate = "BlockedIdentity"
)

// AssessmentSubmitted is emitted when a new assessment is persisted.
type AssessmentSubmitted struct {
	events.BaseEvent
	TradeInNumber    string   `json:"trade_in_number"`
	ShopID           string   `json:"shop_id"`
	Identity         string   `json:"identity"`
	Brand            string   `json:"brand"`
	Model            string   `json:"model"`
	Storage          string   `json:"storage"`
	ConditionScore   int      `json:"condition_score"`
	CalculatedOffer  string   `json:"calculated_offer"`
	Currency         string   `json:"currency"`
	Decision         string   `json:"decision"`
	Status           string   `json:"status"`
	RejectionReasons []string `json:"rejection_reasons,omitempty"`
}

func NewAssessmentSubmitted(
	id uuid.UUID,
	number, shopID, identity, brand, model, storage string,
	score int,
	offer, currency, decision, status string,
	reasons []string,
) AssessmentSubmitted {
	return AssessmentSubmitted{
		BaseEvent:        events.NewBaseEvent(TypeAssessmentSubmitted, id, aggregateType),
		TradeInNumber:    number,
		ShopID:           shopID,
		Identity:         identity,
		Brand:            brand,
		Model:            model,
		Storage:          storage,
		ConditionScore:   score,
		CalculatedOffer:  offer,
		Currency:         currency,
		Decision:         decision,
		Status:           status,
		RejectionReasons: reasons,
	}
}

// AssessmentReviewed is emitted when a reviewer settles a pending assessment.
type AssessmentReviewed struct {
	events.BaseEvent
	TradeInNumber string    `json:"trade_in_number"`
	Verdict       string    `json:"verdict"`
	Status        string    `json:"status"`
	FinalOffer    string    `json:"final_offer,omitempty"`
	ReviewedBy    string    `json:"reviewed_by"`
	ReviewedAt    time.Time `json:"reviewed_at"`
}

func NewAssessmentReviewed(id uuid.UUID, number, verdict, status, finalOffer, reviewedBy string, reviewedAt time.Time) AssessmentReviewed {
	return AssessmentReviewed{
		BaseEvent:     events.NewBaseEvent(TypeAssessmentReviewed, id, aggregateType),
		TradeInNumber: number,
		Verdict:       verdict,
		Status:        status,
		FinalOffer:    finalOffer,
		ReviewedBy:    reviewedBy,
		ReviewedAt:    reviewedAt,
	}
}

// PayoutCompleted is emitted when the seller has been paid.
type PayoutCompleted struct {
	events.BaseEvent
	TradeInNumber string    `json:"trade_in_number"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	Method        string    `json:"method"`
	Reference     string    `json:"reference,omitempty"`
	CompletedAt   time.Time `json:"completed_at"`
}

func NewPayoutCompleted(id uuid.UUID, number, amount, currency, method, reference string, completedAt time.Time) PayoutCompleted {
	return PayoutCompleted{
		BaseEvent:     events.NewBaseEvent(TypePayoutCompleted, id, aggregateType),
		TradeInNumber: number,
		Amount:        amount,
		Currency:      currency,
		Method:        method,
		Reference:     reference,
		CompletedAt:   completedAt,
	}
}

// AssessmentCancelled is emitted when an assessment is withdrawn.
type AssessmentCancelled struct {
	events.BaseEvent
	TradeInNumber  string `json:"trade_in_number"`
	PreviousStatus string `json:"previous_status"`
	Reason         string `json:"reason"`
}

func NewAssessmentCancelled(id uuid.UUID, number, previousStatus, reason string) AssessmentCancelled {
	return AssessmentCancelled{
		BaseEvent:      events.NewBaseEvent(TypeAssessmentCancelled, id, aggregateType),
		TradeInNumber:  number,
		PreviousStatus: previousStatus,
		Reason:         reason,
	}
}

// IdentityBlocked is emitted when a blocklist entry is appended.
type IdentityBlocked struct {
	events.BaseEvent
	Identity        string `json:"identity"`
	Kind            string `json:"kind"`
	Reason          string `json:"reason"`
	ReferenceNumber string `json:"reference_number,omitempty"`
}

func NewIdentityBlocked(id uuid.UUID, identity, kind, reason, reference string) IdentityBlocked {
	return IdentityBlocked{
		BaseEvent:       events.NewBaseEvent(TypeIdentityBlocked, id, blockedIdentityAggregate),
		Identity:        identity,
		Kind:            kind,
		Reason:          reason,
		ReferenceNumber: reference,
	}
}
