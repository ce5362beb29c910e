package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
)

// AuditAction names the transition an audit entry records.
type AuditAction string

const (
	AuditCreated         AuditAction = "created"
	AuditReviewed        AuditAction = "reviewed"
	AuditPayoutCompleted AuditAction = "payout_completed"
	AuditCancelled       AuditAction = "cancelled"
)

// ParseAuditAction validates a stored action.
func ParseAuditAction(s string) (AuditAction, error) {
	switch a := AuditAction(s); a {
	case AuditCreated, AuditReviewed, AuditPayoutCompleted, AuditCancelled:
		return a, nil
	}
	return "", fmt.Errorf("invalid audit action: %q", s)
}

// ErrAuditChainBroken is returned by VerifyChain when the chain was altered.
var ErrAuditChainBroken = errors.New("audit chain broken")

// AssessmentSnapshot is the full state of an assessment captured in an audit
// entry. Timestamps are UTC so the JSON form, and therefore the hash, survives
// a storage round trip.
type AssessmentSnapshot struct {
	ID                 uuid.UUID               `json:"id"`
	TradeInNumber      string                  `json:"trade_in_number"`
	ShopID             string                  `json:"shop_id"`
	Identity           string                  `json:"identity"`
	Brand              string                  `json:"brand"`
	Model              string                  `json:"model"`
	Storage            string                  `json:"storage"`
	Color              string                  `json:"color,omitempty"`
	SerialNumber       string                  `json:"serial_number,omitempty"`
	CustomerName       string                  `json:"customer_name"`
	CustomerPhone      string                  `json:"customer_phone"`
	CustomerEmail      string                  `json:"customer_email,omitempty"`
	Answers            map[string]string       `json:"answers"`
	BaseValue          string                  `json:"base_value"`
	Currency           string                  `json:"currency"`
	ConditionScore     int                     `json:"condition_score"`
	CalculatedOffer    string                  `json:"calculated_offer"`
	FinalOffer         string                  `json:"final_offer,omitempty"`
	Decision           string                  `json:"decision"`
	RejectionReasons   []string                `json:"rejection_reasons"`
	DeductionBreakdown []valueobject.Deduction `json:"deduction_breakdown"`
	Status             string                  `json:"status"`
	PayoutMethod       string                  `json:"payout_method,omitempty"`
	PayoutReference    string                  `json:"payout_reference,omitempty"`
	CreatedBy          string                  `json:"created_by"`
	ReviewedBy         string                  `json:"reviewed_by,omitempty"`
	ReviewedAt         *time.Time              `json:"reviewed_at,omitempty"`
	ReviewNotes        string                  `json:"review_notes,omitempty"`
	CompletedAt        *time.Time              `json:"completed_at,omitempty"`
	CancelledAt        *time.Time              `json:"cancelled_at,omitempty"`
	CancelReason       string                  `json:"cancel_reason,omitempty"`
	Version            int                     `json:"version"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}

// AuditLogEntry is one immutable record in an assessment's audit trail.
// Entries form a hash chain: each Hash covers the entry's content and the
// Hash of the entry before it.
type AuditLogEntry struct {
	ID            uuid.UUID
	AssessmentID  uuid.UUID
	Sequence      int
	Action        AuditAction
	PreviousState *AssessmentSnapshot
	NewState      AssessmentSnapshot
	Actor         string
	Notes         string
	Timestamp     time.Time
	PrevHash      string
	Hash          string
}

// NewAuditLogEntry builds an unsealed entry. Call Seal before persisting.
func NewAuditLogEntry(
	assessmentID uuid.UUID,
	action AuditAction,
	previous *AssessmentSnapshot,
	next AssessmentSnapshot,
	actor, notes string,
) AuditLogEntry {
	return AuditLogEntry{
		ID:            uuid.New(),
		AssessmentID:  assessmentID,
		Action:        action,
		PreviousState: previous,
		NewState:      next,
		Actor:         actor,
		Notes:         notes,
		Timestamp:     now(),
	}
}

// Seal links the entry after prev (nil for the first entry) and computes its hash.
func (e *AuditLogEntry) Seal(prev *AuditLogEntry) error {
	if prev == nil {
		e.Sequence = 1
		e.PrevHash = ""
	} else {
		if prev.AssessmentID != e.AssessmentID {
			return fmt.Errorf("cannot chain entry of %s after entry of %s", e.AssessmentID, prev.AssessmentID)
		}
		e.Sequence = prev.Sequence + 1
		e.PrevHash = prev.Hash
	}
	h, err := e.computeHash()
	if err != nil {
		return err
	}
	e.Hash = h
	return nil
}

type hashedEntry struct {
	ID            string              `json:"id"`
	AssessmentID  string              `json:"assessment_id"`
	Sequence      int                 `json:"sequence"`
	Action        string              `json:"action"`
	PreviousState *AssessmentSnapshot `json:"previous_state"`
	NewState      AssessmentSnapshot  `json:"new_state"`
	Actor         string              `json:"actor"`
	Notes         string              `json:"notes"`
	Timestamp     string              `json:"timestamp"`
}

func (e *AuditLogEntry) computeHash() (string, error) {
	body, err := json.Marshal(hashedEntry{
		ID:            e.ID.String(),
		AssessmentID:  e.AssessmentID.String(),
		Sequence:      e.Sequence,
		Action:        string(e.Action),
		PreviousState: e.PreviousState,
		NewState:      e.NewState,
		Actor:         e.Actor,
		Notes:         e.Notes,
		Timestamp:     e.Timestamp.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return "", fmt.Errorf("marshal audit entry: %w", err)
	}
	sum := sha256.New()
	sum.Write([]byte(e.PrevHash))
	sum.Write(body)
	return hex.EncodeToString(sum.Sum(nil)), nil
}

// VerifyChain checks that entries, ordered by sequence, form an unbroken
// chain for a single assessment.
func VerifyChain(entries []AuditLogEntry) error {
	prevHash := ""
	for i := range entries {
		e := &entries[i]
		if e.Sequence != i+1 {
			return fmt.Errorf("%w: entry %d has sequence %d", ErrAuditChainBroken, i+1, e.Sequence)
		}
		if i > 0 && e.AssessmentID != entries[0].AssessmentID {
			return fmt.Errorf("%w: entry %d belongs to another assessment", ErrAuditChainBroken, e.Sequence)
		}
		if e.PrevHash != prevHash {
			return fmt.Errorf("%w: entry %d does not link to its predecessor", ErrAuditChainBroken, e.Sequence)
		}
		h, err := e.computeHash()
		if err != nil {
			return err
		}
		if h != e.Hash {
			return fmt.Errorf("%w: entry %d content does not match its hash", ErrAuditChainBroken, e.Sequence)
		}
		prevHash = e.Hash
	}
	return nil
}
