package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
)

// ListAuditTrailRequest is the input DTO for reading an audit trail.
type ListAuditTrailRequest struct {
	AssessmentID uuid.UUID `json:"assessment_id"`
}

// AuditEntryResponse is one audit record.
type AuditEntryResponse struct {
	Timestamp     time.Time                 `json:"timestamp"`
	PreviousState *model.AssessmentSnapshot `json:"previous_state,omitempty"`
	NewState      model.AssessmentSnapshot  `json:"new_state"`
	Action        string                    `json:"action"`
	Actor         string                    `json:"actor"`
	Notes         string                    `json:"notes,omitempty"`
	PrevHash      string                    `json:"prev_hash"`
	Hash          string                    `json:"hash"`
	Sequence      int                       `json:"sequence"`
	ID            uuid.UUID                 `json:"id"`
}

// AuditTrailResponse is an assessment's trail and its verification result.
type AuditTrailResponse struct {
	Entries           []AuditEntryResponse `json:"entries"`
	VerificationError string               `json:"verification_error,omitempty"`
	Verified          bool                 `json:"verified"`
	AssessmentID      uuid.UUID            `json:"assessment_id"`
}

// FromAuditEntry maps an audit entry to the response DTO.
func FromAuditEntry(e model.AuditLogEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:            e.ID,
		Sequence:      e.Sequence,
		Action:        string(e.Action),
		PreviousState: e.PreviousState,
		NewState:      e.NewState,
		Actor:         e.Actor,
		Notes:         e.Notes,
		Timestamp:     e.Timestamp,
		PrevHash:      e.PrevHash,
		Hash:          e.Hash,
	}
}

// BlockIdentityRequest is the input DTO for adding a fraud block.
type BlockIdentityRequest struct {
	Identity string `json:"identity"`
	Reason   string `json:"reason"`
	Actor    string `json:"-"`
}

// BlockedIdentityResponse is a blocklist entry.
type BlockedIdentityResponse struct {
	BlockedAt       time.Time `json:"blocked_at"`
	Identity        string    `json:"identity"`
	Kind            string    `json:"kind"`
	Reason          string    `json:"reason"`
	ReferenceNumber string    `json:"reference_number,omitempty"`
	BlockedBy       string    `json:"blocked_by"`
	ID              uuid.UUID `json:"id"`
}

// FromBlockedIdentity maps a blocklist entry to the response DTO.
func FromBlockedIdentity(b model.BlockedIdentity) BlockedIdentityResponse {
	return BlockedIdentityResponse{
		ID:              b.ID(),
		Identity:        b.Identity(),
		Kind:            string(b.Kind()),
		Reason:          b.Reason(),
		ReferenceNumber: b.ReferenceNumber(),
		BlockedBy:       b.BlockedBy(),
		BlockedAt:       b.BlockedAt(),
	}
}

// QuestionResponse is a condition question as shown on the form.
type QuestionResponse struct {
	ID       string           `json:"id"`
	Text     string           `json:"text"`
	Category string           `json:"category"`
	Options  []OptionResponse `json:"options"`
	Required bool             `json:"required"`
	Critical bool             `json:"critical"`
}

// OptionResponse is a selectable answer.
type OptionResponse struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Deduction   int    `json:"deduction"`
	IsRejection bool   `json:"is_rejection"`
}

// FromQuestion maps a condition question to the response DTO.
func FromQuestion(q model.ConditionQuestion) QuestionResponse {
	opts := q.Options()
	out := QuestionResponse{
		ID:       q.ID(),
		Text:     q.Text(),
		Category: string(q.Category()),
		Required: q.Required(),
		Critical: q.Critical(),
		Options:  make([]OptionResponse, 0, len(opts)),
	}
	for _, o := range opts {
		out.Options = append(out.Options, OptionResponse{
			Value:       o.Value(),
			Label:       o.Label(),
			Deduction:   o.Deduction(),
			IsRejection: o.IsRejection(),
		})
	}
	return out
}
