package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
)

// DeviceInput describes the device configuration in a request.
type DeviceInput struct {
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Storage string `json:"storage"`
	Color   string `json:"color,omitempty"`
}

// CustomerInput identifies the seller in a request.
type CustomerInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// LockStatus carries the lock flags observed on the device.
type LockStatus struct {
	IdentityLockEnabled  bool `json:"identity_lock_enabled"`
	SecondaryLockEnabled bool `json:"secondary_lock_enabled"`
}

// SubmitAssessmentRequest is the input DTO for the SubmitAssessment use case.
type SubmitAssessmentRequest struct {
	Answers      map[string]string `json:"answers"`
	Device       DeviceInput       `json:"device"`
	Customer     CustomerInput     `json:"customer"`
	Locks        LockStatus        `json:"locks"`
	ShopID       string            `json:"shop_id"`
	Identity     string            `json:"identity"`
	SerialNumber string            `json:"serial_number,omitempty"`
	Actor        string            `json:"-"`
	VisibleShop  string            `json:"-"`
}

// ReviewAssessmentRequest is the input DTO for the ReviewAssessment use case.
type ReviewAssessmentRequest struct {
	FinalOffer   *string   `json:"final_offer,omitempty"`
	AssessmentID uuid.UUID `json:"assessment_id"`
	Decision     string    `json:"decision"`
	Notes        string    `json:"notes,omitempty"`
	Actor        string    `json:"-"`
}

// CompletePayoutRequest is the input DTO for the CompletePayout use case.
type CompletePayoutRequest struct {
	AssessmentID uuid.UUID `json:"assessment_id"`
	Method       string    `json:"method"`
	Reference    string    `json:"reference,omitempty"`
	Actor        string    `json:"-"`
}

// CancelAssessmentRequest is the input DTO for the CancelAssessment use case.
type CancelAssessmentRequest struct {
	AssessmentID uuid.UUID `json:"assessment_id"`
	Reason       string    `json:"reason"`
	Actor        string    `json:"-"`
}

// GetAssessmentRequest looks an assessment up by id or by trade-in number.
type GetAssessmentRequest struct {
	AssessmentID  uuid.UUID `json:"assessment_id"`
	TradeInNumber string    `json:"trade_in_number"`
}

// ListAssessmentsRequest is the input DTO for listing assessments.
type ListAssessmentsRequest struct {
	ShopID string `json:"shop_id"`
	Status string `json:"status"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// DeductionResponse is one line of the condition breakdown.
type DeductionResponse struct {
	Question string `json:"question"`
	Points   int    `json:"points"`
}

// AssessmentResponse is the output DTO for a trade-in assessment.
type AssessmentResponse struct {
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	ReviewedAt         *time.Time          `json:"reviewed_at,omitempty"`
	CompletedAt        *time.Time          `json:"completed_at,omitempty"`
	CancelledAt        *time.Time          `json:"cancelled_at,omitempty"`
	FinalOffer         *string             `json:"final_offer,omitempty"`
	Answers            map[string]string   `json:"answers"`
	Device             DeviceInput         `json:"device"`
	Customer           CustomerInput       `json:"customer"`
	RejectionReasons   []string            `json:"rejection_reasons"`
	DeductionBreakdown []DeductionResponse `json:"deduction_breakdown"`
	TradeInNumber      string              `json:"trade_in_number"`
	ShopID             string              `json:"shop_id"`
	Identity           string              `json:"identity"`
	SerialNumber       string              `json:"serial_number,omitempty"`
	BaseValue          string              `json:"base_value"`
	CalculatedOffer    string              `json:"calculated_offer"`
	Currency           string              `json:"currency"`
	Decision           string              `json:"decision"`
	Status             string              `json:"status"`
	PayoutMethod       string              `json:"payout_method,omitempty"`
	PayoutReference    string              `json:"payout_reference,omitempty"`
	CreatedBy          string              `json:"created_by"`
	ReviewedBy         string              `json:"reviewed_by,omitempty"`
	ReviewNotes        string              `json:"review_notes,omitempty"`
	CancelReason       string              `json:"cancel_reason,omitempty"`
	ConditionScore     int                 `json:"condition_score"`
	Version            int                 `json:"version"`
	ID                 uuid.UUID           `json:"id"`
}

// ListAssessmentsResponse wraps a page of assessments.
type ListAssessmentsResponse struct {
	Assessments []AssessmentResponse `json:"assessments"`
}

// FromModel maps a domain model to the response DTO.
func FromModel(a *model.TradeInAssessment) AssessmentResponse {
	resp := AssessmentResponse{
		ID:            a.ID(),
		TradeInNumber: a.Number().String(),
		ShopID:        a.ShopID(),
		Identity:      a.Identity().String(),
		Device: DeviceInput{
			Brand:   a.Device().Brand,
			Model:   a.Device().Model,
			Storage: a.Device().Storage,
			Color:   a.Device().Color,
		},
		SerialNumber: a.SerialNumber(),
		Customer: CustomerInput{
			Name:  a.Customer().Name,
			Phone: a.Customer().Phone,
			Email: a.Customer().Email,
		},
		Answers:            a.Answers(),
		BaseValue:          a.BaseValue().Amount().String(),
		ConditionScore:     a.ConditionScore(),
		CalculatedOffer:    a.CalculatedOffer().Amount().String(),
		Currency:           a.BaseValue().Currency().Code(),
		Decision:           a.Decision().String(),
		RejectionReasons:   nonNil(a.RejectionReasons()),
		DeductionBreakdown: FromDeductions(a.Deductions()),
		Status:             a.Status().String(),
		PayoutMethod:       a.PayoutMethod().String(),
		PayoutReference:    a.PayoutReference(),
		CreatedBy:          a.CreatedBy(),
		ReviewedBy:         a.ReviewedBy(),
		ReviewedAt:         a.ReviewedAt(),
		ReviewNotes:        a.ReviewNotes(),
		CompletedAt:        a.CompletedAt(),
		CancelledAt:        a.CancelledAt(),
		CancelReason:       a.CancelReason(),
		Version:            a.Version(),
		CreatedAt:          a.CreatedAt(),
		UpdatedAt:          a.UpdatedAt(),
	}
	if f := a.FinalOffer(); f != nil {
		s := f.Amount().String()
		resp.FinalOffer = &s
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
