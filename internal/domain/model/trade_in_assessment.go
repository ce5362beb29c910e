package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/event"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
	"github.com/arinherbz/chat-interferes-sub000/pkg/events"
	"github.com/arinherbz/chat-interferes-sub000/pkg/money"
)

// ScoringResult is the output of the scoring pipeline for one submission.
type ScoringResult struct {
	ConditionScore     int
	CalculatedOffer    money.Money
	Decision           valueobject.Decision
	RejectionReasons   []string
	DeductionBreakdown []valueobject.Deduction
}

// NewAssessmentParams carries everything captured at submission.
type NewAssessmentParams struct {
	Number       valueobject.TradeInNumber
	ShopID       string
	Identity     valueobject.IdentityNumber
	Device       valueobject.DeviceDescriptor
	SerialNumber string
	Customer     valueobject.CustomerInfo
	Answers      map[string]string
	BaseValue    money.Money
	Scoring      ScoringResult
	CreatedBy    string
}

// TradeInAssessment is the aggregate root for a device trade-in. It is created
// once per submission and afterwards changes only through Review,
// CompletePayout and Cancel.
type TradeInAssessment struct {
	createdAt       time.Time
	updatedAt       time.Time
	reviewedAt      *time.Time
	completedAt     *time.Time
	cancelledAt     *time.Time
	finalOffer      *money.Money
	baseValue       money.Money
	calculatedOffer money.Money
	answers         map[string]string
	device          valueobject.DeviceDescriptor
	customer        valueobject.CustomerInfo
	decision        valueobject.Decision
	status          valueobject.AssessmentStatus
	payoutMethod    valueobject.PayoutMethod
	identity        valueobject.IdentityNumber
	number          valueobject.TradeInNumber
	shopID          string
	serialNumber    string
	payoutReference string
	createdBy       string
	reviewedBy      string
	reviewNotes     string
	cancelReason    string
	reasons         []string
	deductions      []valueobject.Deduction
	events          events.Collector
	conditionScore  int
	version         int
	id              uuid.UUID
}

// NewTradeInAssessment creates an assessment in the status its decision maps
// to. An auto-accepted assessment carries its calculated offer as final offer.
func NewTradeInAssessment(p NewAssessmentParams) (*TradeInAssessment, error) {
	switch {
	case p.Number.IsZero():
		return nil, fmt.Errorf("trade-in number is required")
	case p.Identity.IsZero():
		return nil, fmt.Errorf("identity is required")
	case p.Device.Brand == "" || p.Device.Model == "" || p.Device.Storage == "":
		return nil, fmt.Errorf("device descriptor is incomplete")
	case p.Customer.Name == "" || p.Customer.Phone == "":
		return nil, fmt.Errorf("customer name and phone are required")
	case !p.BaseValue.IsPositive():
		return nil, fmt.Errorf("base value must be positive")
	case p.Scoring.ConditionScore < 0 || p.Scoring.ConditionScore > 100:
		return nil, fmt.Errorf("condition score must be between 0 and 100, got %d", p.Scoring.ConditionScore)
	case p.Scoring.CalculatedOffer.IsNegative():
		return nil, fmt.Errorf("calculated offer must not be negative")
	case p.Scoring.CalculatedOffer.Currency() != p.BaseValue.Currency():
		return nil, fmt.Errorf("offer currency %s does not match base value currency %s",
			p.Scoring.CalculatedOffer.Currency(), p.BaseValue.Currency())
	case p.Scoring.Decision.IsZero():
		return nil, fmt.Errorf("decision is required")
	case strings.TrimSpace(p.CreatedBy) == "":
		return nil, fmt.Errorf("created by is required")
	}

	ts := now()
	a := &TradeInAssessment{
		id:              uuid.New(),
		number:          p.Number,
		shopID:          p.ShopID,
		identity:        p.Identity,
		device:          p.Device,
		serialNumber:    strings.TrimSpace(p.SerialNumber),
		customer:        p.Customer,
		answers:         copyAnswers(p.Answers),
		baseValue:       p.BaseValue,
		conditionScore:  p.Scoring.ConditionScore,
		calculatedOffer: p.Scoring.CalculatedOffer,
		decision:        p.Scoring.Decision,
		reasons:         append([]string(nil), p.Scoring.RejectionReasons...),
		deductions:      append([]valueobject.Deduction(nil), p.Scoring.DeductionBreakdown...),
		status:          p.Scoring.Decision.InitialStatus(),
		createdBy:       p.CreatedBy,
		version:         1,
		createdAt:       ts,
		updatedAt:       ts,
	}
	if a.decision.Equal(valueobject.DecisionAutoAccept) {
		offer := a.calculatedOffer
		a.finalOffer = &offer
	}

	a.events.Record(event.NewAssessmentSubmitted(
		a.id, a.number.String(), a.shopID, a.identity.String(),
		a.device.Brand, a.device.Model, a.device.Storage,
		a.conditionScore, a.calculatedOffer.Amount().String(), a.calculatedOffer.Currency().Code(),
		a.decision.String(), a.status.String(), a.reasons,
	))

	return a, nil
}

// Review settles a pending assessment. Accepting uses finalOffer when given,
// otherwise the calculated offer; rejecting leaves the final offer unset.
func (a *TradeInAssessment) Review(
	verdict valueobject.ReviewDecision,
	finalOffer *money.Money,
	notes, reviewer string,
) error {
	if a.status != valueobject.StatusPending {
		return domainerr.New(domainerr.CodeAlreadyFinalized,
			"trade-in %s is %s, only pending trade-ins can be reviewed", a.number, a.status)
	}
	if strings.TrimSpace(reviewer) == "" {
		return domainerr.Validation("reviewer", "is required")
	}

	switch verdict {
	case valueobject.ReviewAccepted:
		offer := a.calculatedOffer
		if finalOffer != nil {
			if finalOffer.IsNegative() {
				return domainerr.Validation("final_offer", "must not be negative")
			}
			if finalOffer.Currency() != a.baseValue.Currency() {
				return domainerr.Validation("final_offer", "currency must be "+a.baseValue.Currency().Code())
			}
			offer = *finalOffer
		}
		a.finalOffer = &offer
		a.status = valueobject.StatusApproved
	case valueobject.ReviewRejected:
		a.finalOffer = nil
		a.status = valueobject.StatusRejected
	default:
		return domainerr.Validation("decision", fmt.Sprintf("unknown review decision %q", verdict))
	}

	ts := now()
	a.reviewedBy = reviewer
	a.reviewedAt = &ts
	a.reviewNotes = strings.TrimSpace(notes)
	a.touch(ts)

	final := ""
	if a.finalOffer != nil {
		final = a.finalOffer.Amount().String()
	}
	a.events.Record(event.NewAssessmentReviewed(
		a.id, a.number.String(), string(verdict), a.status.String(), final, reviewer, ts,
	))
	return nil
}

// CompletePayout records that the seller was paid.
func (a *TradeInAssessment) CompletePayout(method valueobject.PayoutMethod, reference string) error {
	if a.status != valueobject.StatusApproved {
		return domainerr.New(domainerr.CodeNotApproved,
			"trade-in %s is %s, only approved trade-ins can be paid out", a.number, a.status)
	}
	if _, err := valueobject.ParsePayoutMethod(string(method)); err != nil {
		return domainerr.Validation("method", err.Error())
	}
	reference = strings.TrimSpace(reference)
	if method.RequiresReference() && reference == "" {
		return domainerr.Validation("reference", "is required for "+method.String())
	}

	if a.finalOffer == nil {
		offer := a.calculatedOffer
		a.finalOffer = &offer
	}

	ts := now()
	a.status = valueobject.StatusCompleted
	a.payoutMethod = method
	a.payoutReference = reference
	a.completedAt = &ts
	a.touch(ts)

	a.events.Record(event.NewPayoutCompleted(
		a.id, a.number.String(), a.finalOffer.Amount().String(), a.finalOffer.Currency().Code(),
		method.String(), reference, ts,
	))
	return nil
}

// Cancel withdraws the assessment from any state except cancelled.
func (a *TradeInAssessment) Cancel(reason string) error {
	if !a.status.CanTransitionTo(valueobject.StatusCancelled) {
		return domainerr.New(domainerr.CodeAlreadyFinalized, "trade-in %s is already cancelled", a.number)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domainerr.Validation("reason", "is required")
	}

	previous := a.status
	ts := now()
	a.status = valueobject.StatusCancelled
	a.cancelReason = reason
	a.cancelledAt = &ts
	a.touch(ts)

	a.events.Record(event.NewAssessmentCancelled(a.id, a.number.String(), previous.String(), reason))
	return nil
}

func (a *TradeInAssessment) touch(ts time.Time) {
	a.updatedAt = ts
	a.version++
}

// --- Accessors ---

func (a *TradeInAssessment) ID() uuid.UUID                          { return a.id }
func (a *TradeInAssessment) Number() valueobject.TradeInNumber      { return a.number }
func (a *TradeInAssessment) ShopID() string                         { return a.shopID }
func (a *TradeInAssessment) Identity() valueobject.IdentityNumber   { return a.identity }
func (a *TradeInAssessment) Device() valueobject.DeviceDescriptor   { return a.device }
func (a *TradeInAssessment) SerialNumber() string                   { return a.serialNumber }
func (a *TradeInAssessment) Customer() valueobject.CustomerInfo     { return a.customer }
func (a *TradeInAssessment) Answers() map[string]string             { return copyAnswers(a.answers) }
func (a *TradeInAssessment) BaseValue() money.Money                 { return a.baseValue }
func (a *TradeInAssessment) ConditionScore() int                    { return a.conditionScore }
func (a *TradeInAssessment) CalculatedOffer() money.Money           { return a.calculatedOffer }
func (a *TradeInAssessment) FinalOffer() *money.Money               { return a.finalOffer }
func (a *TradeInAssessment) Decision() valueobject.Decision         { return a.decision }
func (a *TradeInAssessment) RejectionReasons() []string             { return a.reasons }
func (a *TradeInAssessment) Deductions() []valueobject.Deduction    { return a.deductions }
func (a *TradeInAssessment) Status() valueobject.AssessmentStatus   { return a.status }
func (a *TradeInAssessment) PayoutMethod() valueobject.PayoutMethod { return a.payoutMethod }
func (a *TradeInAssessment) PayoutReference() string                { return a.payoutReference }
func (a *TradeInAssessment) CreatedBy() string                      { return a.createdBy }
func (a *TradeInAssessment) ReviewedBy() string                     { return a.reviewedBy }
func (a *TradeInAssessment) ReviewedAt() *time.Time                 { return a.reviewedAt }
func (a *TradeInAssessment) ReviewNotes() string                    { return a.reviewNotes }
func (a *TradeInAssessment) CompletedAt() *time.Time                { return a.completedAt }
func (a *TradeInAssessment) CancelledAt() *time.Time                { return a.cancelledAt }
func (a *TradeInAssessment) CancelReason() string                   { return a.cancelReason }
func (a *TradeInAssessment) Version() int                           { return a.version }
func (a *TradeInAssessment) CreatedAt() time.Time                   { return a.createdAt }
func (a *TradeInAssessment) UpdatedAt() time.Time                   { return a.updatedAt }

// DomainEvents returns the accumulated events and clears them.
func (a *TradeInAssessment) DomainEvents() []events.DomainEvent {
	return a.events.Drain()
}

func copyAnswers(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Snapshot captures the audited state of the assessment.
func (a *TradeInAssessment) Snapshot() AssessmentSnapshot {
	r := a.Record()
	s := AssessmentSnapshot{
		ID:                 r.ID,
		TradeInNumber:      r.Number,
		ShopID:             r.ShopID,
		Identity:           r.Identity,
		Brand:              r.Brand,
		Model:              r.Model,
		Storage:            r.Storage,
		Color:              r.Color,
		SerialNumber:       r.SerialNumber,
		CustomerName:       r.CustomerName,
		CustomerPhone:      r.CustomerPhone,
		CustomerEmail:      r.CustomerEmail,
		Answers:            r.Answers,
		BaseValue:          r.BaseValue,
		Currency:           r.Currency,
		ConditionScore:     r.ConditionScore,
		CalculatedOffer:    r.CalculatedOffer,
		Decision:           r.Decision,
		RejectionReasons:   r.RejectionReasons,
		DeductionBreakdown: r.DeductionBreakdown,
		Status:             r.Status,
		PayoutMethod:       r.PayoutMethod,
		PayoutReference:    r.PayoutReference,
		CreatedBy:          r.CreatedBy,
		ReviewedBy:         r.ReviewedBy,
		ReviewedAt:         utcPtr(r.ReviewedAt),
		ReviewNotes:        r.ReviewNotes,
		CompletedAt:        utcPtr(r.CompletedAt),
		CancelledAt:        utcPtr(r.CancelledAt),
		CancelReason:       r.CancelReason,
		Version:            r.Version,
		CreatedAt:          r.CreatedAt.UTC(),
		UpdatedAt:          r.UpdatedAt.UTC(),
	}
	if r.FinalOffer != nil {
		s.FinalOffer = *r.FinalOffer
	}
	return s
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// AssessmentRecord is the flat persisted form of an assessment.
type AssessmentRecord struct {
	ID                 uuid.UUID
	Number             string
	ShopID             string
	Identity           string
	Brand              string
	Model              string
	Storage            string
	Color              string
	SerialNumber       string
	CustomerName       string
	CustomerPhone      string
	CustomerEmail      string
	Answers            map[string]string
	BaseValue          string
	Currency           string
	ConditionScore     int
	CalculatedOffer    string
	FinalOffer         *string
	Decision           string
	RejectionReasons   []string
	DeductionBreakdown []valueobject.Deduction
	Status             string
	PayoutMethod       string
	PayoutReference    string
	CreatedBy          string
	ReviewedBy         string
	ReviewedAt         *time.Time
	ReviewNotes        string
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancelReason       string
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Record flattens the assessment for storage.
func (a *TradeInAssessment) Record() AssessmentRecord {
	r := AssessmentRecord{
		ID:                 a.id,
		Number:             a.number.String(),
		ShopID:             a.shopID,
		Identity:           a.identity.String(),
		Brand:              a.device.Brand,
		Model:              a.device.Model,
		Storage:            a.device.Storage,
		Color:              a.device.Color,
		SerialNumber:       a.serialNumber,
		CustomerName:       a.customer.Name,
		CustomerPhone:      a.customer.Phone,
		CustomerEmail:      a.customer.Email,
		Answers:            copyAnswers(a.answers),
		BaseValue:          a.baseValue.Amount().String(),
		Currency:           a.baseValue.Currency().Code(),
		ConditionScore:     a.conditionScore,
		CalculatedOffer:    a.calculatedOffer.Amount().String(),
		Decision:           a.decision.String(),
		RejectionReasons:   append([]string{}, a.reasons...),
		DeductionBreakdown: append([]valueobject.Deduction{}, a.deductions...),
		Status:             a.status.String(),
		PayoutMethod:       a.payoutMethod.String(),
		PayoutReference:    a.payoutReference,
		CreatedBy:          a.createdBy,
		ReviewedBy:         a.reviewedBy,
		ReviewedAt:         a.reviewedAt,
		ReviewNotes:        a.reviewNotes,
		CompletedAt:        a.completedAt,
		CancelledAt:        a.cancelledAt,
		CancelReason:       a.cancelReason,
		Version:            a.version,
		CreatedAt:          a.createdAt,
		UpdatedAt:          a.updatedAt,
	}
	if a.finalOffer != nil {
		s := a.finalOffer.Amount().String()
		r.FinalOffer = &s
	}
	return r
}

// Reconstruct rebuilds an assessment from storage without validation or events.
func Reconstruct(r AssessmentRecord) (*TradeInAssessment, error) {
	base, err := money.Parse(r.BaseValue, r.Currency)
	if err != nil {
		return nil, fmt.Errorf("base value: %w", err)
	}
	calculated, err := money.Parse(r.CalculatedOffer, r.Currency)
	if err != nil {
		return nil, fmt.Errorf("calculated offer: %w", err)
	}
	var final *money.Money
	if r.FinalOffer != nil {
		f, err := money.Parse(*r.FinalOffer, r.Currency)
		if err != nil {
			return nil, fmt.Errorf("final offer: %w", err)
		}
		final = &f
	}
	number, err := valueobject.ParseTradeInNumber(r.Number)
	if err != nil {
		return nil, err
	}
	decision, err := valueobject.DecisionFromString(r.Decision)
	if err != nil {
		return nil, err
	}
	status, err := valueobject.ParseAssessmentStatus(r.Status)
	if err != nil {
		return nil, err
	}

	return &TradeInAssessment{
		id:              r.ID,
		number:          number,
		shopID:          r.ShopID,
		identity:        valueobject.ReconstructIdentityNumber(r.Identity),
		device:          valueobject.DeviceDescriptor{Brand: r.Brand, Model: r.Model, Storage: r.Storage, Color: r.Color},
		serialNumber:    r.SerialNumber,
		customer:        valueobject.CustomerInfo{Name: r.CustomerName, Phone: r.CustomerPhone, Email: r.CustomerEmail},
		answers:         copyAnswers(r.Answers),
		baseValue:       base,
		conditionScore:  r.ConditionScore,
		calculatedOffer: calculated,
		finalOffer:      final,
		decision:        decision,
		reasons:         r.RejectionReasons,
		deductions:      r.DeductionBreakdown,
		status:          status,
		payoutMethod:    valueobject.PayoutMethod(r.PayoutMethod),
		payoutReference: r.PayoutReference,
		createdBy:       r.CreatedBy,
		reviewedBy:      r.ReviewedBy,
		reviewedAt:      r.ReviewedAt,
		reviewNotes:     r.ReviewNotes,
		completedAt:     r.CompletedAt,
		cancelledAt:     r.CancelledAt,
		cancelReason:    r.CancelReason,
		version:         r.Version,
		createdAt:       r.CreatedAt,
		updatedAt:       r.UpdatedAt,
	}, nil
}
