package usecase

import (
	"log/slog"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/service"
)

// Dependencies are the ports the trade-in use cases are built from.
type Dependencies struct {
	Assessments port.AssessmentRepository
	AuditLog    port.AuditLogRepository
	Blocklist   port.BlocklistRepository
	Reference   ReferenceData
	Publisher   port.EventPublisher
	Metrics     port.MetricsRecorder
	Logger      *slog.Logger
	Policy      Policy
}

// Set bundles the use cases served by the transports.
type Set struct {
	ValidateIdentity *ValidateIdentity
	CalculateOffer   *CalculateOffer
	SubmitAssessment *SubmitAssessment
	ReviewAssessment *ReviewAssessment
	CompletePayout   *CompletePayout
	CancelAssessment *CancelAssessment
	GetAssessment    *GetAssessment
	ListAssessments  *ListAssessments
	ListAuditTrail   *ListAuditTrail
	BlockIdentity    *BlockIdentity
	ListQuestions    *ListQuestions
}

// NewSet wires every use case against d. The fraud guard and evaluator are
// shared between preview and submission.
func NewSet(d Dependencies) *Set {
	guard := service.NewFraudGuard(d.Blocklist, d.Assessments)
	evaluator := service.NewEvaluator()

	return &Set{
		ValidateIdentity: NewValidateIdentity(d.Assessments),
		CalculateOffer:   NewCalculateOffer(d.Reference, guard, evaluator, d.Policy, d.Metrics, d.Logger),
		SubmitAssessment: NewSubmitAssessment(d.Assessments, d.Publisher, d.Reference, guard, evaluator, d.Policy, d.Metrics, d.Logger),
		ReviewAssessment: NewReviewAssessment(d.Assessments, d.Publisher, d.Metrics, d.Logger),
		CompletePayout:   NewCompletePayout(d.Assessments, d.Publisher, d.Metrics, d.Logger),
		CancelAssessment: NewCancelAssessment(d.Assessments, d.Publisher, d.Metrics, d.Logger),
		GetAssessment:    NewGetAssessment(d.Assessments),
		ListAssessments:  NewListAssessments(d.Assessments),
		ListAuditTrail:   NewListAuditTrail(d.Assessments, d.AuditLog),
		BlockIdentity:    NewBlockIdentity(d.Blocklist, d.Publisher, d.Logger),
		ListQuestions:    NewListQuestions(d.Reference.Questions),
	}
}
