package usecase

import (
	"context"
	"log/slog"

	"github.com/arinherbz/chat-interferes-sub000/internal/application/dto"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
	"github.com/arinherbz/chat-interferes-sub000/pkg/money"
)

// ReviewAssessment settles a pending assessment by human decision.
type ReviewAssessment struct {
	t transitioner
}

// NewReviewAssessment creates a new ReviewAssessment use case.
func NewReviewAssessment(
	repo port.AssessmentRepository,
	publisher port.EventPublisher,
	metrics port.MetricsRecorder,
	logger *slog.Logger,
) *ReviewAssessment {
	return &ReviewAssessment{t: transitioner{repo: repo, publisher: publisher, metrics: metricsOrNoop(metrics), logger: logger}}
}

// Execute accepts or rejects the assessment.
func (uc *ReviewAssessment) Execute(ctx context.Context, req dto.ReviewAssessmentRequest) (dto.AssessmentResponse, error) {
	verdict, err := valueobject.ParseReviewDecision(req.Decision)
	if err != nil {
		return dto.AssessmentResponse{}, domainerr.Validation("decision", "must be accepted or rejected")
	}

	a, err := uc.t.apply(ctx, req.AssessmentID, model.AuditReviewed, req.Actor, req.Notes,
		func(a *model.TradeInAssessment) error {
			var offer *money.Money
			if req.FinalOffer != nil {
				m, err := money.Parse(*req.FinalOffer, a.BaseValue().Currency().Code())
				if err != nil {
					return domainerr.Validation("final_offer", "must be a decimal amount")
				}
				offer = &m
			}
			return a.Review(verdict, offer, req.Notes, req.Actor)
		})
	if err != nil {
		return dto.AssessmentResponse{}, err
	}
	return dto.FromModel(a), nil
}
