package usecase

import (
	"context"
	"log/slog"

	"github.com/arinherbz/chat-interferes-sub000/internal/application/dto"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
)

// CancelAssessment withdraws an assessment and releases its identity.
type CancelAssessment struct {
	t transitioner
}

// NewCancelAssessment creates a new CancelAssessment use case.
func NewCancelAssessment(
	repo port.AssessmentRepository,
	publisher port.EventPublisher,
	metrics port.MetricsRecorder,
	logger *slog.Logger,
) *CancelAssessment {
	return &CancelAssessment{t: transitioner{repo: repo, publisher: publisher, metrics: metricsOrNoop(metrics), logger: logger}}
}

// Execute cancels the assessment.
func (uc *CancelAssessment) Execute(ctx context.Context, req dto.CancelAssessmentRequest) (dto.AssessmentResponse, error) {
	a, err := uc.t.apply(ctx, req.AssessmentID, model.AuditCancelled, req.Actor, req.Reason,
		func(a *model.TradeInAssessment) error {
			return a.Cancel(req.Reason)
		})
	if err != nil {
		return dto.AssessmentResponse{}, err
	}
	return dto.FromModel(a), nil
}
