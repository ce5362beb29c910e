package usecase

import (
	"context"
	"log/slog"

	"github.com/arinherbz/chat-interferes-sub000/internal/application/dto"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
)

// CompletePayout marks an approved assessment as paid.
type CompletePayout struct {
	t transitioner
}

// NewCompletePayout creates a new CompletePayout use case.
func NewCompletePayout(
	repo port.AssessmentRepository,
	publisher port.EventPublisher,
	metrics port.MetricsRecorder,
	logger *slog.Logger,
) *CompletePayout {
	return &CompletePayout{t: transitioner{repo: repo, publisher: publisher, metrics: metricsOrNoop(metrics), logger: logger}}
}

// Execute records the payout.
func (uc *CompletePayout) Execute(ctx context.Context, req dto.CompletePayoutRequest) (dto.AssessmentResponse, error) {
	method, err := valueobject.ParsePayoutMethod(req.Method)
	if err != nil {
		return dto.AssessmentResponse{}, domainerr.Validation("method", err.Error())
	}

	a, err := uc.t.apply(ctx, req.AssessmentID, model.AuditPayoutCompleted, req.Actor, req.Reference,
		func(a *model.TradeInAssessment) error {
			return a.CompletePayout(method, req.Reference)
		})
	if err != nil {
		return dto.AssessmentResponse{}, err
	}
	return dto.FromModel(a), nil
}
