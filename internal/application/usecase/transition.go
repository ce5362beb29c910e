package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
)

// transitioner applies one state change to a stored assessment and writes
// the matching audit entry in the same repository call.
type transitioner struct {
	repo      port.AssessmentRepository
	publisher port.EventPublisher
	metrics   port.MetricsRecorder
	logger    *slog.Logger
}

func (t transitioner) apply(
	ctx context.Context,
	id uuid.UUID,
	action model.AuditAction,
	actor, notes string,
	change func(a *model.TradeInAssessment) error,
) (*model.TradeInAssessment, error) {
	if strings.TrimSpace(actor) == "" {
		return nil, domainerr.Validation("actor", "is required")
	}

	assessment, err := t.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := assessment.Snapshot()
	if err := change(assessment); err != nil {
		return nil, err
	}

	entry := model.NewAuditLogEntry(assessment.ID(), action, &before, assessment.Snapshot(), actor, notes)
	if err := t.repo.Update(ctx, assessment, &entry); err != nil {
		return nil, fmt.Errorf("failed to update assessment: %w", err)
	}

	publish(ctx, t.publisher, t.logger, assessment.DomainEvents())
	t.metrics.AssessmentTransitioned(string(action))
	t.logger.InfoContext(ctx, "trade-in assessment updated",
		"trade_in_number", assessment.Number().String(),
		"action", string(action),
		"status", assessment.Status().String(),
		"actor", actor,
	)
	return assessment, nil
}
