package usecase

import (
	"context"
	"fmt"

	"github.com/arinherbz/chat-interferes-sub000/internal/application/dto"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
)

// ListAuditTrail returns an assessment's audit chain and verifies it.
type ListAuditTrail struct {
	assessments port.AssessmentRepository
	audit       port.AuditLogRepository
}

// NewListAuditTrail creates a new ListAuditTrail use case.
func NewListAuditTrail(assessments port.AssessmentRepository, audit port.AuditLogRepository) *ListAuditTrail {
	return &ListAuditTrail{assessments: assessments, audit: audit}
}

// Execute fails with NotFound for an unknown assessment. A broken chain is
// reported in the response, not as an error.
func (uc *ListAuditTrail) Execute(ctx context.Context, req dto.ListAuditTrailRequest) (dto.AuditTrailResponse, error) {
	if _, err := uc.assessments.FindByID(ctx, req.AssessmentID); err != nil {
		return dto.AuditTrailResponse{}, err
	}

	entries, err := uc.audit.ListByAssessment(ctx, req.AssessmentID)
	if err != nil {
		return dto.AuditTrailResponse{}, fmt.Errorf("failed to list audit trail: %w", err)
	}

	resp := dto.AuditTrailResponse{
		AssessmentID: req.AssessmentID,
		Entries:      make([]dto.AuditEntryResponse, 0, len(entries)),
		Verified:     true,
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, dto.FromAuditEntry(e))
	}
	if err := model.VerifyChain(entries); err != nil {
		resp.Verified = false
		resp.VerificationError = err.Error()
	}
	return resp, nil
}
