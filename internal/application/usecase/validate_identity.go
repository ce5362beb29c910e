package usecase

import (
	"context"
	"fmt"

	"github.com/arinherbz/chat-interferes-sub000/internal/application/dto"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
)

// DuplicateWarning is shown when an identity already has an active trade-in.
const DuplicateWarning = "Device already has an active trade-in"

// ValidateIdentity checks an identity number and reports an active trade-in.
type ValidateIdentity struct {
	repo port.AssessmentRepository
}

// NewValidateIdentity creates a new ValidateIdentity use case.
func NewValidateIdentity(repo port.AssessmentRepository) *ValidateIdentity {
	return &ValidateIdentity{repo: repo}
}

// Execute never fails on a malformed identity; the failure is reported in the response.
func (uc *ValidateIdentity) Execute(ctx context.Context, req dto.ValidateIdentityRequest) (dto.ValidateIdentityResponse, error) {
	resp := dto.ValidateIdentityResponse{Identity: req.Identity}

	identity, err := valueobject.NewIdentityNumber(req.Identity)
	if err != nil {
		resp.ErrorCode = string(domainerr.CodeOf(err))
		resp.Error = err.Error()
		return resp, nil
	}
	resp.Valid = true

	active, err := uc.repo.FindActiveByIdentity(ctx, identity.String())
	if err != nil {
		return dto.ValidateIdentityResponse{}, fmt.Errorf("failed to look up active trade-in: %w", err)
	}
	if active != nil {
		resp.IsDuplicate = true
		resp.Warning = DuplicateWarning
		if visibleTo(active, req.VisibleShop) {
			resp.ExistingTradeIn = active.Number().String()
		}
	}
	return resp, nil
}

// visibleTo reports whether a caller limited to shopID may learn of a.
func visibleTo(a *model.TradeInAssessment, shopID string) bool {
	return shopID == "" || a.ShopID() == shopID
}
