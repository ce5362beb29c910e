package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/arinherbz/chat-interferes-sub000/internal/application/dto"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/event"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
	"github.com/arinherbz/chat-interferes-sub000/pkg/events"
)

// BlockIdentity adds a standing fraud block to the blocklist.
type BlockIdentity struct {
	blocklist port.BlocklistRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewBlockIdentity creates a new BlockIdentity use case.
func NewBlockIdentity(blocklist port.BlocklistRepository, publisher port.EventPublisher, logger *slog.Logger) *BlockIdentity {
	return &BlockIdentity{blocklist: blocklist, publisher: publisher, logger: logger}
}

// Execute appends the entry. Existing entries are never modified.
func (uc *BlockIdentity) Execute(ctx context.Context, req dto.BlockIdentityRequest) (dto.BlockedIdentityResponse, error) {
	identity, err := valueobject.NewIdentityNumber(req.Identity)
	if err != nil {
		return dto.BlockedIdentityResponse{}, err
	}
	if strings.TrimSpace(req.Actor) == "" {
		return dto.BlockedIdentityResponse{}, domainerr.Validation("actor", "is required")
	}

	entry, err := model.NewFraudBlock(identity, req.Reason, req.Actor)
	if err != nil {
		return dto.BlockedIdentityResponse{}, domainerr.Validation("reason", err.Error())
	}
	if err := uc.blocklist.Append(ctx, entry); err != nil {
		return dto.BlockedIdentityResponse{}, fmt.Errorf("failed to append blocklist entry: %w", err)
	}

	publish(ctx, uc.publisher, uc.logger, []events.DomainEvent{event.NewIdentityBlocked(
		entry.ID(), entry.Identity(), string(entry.Kind()), entry.Reason(), entry.ReferenceNumber(),
	)})
	uc.logger.InfoContext(ctx, "identity blocked", "identity", entry.Identity(), "actor", req.Actor)

	return dto.FromBlockedIdentity(entry), nil
}
