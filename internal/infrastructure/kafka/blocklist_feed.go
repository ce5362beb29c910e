package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/arinherbz/chat-interferes-sub000/internal/application/dto"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
	pkgkafka "github.com/arinherbz/chat-interferes-sub000/pkg/kafka"
)

const feedActorPrefix = "feed:"

// StolenDeviceReport is a message on the external blocklist topic.
type StolenDeviceReport struct {
	Identity string `json:"identity"`
	Reason   string `json:"reason"`
	Source   string `json:"source"`
}

// IdentityBlocker is satisfied by usecase.BlockIdentity.
type IdentityBlocker interface {
	Execute(ctx context.Context, req dto.BlockIdentityRequest) (dto.BlockedIdentityResponse, error)
}

// BlocklistFeed turns stolen-device reports into fraud blocks.
type BlocklistFeed struct {
	blocker IdentityBlocker
	logger  *slog.Logger
}

func NewBlocklistFeed(blocker IdentityBlocker, logger *slog.Logger) *BlocklistFeed {
	return &BlocklistFeed{blocker: blocker, logger: logger}
}

// Handle is a pkg/kafka.Handler. Malformed reports are logged and skipped so
// they do not stall the partition; storage failures are returned.
func (f *BlocklistFeed) Handle(ctx context.Context, msg pkgkafka.Message) error {
	var report StolenDeviceReport
	if err := json.Unmarshal(msg.Value, &report); err != nil {
		f.logger.WarnContext(ctx, "skipping malformed blocklist report", "error", err)
		return nil
	}

	source := strings.TrimSpace(report.Source)
	if source == "" {
		source = "blocklist"
	}
	reason := strings.TrimSpace(report.Reason)
	if reason == "" {
		reason = "Reported stolen"
	}

	resp, err := f.blocker.Execute(ctx, dto.BlockIdentityRequest{
		Identity: strings.TrimSpace(report.Identity),
		Reason:   reason,
		Actor:    feedActorPrefix + source,
	})
	if err != nil {
		var derr *domainerr.Error
		if errors.As(err, &derr) {
			f.logger.WarnContext(ctx, "rejected blocklist report",
				"identity", report.Identity,
				"source", source,
				"error", err,
			)
			return nil
		}
		return err
	}

	f.logger.InfoContext(ctx, "blocklist report applied", "identity", resp.Identity, "source", source)
	return nil
}
