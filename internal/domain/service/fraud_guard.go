package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
)

// GuardResult is what the fraud guard found for one identity.
type GuardResult struct {
	Identity valueobject.IdentityNumber
	// InvalidErr is the format or checksum failure, nil when the identity is valid.
	InvalidErr error
	// Blocks are the standing blocklist entries for the identity.
	Blocks []model.BlockedIdentity
	// ActiveOriginal is the active prior assessment, nil when there is none.
	ActiveOriginal *model.TradeInAssessment
}

// HardStops returns the identity related signals.
func (r GuardResult) HardStops() valueobject.HardStops {
	return valueobject.HardStops{
		InvalidIdentity:   r.InvalidErr != nil,
		DuplicateIdentity: r.ActiveOriginal != nil,
	}
}

// BlockReasons returns the stored reasons of standing blocks.
func (r GuardResult) BlockReasons() []string {
	reasons := make([]string, 0, len(r.Blocks))
	for _, b := range r.Blocks {
		reasons = append(reasons, b.Reason())
	}
	return reasons
}

// Blocked reports whether a standing block was found.
func (r GuardResult) Blocked() bool { return len(r.Blocks) > 0 }

// Duplicate reports whether an active prior assessment was found.
func (r GuardResult) Duplicate() bool { return r.ActiveOriginal != nil }

// FraudGuard checks an identity against the blocklist and the assessment
// history before anything is scored.
type FraudGuard struct {
	blocklist   port.BlocklistRepository
	assessments port.AssessmentRepository
}

// NewFraudGuard creates a new FraudGuard.
func NewFraudGuard(blocklist port.BlocklistRepository, assessments port.AssessmentRepository) *FraudGuard {
	return &FraudGuard{blocklist: blocklist, assessments: assessments}
}

// Check validates the identity and, when it is well formed, runs the
// blocklist and history lookups concurrently. It never writes.
func (g *FraudGuard) Check(ctx context.Context, code string) (GuardResult, error) {
	identity, err := valueobject.NewIdentityNumber(code)
	if err != nil {
		return GuardResult{InvalidErr: err}, nil
	}
	result := GuardResult{Identity: identity}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		entries, err := g.blocklist.FindByIdentity(egCtx, identity.String())
		if err != nil {
			return fmt.Errorf("blocklist lookup: %w", err)
		}
		for _, e := range entries {
			if e.BlocksSubmission() {
				result.Blocks = append(result.Blocks, e)
			}
		}
		return nil
	})
	eg.Go(func() error {
		active, err := g.assessments.FindActiveByIdentity(egCtx, identity.String())
		if err != nil {
			return fmt.Errorf("history lookup: %w", err)
		}
		result.ActiveOriginal = active
		return nil
	})
	if err := eg.Wait(); err != nil {
		return GuardResult{}, err
	}
	return result, nil
}

// RecordDuplicateAttempt appends a duplicate_attempt entry referencing the
// active original. Only the submission path calls it.
func (g *FraudGuard) RecordDuplicateAttempt(
	ctx context.Context,
	identity valueobject.IdentityNumber,
	original valueobject.TradeInNumber,
	actor string,
) (model.BlockedIdentity, error) {
	entry := model.NewDuplicateAttempt(identity, original, actor)
	if err := g.blocklist.Append(ctx, entry); err != nil {
		return model.BlockedIdentity{}, fmt.Errorf("record duplicate attempt: %w", err)
	}
	return entry, nil
}
