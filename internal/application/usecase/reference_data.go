package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
	"github.com/arinherbz/chat-interferes-sub000/pkg/money"
)

// ReferenceData bundles the read-only lookups the pipeline needs.
type ReferenceData struct {
	BaseValues port.BaseValueRepository
	Questions  port.QuestionSource
	Rules      port.ScoringRuleSource
}

type referenceSnapshot struct {
	questions []model.ConditionQuestion
	rule      valueobject.ScoringRule
	baseValue money.Money
}

// load fetches questions, the shop's rule and, unless override is set, the
// device's base value concurrently.
func (r ReferenceData) load(
	ctx context.Context,
	shopID string,
	device valueobject.DeviceDescriptor,
	override *money.Money,
) (referenceSnapshot, error) {
	var snap referenceSnapshot

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		qs, err := r.Questions.ActiveQuestions(egCtx)
		if err != nil {
			return fmt.Errorf("failed to load condition questions: %w", err)
		}
		snap.questions = qs
		return nil
	})
	eg.Go(func() error {
		rule, err := r.Rules.RuleForShop(egCtx, shopID)
		if err != nil {
			return fmt.Errorf("failed to load scoring rule: %w", err)
		}
		snap.rule = rule
		return nil
	})
	if override == nil {
		eg.Go(func() error {
			bv, err := r.BaseValues.FindBaseValue(egCtx, shopID, device)
			if err != nil {
				return err
			}
			snap.baseValue = bv.BaseValue()
			return nil
		})
	} else {
		snap.baseValue = *override
	}

	if err := eg.Wait(); err != nil {
		return referenceSnapshot{}, err
	}
	return snap, nil
}
