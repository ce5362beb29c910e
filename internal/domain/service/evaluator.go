package service

import (
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
	"github.com/arinherbz/chat-interferes-sub000/pkg/money"
)

// EvaluationInput is one pass through scorer, decision engine and offer calculator.
type EvaluationInput struct {
	Answers      map[string]string
	Questions    []model.ConditionQuestion
	BaseValue    money.Money
	HardStops    valueobject.HardStops
	GuardReasons []string
	Rule         valueobject.ScoringRule
}

// Evaluator chains the pure pipeline stages.
type Evaluator struct {
	scorer     *ConditionScorer
	engine     *DecisionEngine
	calculator *OfferCalculator
}

// NewEvaluator creates an Evaluator over the default stages.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		scorer:     NewConditionScorer(),
		engine:     NewDecisionEngine(),
		calculator: NewOfferCalculator(),
	}
}

// Evaluate scores the answers, decides, and prices the device. The offer is
// computed for every outcome, rejections included.
func (e *Evaluator) Evaluate(in EvaluationInput) (model.ScoringResult, error) {
	score := e.scorer.Score(in.Answers, in.Questions)

	outcome := e.engine.Decide(DecisionInput{
		Score:            score.Score,
		ScorerRejections: score.RejectionReasons,
		HardStops:        in.HardStops,
		GuardReasons:     in.GuardReasons,
		Rule:             in.Rule,
	})

	offer, err := e.calculator.Calculate(in.BaseValue, score.Score)
	if err != nil {
		return model.ScoringResult{}, err
	}

	return model.ScoringResult{
		ConditionScore:     score.Score,
		CalculatedOffer:    offer,
		Decision:           outcome.Decision,
		RejectionReasons:   outcome.Reasons,
		DeductionBreakdown: score.Deductions,
	}, nil
}
