package service

import (
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
)

// DecisionInput carries everything the engine decides on.
type DecisionInput struct {
	Score            int
	ScorerRejections []string
	HardStops        valueobject.HardStops
	// GuardReasons are stored blocklist reasons raised by the fraud guard.
	GuardReasons []string
	Rule         valueobject.ScoringRule
}

// DecisionOutcome is the disposition and the reasons behind it.
type DecisionOutcome struct {
	Decision valueobject.Decision
	Reasons  []string
}

// DecisionEngine folds score and hard stops into a disposition.
type DecisionEngine struct{}

// NewDecisionEngine creates a new DecisionEngine.
func NewDecisionEngine() *DecisionEngine {
	return &DecisionEngine{}
}

// Decide applies, in order: any hard stop rejects; score at or above the
// accept threshold accepts; score at or below the reject threshold rejects;
// everything else goes to manual review. A zero rule means the default rule.
func (e *DecisionEngine) Decide(in DecisionInput) DecisionOutcome {
	rule := in.Rule
	if rule.IsZero() {
		rule = valueobject.DefaultScoringRule()
	}

	reasons := unionReasons(in.HardStops.Reasons(), in.GuardReasons, in.ScorerRejections)
	if len(reasons) > 0 {
		return DecisionOutcome{Decision: valueobject.DecisionAutoReject, Reasons: reasons}
	}

	switch {
	case in.Score >= rule.AcceptMin():
		return DecisionOutcome{Decision: valueobject.DecisionAutoAccept}
	case in.Score <= rule.RejectMax():
		return DecisionOutcome{
			Decision: valueobject.DecisionAutoReject,
			Reasons:  []string{valueobject.ReasonScoreTooLow},
		}
	default:
		return DecisionOutcome{Decision: valueobject.DecisionManualReview}
	}
}

func unionReasons(lists ...[]string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, r := range list {
			if r == "" {
				continue
			}
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}
