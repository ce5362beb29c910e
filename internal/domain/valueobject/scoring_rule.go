package valueobject

import "fmt"

// Default decision bands.
const (
	DefaultAcceptMinScore = 70
	DefaultRejectMaxScore = 30
)

// ScoringRule holds the score bands the decision engine applies for a shop.
// Scores at or above AcceptMin accept, at or below RejectMax reject, and
// anything between goes to manual review.
type ScoringRule struct {
	acceptMin int
	rejectMax int
}

// NewScoringRule validates 0 <= rejectMax < acceptMin <= 100.
func NewScoringRule(acceptMin, rejectMax int) (ScoringRule, error) {
	if acceptMin < 0 || acceptMin > 100 || rejectMax < 0 || rejectMax > 100 {
		return ScoringRule{}, fmt.Errorf("score bands must be within 0..100, got accept=%d reject=%d", acceptMin, rejectMax)
	}
	if rejectMax >= acceptMin {
		return ScoringRule{}, fmt.Errorf("reject band (%d) must be below accept band (%d)", rejectMax, acceptMin)
	}
	return ScoringRule{acceptMin: acceptMin, rejectMax: rejectMax}, nil
}

// DefaultScoringRule is the 70/30 rule.
func DefaultScoringRule() ScoringRule {
	return ScoringRule{acceptMin: DefaultAcceptMinScore, rejectMax: DefaultRejectMaxScore}
}

func (r ScoringRule) AcceptMin() int { return r.acceptMin }
func (r ScoringRule) RejectMax() int { return r.rejectMax }
func (r ScoringRule) IsZero() bool   { return r.acceptMin == 0 && r.rejectMax == 0 }
