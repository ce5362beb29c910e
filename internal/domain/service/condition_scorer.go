package service

import (
	"fmt"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
)

// ConditionScore is the result of scoring a set of answers.
type ConditionScore struct {
	Score            int
	TotalDeduction   int
	Deductions       []valueobject.Deduction
	RejectionReasons []string
}

// ConditionScorer turns condition answers into a 0..100 score.
type ConditionScorer struct{}

// NewConditionScorer creates a new ConditionScorer.
func NewConditionScorer() *ConditionScorer {
	return &ConditionScorer{}
}

// Score walks questions in order. Unanswered questions and unknown option
// values contribute nothing. Deductions are summed without a cap and the
// score floors at zero.
func (s *ConditionScorer) Score(answers map[string]string, questions []model.ConditionQuestion) ConditionScore {
	out := ConditionScore{}
	for _, q := range questions {
		value, ok := answers[q.ID()]
		if !ok {
			continue
		}
		opt, ok := q.Option(value)
		if !ok {
			continue
		}
		if opt.Deduction() > 0 {
			out.TotalDeduction += opt.Deduction()
			out.Deductions = append(out.Deductions, valueobject.Deduction{
				Question: q.Text(),
				Points:   opt.Deduction(),
			})
		}
		if opt.IsRejection() {
			out.RejectionReasons = append(out.RejectionReasons, fmt.Sprintf("%s: %s", q.Text(), opt.Label()))
		}
	}

	out.Score = 100 - out.TotalDeduction
	if out.Score < 0 {
		out.Score = 0
	}
	return out
}
