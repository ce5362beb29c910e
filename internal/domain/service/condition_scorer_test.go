package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/service"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
)

func TestConditionScorer_Score(t *testing.T) {
	scorer := service.NewConditionScorer()
	questions := questionSet(t)

	tests := []struct {
		name           string
		answers        map[string]string
		wantScore      int
		wantDeductions []valueobject.Deduction
		wantReasons    []string
	}{
		{
			name:      "no answers scores 100",
			answers:   map[string]string{},
			wantScore: 100,
		},
		{
			name:      "all perfect answers",
			answers:   map[string]string{"screen": "perfect", "body": "clean", "water": "no", "battery": "good"},
			wantScore: 100,
		},
		{
			name:      "deductions accumulate",
			answers:   map[string]string{"screen": "scratched", "battery": "poor"},
			wantScore: 65,
			wantDeductions: []valueobject.Deduction{
				{Question: "Screen condition", Points: 15},
				{Question: "Battery health", Points: 20},
			},
		},
		{
			name:      "deductions above 100 floor at zero",
			answers:   map[string]string{"screen": "cracked", "body": "dented", "water": "yes", "battery": "poor"},
			wantScore: 0,
			wantDeductions: []valueobject.Deduction{
				{Question: "Screen condition", Points: 40},
				{Question: "Body condition", Points: 30},
				{Question: "Water damage", Points: 50},
				{Question: "Battery health", Points: 20},
			},
			wantReasons: []string{"Water damage: Yes"},
		},
		{
			name:      "unknown option value ignored",
			answers:   map[string]string{"screen": "shattered", "body": "dented"},
			wantScore: 70,
			wantDeductions: []valueobject.Deduction{
				{Question: "Body condition", Points: 30},
			},
		},
		{
			name:      "unknown question ignored",
			answers:   map[string]string{"camera": "broken"},
			wantScore: 100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.answers, questions)

			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantDeductions, got.Deductions)
			assert.Equal(t, tt.wantReasons, got.RejectionReasons)
			assert.GreaterOrEqual(t, got.Score, 0)
			assert.LessOrEqual(t, got.Score, 100)
		})
	}
}

func TestConditionScorer_Deterministic(t *testing.T) {
	scorer := service.NewConditionScorer()
	questions := questionSet(t)
	answers := map[string]string{"screen": "scratched", "water": "yes"}

	first := scorer.Score(answers, questions)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, scorer.Score(answers, questions))
	}
}

func TestConditionScorer_MoreDeductionsNeverRaiseScore(t *testing.T) {
	scorer := service.NewConditionScorer()
	questions := questionSet(t)

	steps := []struct{ question, value string }{
		{"screen", "cracked"},
		{"battery", "poor"},
		{"body", "dented"},
		{"water", "yes"},
	}
	for _, order := range [][]int{{0, 1, 2, 3}, {3, 2, 1, 0}, {1, 3, 0, 2}} {
		answers := map[string]string{}
		prev := scorer.Score(answers, questions).Score
		assert.Equal(t, 100, prev)

		for _, i := range order {
			answers[steps[i].question] = steps[i].value
			got := scorer.Score(answers, questions).Score
			assert.LessOrEqual(t, got, prev, "after %s in order %v", steps[i].question, order)
			assert.GreaterOrEqual(t, got, 0)
			prev = got
		}
		assert.Zero(t, prev)
	}
}
