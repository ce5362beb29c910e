package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/service"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
)

func TestDecisionEngine_Decide(t *testing.T) {
	engine := service.NewDecisionEngine()

	tests := []struct {
		name         string
		in           service.DecisionInput
		wantDecision valueobject.Decision
		wantReasons  []string
	}{
		{
			name:         "score 70 accepts",
			in:           service.DecisionInput{Score: 70},
			wantDecision: valueobject.DecisionAutoAccept,
		},
		{
			name:         "score 100 accepts",
			in:           service.DecisionInput{Score: 100},
			wantDecision: valueobject.DecisionAutoAccept,
		},
		{
			name:         "score 69 goes to review",
			in:           service.DecisionInput{Score: 69},
			wantDecision: valueobject.DecisionManualReview,
		},
		{
			name:         "score 31 goes to review",
			in:           service.DecisionInput{Score: 31},
			wantDecision: valueobject.DecisionManualReview,
		},
		{
			name:         "score 30 rejects as too low",
			in:           service.DecisionInput{Score: 30},
			wantDecision: valueobject.DecisionAutoReject,
			wantReasons:  []string{valueobject.ReasonScoreTooLow},
		},
		{
			name:         "identity lock rejects a perfect score",
			in:           service.DecisionInput{Score: 100, HardStops: valueobject.HardStops{IdentityLock: true}},
			wantDecision: valueobject.DecisionAutoReject,
			wantReasons:  []string{valueobject.ReasonIdentityLock},
		},
		{
			name: "hard stops are unioned in a stable order",
			in: service.DecisionInput{
				Score:            100,
				HardStops:        valueobject.HardStops{SecondaryLock: true, DuplicateIdentity: true, InvalidIdentity: true},
				GuardReasons:     []string{"Reported stolen"},
				ScorerRejections: []string{"Water damage: Yes"},
			},
			wantDecision: valueobject.DecisionAutoReject,
			wantReasons: []string{
				valueobject.ReasonSecondaryLock,
				valueobject.ReasonDuplicateIdentity,
				valueobject.ReasonInvalidIdentity,
				"Reported stolen",
				"Water damage: Yes",
			},
		},
		{
			name:         "scorer rejection alone rejects",
			in:           service.DecisionInput{Score: 80, ScorerRejections: []string{"Water damage: Yes", "Water damage: Yes"}},
			wantDecision: valueobject.DecisionAutoReject,
			wantReasons:  []string{"Water damage: Yes"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Decide(tt.in)
			assert.Equal(t, tt.wantDecision, got.Decision)
			assert.Equal(t, tt.wantReasons, got.Reasons)
		})
	}
}

func TestDecisionEngine_CustomRule(t *testing.T) {
	rule, err := valueobject.NewScoringRule(80, 40)
	require.NoError(t, err)
	engine := service.NewDecisionEngine()

	assert.Equal(t, valueobject.DecisionManualReview, engine.Decide(service.DecisionInput{Score: 75, Rule: rule}).Decision)
	assert.Equal(t, valueobject.DecisionAutoAccept, engine.Decide(service.DecisionInput{Score: 80, Rule: rule}).Decision)
	assert.Equal(t, valueobject.DecisionAutoReject, engine.Decide(service.DecisionInput{Score: 40, Rule: rule}).Decision)
}

func TestDecisionEngine_RejectedWheneverReasonsPresent(t *testing.T) {
	engine := service.NewDecisionEngine()
	for score := 0; score <= 100; score++ {
		got := engine.Decide(service.DecisionInput{Score: score})
		if len(got.Reasons) > 0 {
			assert.Equal(t, valueobject.DecisionAutoReject, got.Decision, "score %d", score)
		}
		got = engine.Decide(service.DecisionInput{Score: score, HardStops: valueobject.HardStops{DuplicateIdentity: true}})
		assert.Equal(t, valueobject.DecisionAutoReject, got.Decision, "score %d", score)
	}
}
