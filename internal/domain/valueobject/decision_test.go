package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecisionFromString(t *testing.T) {
	for _, s := range []string{"auto_accept", "auto_reject", "manual_review"} {
		d, err := DecisionFromString(s)
		require.NoError(t, err)
		assert.Equal(t, s, d.String())
	}
	_, err := DecisionFromString("APPROVE")
	assert.Error(t, err)
}

func TestDecision_InitialStatus(t *testing.T) {
	assert.Equal(t, StatusApproved, DecisionAutoAccept.InitialStatus())
	assert.Equal(t, StatusRejected, DecisionAutoReject.InitialStatus())
	assert.Equal(t, StatusPending, DecisionManualReview.InitialStatus())
}

func TestParseReviewDecision(t *testing.T) {
	d, err := ParseReviewDecision("accepted")
	require.NoError(t, err)
	assert.Equal(t, ReviewAccepted, d)

	_, err = ParseReviewDecision("maybe")
	assert.Error(t, err)
}

func TestAssessmentStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to AssessmentStatus
		allowed  bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCompleted, false},
		{StatusApproved, StatusCompleted, true},
		{StatusApproved, StatusRejected, false},
		{StatusRejected, StatusApproved, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusCancelled, true},
		{StatusRejected, StatusCancelled, true},
		{StatusCancelled, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestAssessmentStatus_IsActive(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusApproved.IsActive())
	assert.True(t, StatusCompleted.IsActive())
	assert.False(t, StatusRejected.IsActive())
	assert.False(t, StatusCancelled.IsActive())

	_, err := ParseAssessmentStatus("archived")
	assert.Error(t, err)
}
