package valueobject

import "fmt"

// Decision is the engine's disposition for a submission.
type Decision struct {
	value string
}

var (
	DecisionAutoAccept   = Decision{value: "auto_accept"}
	DecisionAutoReject   = Decision{value: "auto_reject"}
	DecisionManualReview = Decision{value: "manual_review"}
)

var validDecisions = map[string]Decision{
	DecisionAutoAccept.value:   DecisionAutoAccept,
	DecisionAutoReject.value:   DecisionAutoReject,
	DecisionManualReview.value: DecisionManualReview,
}

// DecisionFromString parses a stored decision.
func DecisionFromString(s string) (Decision, error) {
	d, ok := validDecisions[s]
	if !ok {
		return Decision{}, fmt.Errorf("invalid decision: %q", s)
	}
	return d, nil
}

func (d Decision) String() string            { return d.value }
func (d Decision) Equal(other Decision) bool { return d.value == other.value }
func (d Decision) IsZero() bool              { return d.value == "" }

// InitialStatus is the status an assessment enters when created with d.
func (d Decision) InitialStatus() AssessmentStatus {
	switch d {
	case DecisionAutoAccept:
		return StatusApproved
	case DecisionAutoReject:
		return StatusRejected
	default:
		return StatusPending
	}
}

// ReviewDecision is a human reviewer's verdict on a pending assessment.
type ReviewDecision string

const (
	ReviewAccepted ReviewDecision = "accepted"
	ReviewRejected ReviewDecision = "rejected"
)

// ParseReviewDecision validates a review verdict.
func ParseReviewDecision(s string) (ReviewDecision, error) {
	switch ReviewDecision(s) {
	case ReviewAccepted, ReviewRejected:
		return ReviewDecision(s), nil
	}
	return "", fmt.Errorf("invalid review decision: %q", s)
}
