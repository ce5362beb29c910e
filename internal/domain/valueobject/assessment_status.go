package valueobject

import "fmt"

// AssessmentStatus is the lifecycle state of a trade-in assessment.
type AssessmentStatus string

const (
	StatusPending   AssessmentStatus = "pending"
	StatusApproved  AssessmentStatus = "approved"
	StatusRejected  AssessmentStatus = "rejected"
	StatusCompleted AssessmentStatus = "completed"
	StatusCancelled AssessmentStatus = "cancelled"
)

var statusTransitions = map[AssessmentStatus][]AssessmentStatus{
	StatusPending:   {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:  {StatusCompleted, StatusCancelled},
	StatusRejected:  {StatusCancelled},
	StatusCompleted: {StatusCancelled},
	StatusCancelled: {},
}

// ParseAssessmentStatus validates a stored status.
func ParseAssessmentStatus(s string) (AssessmentStatus, error) {
	st := AssessmentStatus(s)
	if _, ok := statusTransitions[st]; !ok {
		return "", fmt.Errorf("invalid assessment status: %q", s)
	}
	return st, nil
}

// CanTransitionTo reports whether the state machine allows s -> next.
func (s AssessmentStatus) CanTransitionTo(next AssessmentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsActive reports whether an assessment in s still claims its identity.
func (s AssessmentStatus) IsActive() bool {
	return s != StatusRejected && s != StatusCancelled
}

func (s AssessmentStatus) String() string { return string(s) }

// InactiveStatuses lists the statuses that release an identity.
func InactiveStatuses() []string {
	return []string{StatusRejected.String(), StatusCancelled.String()}
}
