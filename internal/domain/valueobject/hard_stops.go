package valueobject

// Fixed messages for the hard-stop signals.
const (
	ReasonIdentityLock      = "Device identity lock is enabled"
	ReasonSecondaryLock     = "Factory reset protection is enabled"
	ReasonDuplicateIdentity = "Identity already has an active trade-in"
	ReasonInvalidIdentity   = "Identity number is invalid"
	ReasonScoreTooLow       = "Condition score too low for trade-in"
)

// HardStops are the signals that force rejection regardless of score.
type HardStops struct {
	IdentityLock      bool
	SecondaryLock     bool
	DuplicateIdentity bool
	InvalidIdentity   bool
}

// Reasons returns the fixed message of every raised signal, in a stable order.
func (h HardStops) Reasons() []string {
	var reasons []string
	if h.IdentityLock {
		reasons = append(reasons, ReasonIdentityLock)
	}
	if h.SecondaryLock {
		reasons = append(reasons, ReasonSecondaryLock)
	}
	if h.DuplicateIdentity {
		reasons = append(reasons, ReasonDuplicateIdentity)
	}
	if h.InvalidIdentity {
		reasons = append(reasons, ReasonInvalidIdentity)
	}
	return reasons
}

// Deduction is one line of the condition breakdown.
type Deduction struct {
	Question string `json:"question"`
	Points   int    `json:"points"`
}
