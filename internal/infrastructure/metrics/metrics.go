package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
)

// Metrics provides observability for the trade-in engine.
type Metrics struct {
	// Submissions by decision
	Submissions *prometheus.CounterVec

	// Condition score distribution of persisted assessments
	ConditionScore prometheus.Histogram

	// State transitions by audit action
	Transitions *prometheus.CounterVec

	// Submissions stopped by the fraud guard, by reason
	GuardRejections *prometheus.CounterVec

	// Offer previews by decision
	Previews *prometheus.CounterVec
}

var _ port.MetricsRecorder = (*Metrics)(nil)

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tradein_assessments_submitted_total",
			Help: "Total persisted trade-in assessments by decision",
		}, []string{"decision"}),

		ConditionScore: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "tradein_condition_score",
			Help:    "Condition score of persisted trade-in assessments",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		}),

		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tradein_assessment_transitions_total",
			Help: "Total assessment state transitions by action",
		}, []string{"action"}),

		GuardRejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tradein_guard_rejections_total",
			Help: "Total submissions stopped before scoring by reason",
		}, []string{"reason"}), // reason: "invalid_identity", "blocked", "duplicate"

		Previews: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tradein_offer_previews_total",
			Help: "Total offer previews by decision",
		}, []string{"decision"}),
	}
}

func (m *Metrics) AssessmentSubmitted(decision string, score int) {
	if m != nil {
		m.Submissions.WithLabelValues(decision).Inc()
		m.ConditionScore.Observe(float64(score))
	}
}

func (m *Metrics) AssessmentTransitioned(action string) {
	if m != nil {
		m.Transitions.WithLabelValues(action).Inc()
	}
}

func (m *Metrics) GuardRejected(reason string) {
	if m != nil {
		m.GuardRejections.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) OfferPreviewed(decision string) {
	if m != nil {
		m.Previews.WithLabelValues(decision).Inc()
	}
}
