package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arinherbz/chat-interferes-sub000/internal/application/dto"
	"github.com/arinherbz/chat-interferes-sub000/internal/application/usecase"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/service"
	"github.com/arinherbz/chat-interferes-sub000/internal/infrastructure/catalog"
	"github.com/arinherbz/chat-interferes-sub000/internal/infrastructure/memory"
	"github.com/arinherbz/chat-interferes-sub000/pkg/events"
	"github.com/arinherbz/chat-interferes-sub000/pkg/testutil"
)

const testCatalog = `
currency: UGX
questions:
  - id: screen
    text: Screen condition
    category: screen
    required: true
    sort_order: 1
    options:
      - {value: perfect, label: Flawless, deduction: 0}
      - {value: minor_scratches, label: Minor scratches, deduction: 15}
      - {value: cracked, label: Cracked, deduction: 40}
  - id: body
    text: Body condition
    category: body
    required: true
    sort_order: 2
    options:
      - {value: perfect, label: Like new, deduction: 0}
      - {value: dents, label: Dents, deduction: 35}
  - id: water_damage
    text: Water damage
    category: functionality
    required: true
    critical: true
    sort_order: 3
    options:
      - {value: "no", label: "No", deduction: 0}
      - {value: "yes", label: "Yes", deduction: 50, is_rejection: true}
base_values:
  - brand: Apple
    models:
      - {model: "iPhone 14 Pro", prices: {"256GB": 4000000}}
  - brand: Samsung
    models:
      - {model: "Galaxy S23", prices: {"256GB": 2000000}}
`

// --- Mock implementations ---

type mockPublisher struct {
	mu        sync.Mutex
	published []events.DomainEvent
	err       error
}

func (m *mockPublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, evts...)
	return nil
}

func (m *mockPublisher) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.published))
	for _, e := range m.published {
		out = append(out, e.EventType())
	}
	return out
}

type mockMetrics struct {
	mu          sync.Mutex
	submitted   map[string]int
	rejected    map[string]int
	transitions map[string]int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{submitted: map[string]int{}, rejected: map[string]int{}, transitions: map[string]int{}}
}

func (m *mockMetrics) AssessmentSubmitted(decision string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitted[decision]++
}

func (m *mockMetrics) AssessmentTransitioned(action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions[action]++
}

func (m *mockMetrics) GuardRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected[reason]++
}

func (m *mockMetrics) OfferPreviewed(string) {}

// --- Fixture ---

type fixture struct {
	store     *memory.Store
	publisher *mockPublisher
	metrics   *mockMetrics
	policy    usecase.Policy

	validate *usecase.ValidateIdentity
	preview  *usecase.CalculateOffer
	submit   *usecase.SubmitAssessment
	review   *usecase.ReviewAssessment
	payout   *usecase.CompletePayout
	cancel   *usecase.CancelAssessment
	get      *usecase.GetAssessment
	list     *usecase.ListAssessments
	trail    *usecase.ListAuditTrail
	block    *usecase.BlockIdentity
}

func newFixture(t *testing.T, opts ...func(*usecase.Policy)) *fixture {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)

	policy := usecase.DefaultPolicy()
	for _, o := range opts {
		o(&policy)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	publisher := &mockPublisher{}
	metrics := newMockMetrics()
	refs := usecase.ReferenceData{BaseValues: cat, Questions: cat, Rules: cat}
	guard := service.NewFraudGuard(store, store)
	evaluator := service.NewEvaluator()

	return &fixture{
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		policy:    policy,
		validate:  usecase.NewValidateIdentity(store),
		preview:   usecase.NewCalculateOffer(refs, guard, evaluator, policy, metrics, logger),
		submit:    usecase.NewSubmitAssessment(store, publisher, refs, guard, evaluator, policy, metrics, logger),
		review:    usecase.NewReviewAssessment(store, publisher, metrics, logger),
		payout:    usecase.NewCompletePayout(store, publisher, metrics, logger),
		cancel:    usecase.NewCancelAssessment(store, publisher, metrics, logger),
		get:       usecase.NewGetAssessment(store),
		list:      usecase.NewListAssessments(store),
		trail:     usecase.NewListAuditTrail(store, store),
		block:     usecase.NewBlockIdentity(store, publisher, logger),
	}
}

func submitRequest(identity string, answers map[string]string) dto.SubmitAssessmentRequest {
	return dto.SubmitAssessmentRequest{
		ShopID:   testutil.TestShopID,
		Identity: identity,
		Device:   dto.DeviceInput{Brand: "Apple", Model: "iPhone 14 Pro", Storage: "256GB", Color: "Deep Purple"},
		Customer: dto.CustomerInput{Name: "Jane Nakato", Phone: "+256 700 000001"},
		Answers:  answers,
		Actor:    "staff-1",
	}
}

var errStorage = errors.New("storage unavailable")
