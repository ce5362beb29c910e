package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/event"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
	"github.com/arinherbz/chat-interferes-sub000/pkg/money"
	"github.com/arinherbz/chat-interferes-sub000/pkg/testutil"
)

func newParams(t *testing.T, decision valueobject.Decision, score int) model.NewAssessmentParams {
	t.Helper()
	number, err := valueobject.NewTradeInNumber(valueobject.FirstTradeInSequence)
	require.NoError(t, err)
	identity, err := valueobject.NewIdentityNumber(testutil.ValidIdentity)
	require.NoError(t, err)
	device, err := valueobject.NewDeviceDescriptor("Apple", "iPhone 13", "128GB", "Midnight")
	require.NoError(t, err)
	customer, err := valueobject.NewCustomerInfo("Jane Nakato", "+256700000001", "")
	require.NoError(t, err)

	base := money.NewFromInt(4_000_000, money.UGX)
	var reasons []string
	if decision.Equal(valueobject.DecisionAutoReject) {
		reasons = []string{valueobject.ReasonScoreTooLow}
	}
	return model.NewAssessmentParams{
		Number:    number,
		ShopID:    testutil.TestShopID,
		Identity:  identity,
		Device:    device,
		Customer:  customer,
		Answers:   map[string]string{"screen": "minor_scratches"},
		BaseValue: base,
		Scoring: model.ScoringResult{
			ConditionScore:   score,
			CalculatedOffer:  base.Percent(score),
			Decision:         decision,
			RejectionReasons: reasons,
		},
		CreatedBy: "staff-1",
	}
}

func newAssessment(t *testing.T, decision valueobject.Decision, score int) *model.TradeInAssessment {
	t.Helper()
	a, err := model.NewTradeInAssessment(newParams(t, decision, score))
	require.NoError(t, err)
	return a
}

func TestNewTradeInAssessment_InitialState(t *testing.T) {
	tests := []struct {
		name       string
		decision   valueobject.Decision
		score      int
		wantStatus valueobject.AssessmentStatus
		wantFinal  bool
	}{
		{"auto accept is approved with final offer", valueobject.DecisionAutoAccept, 85, valueobject.StatusApproved, true},
		{"auto reject is rejected without final offer", valueobject.DecisionAutoReject, 20, valueobject.StatusRejected, false},
		{"manual review is pending", valueobject.DecisionManualReview, 50, valueobject.StatusPending, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAssessment(t, tt.decision, tt.score)

			assert.Equal(t, tt.wantStatus, a.Status())
			assert.Equal(t, 1, a.Version())
			assert.Equal(t, "TI-10001", a.Number().String())
			if tt.wantFinal {
				require.NotNil(t, a.FinalOffer())
				assert.True(t, a.FinalOffer().Equal(a.CalculatedOffer()))
			} else {
				assert.Nil(t, a.FinalOffer())
			}

			evts := a.DomainEvents()
			require.Len(t, evts, 1)
			assert.Equal(t, event.TypeAssessmentSubmitted, evts[0].EventType())
			assert.Empty(t, a.DomainEvents())
		})
	}
}

func TestNewTradeInAssessment_OfferScenario(t *testing.T) {
	a := newAssessment(t, valueobject.DecisionAutoAccept, 85)
	assert.Equal(t, "3400000", a.CalculatedOffer().Amount().String())
}

func TestNewTradeInAssessment_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *model.NewAssessmentParams)
		wantErr string
	}{
		{"missing number", func(p *model.NewAssessmentParams) { p.Number = valueobject.TradeInNumber{} }, "trade-in number is required"},
		{"missing identity", func(p *model.NewAssessmentParams) { p.Identity = valueobject.IdentityNumber{} }, "identity is required"},
		{"zero base value", func(p *model.NewAssessmentParams) { p.BaseValue = money.Zero(money.UGX) }, "base value must be positive"},
		{"score out of range", func(p *model.NewAssessmentParams) { p.Scoring.ConditionScore = 101 }, "condition score must be between 0 and 100"},
		{"currency mismatch", func(p *model.NewAssessmentParams) {
			p.Scoring.CalculatedOffer = money.NewFromInt(10, money.USD)
		}, "does not match base value currency"},
		{"missing decision", func(p *model.NewAssessmentParams) { p.Scoring.Decision = valueobject.Decision{} }, "decision is required"},
		{"missing creator", func(p *model.NewAssessmentParams) { p.CreatedBy = " " }, "created by is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParams(t, valueobject.DecisionManualReview, 50)
			tt.mutate(&p)
			_, err := model.NewTradeInAssessment(p)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTradeInAssessment_Review(t *testing.T) {
	t.Run("accept without offer uses calculated offer", func(t *testing.T) {
		a := newAssessment(t, valueobject.DecisionManualReview, 50)
		a.DomainEvents()

		require.NoError(t, a.Review(valueobject.ReviewAccepted, nil, "looks fine", "manager-1"))

		assert.Equal(t, valueobject.StatusApproved, a.Status())
		require.NotNil(t, a.FinalOffer())
		assert.Equal(t, "2000000", a.FinalOffer().Amount().String())
		assert.Equal(t, "manager-1", a.ReviewedBy())
		assert.NotNil(t, a.ReviewedAt())
		assert.Equal(t, 2, a.Version())

		evts := a.DomainEvents()
		require.Len(t, evts, 1)
		assert.Equal(t, event.TypeAssessmentReviewed, evts[0].EventType())
	})

	t.Run("accept with negotiated offer", func(t *testing.T) {
		a := newAssessment(t, valueobject.DecisionManualReview, 50)
		offer := money.NewFromInt(1_800_000, money.UGX)

		require.NoError(t, a.Review(valueobject.ReviewAccepted, &offer, "", "manager-1"))
		assert.Equal(t, "1800000", a.FinalOffer().Amount().String())
	})

	t.Run("reject leaves final offer unset", func(t *testing.T) {
		a := newAssessment(t, valueobject.DecisionManualReview, 50)

		require.NoError(t, a.Review(valueobject.ReviewRejected, nil, "cracked frame", "manager-1"))
		assert.Equal(t, valueobject.StatusRejected, a.Status())
		assert.Nil(t, a.FinalOffer())
		assert.Equal(t, "cracked frame", a.ReviewNotes())
	})

	t.Run("only pending can be reviewed", func(t *testing.T) {
		a := newAssessment(t, valueobject.DecisionAutoAccept, 90)

		err := a.Review(valueobject.ReviewRejected, nil, "", "manager-1")
		assert.ErrorIs(t, err, domainerr.ErrAlreadyFinalized)
		assert.Equal(t, valueobject.StatusApproved, a.Status())
	})

	t.Run("negative offer rejected", func(t *testing.T) {
		a := newAssessment(t, valueobject.DecisionManualReview, 50)
		offer := money.NewFromInt(-1, money.UGX)

		err := a.Review(valueobject.ReviewAccepted, &offer, "", "manager-1")
		assert.ErrorIs(t, err, domainerr.ErrValidation)
		assert.Equal(t, valueobject.StatusPending, a.Status())
	})
}

func TestTradeInAssessment_CompletePayout(t *testing.T) {
	t.Run("approved can be paid", func(t *testing.T) {
		a := newAssessment(t, valueobject.DecisionAutoAccept, 85)
		a.DomainEvents()

		require.NoError(t, a.CompletePayout(valueobject.PayoutMobileMoney, "MM-123"))
		assert.Equal(t, valueobject.StatusCompleted, a.Status())
		assert.Equal(t, valueobject.PayoutMobileMoney, a.PayoutMethod())
		assert.NotNil(t, a.CompletedAt())

		evts := a.DomainEvents()
		require.Len(t, evts, 1)
		assert.Equal(t, event.TypePayoutCompleted, evts[0].EventType())
	})

	t.Run("mobile money requires reference", func(t *testing.T) {
		a := newAssessment(t, valueobject.DecisionAutoAccept, 85)
		err := a.CompletePayout(valueobject.PayoutMobileMoney, "")
		assert.ErrorIs(t, err, domainerr.ErrValidation)
	})

	for _, decision := range []valueobject.Decision{valueobject.DecisionManualReview, valueobject.DecisionAutoReject} {
		t.Run("not approved: "+decision.String(), func(t *testing.T) {
			a := newAssessment(t, decision, 25)
			err := a.CompletePayout(valueobject.PayoutCash, "")
			assert.ErrorIs(t, err, domainerr.ErrNotApproved)
		})
	}
}

func TestTradeInAssessment_Cancel(t *testing.T) {
	a := newAssessment(t, valueobject.DecisionAutoAccept, 85)
	require.NoError(t, a.CompletePayout(valueobject.PayoutCash, ""))

	require.NoError(t, a.Cancel("customer returned device"))
	assert.Equal(t, valueobject.StatusCancelled, a.Status())
	assert.False(t, a.Status().IsActive())

	err := a.Cancel("again")
	assert.ErrorIs(t, err, domainerr.ErrAlreadyFinalized)

	err = a.Cancel("")
	assert.Error(t, err)
}

func TestTradeInAssessment_RecordRoundTrip(t *testing.T) {
	a := newAssessment(t, valueobject.DecisionManualReview, 50)
	require.NoError(t, a.Review(valueobject.ReviewAccepted, nil, "ok", "manager-1"))

	restored, err := model.Reconstruct(a.Record())
	require.NoError(t, err)

	assert.Equal(t, a.ID(), restored.ID())
	assert.Equal(t, a.Status(), restored.Status())
	assert.Equal(t, a.Snapshot(), restored.Snapshot())
	assert.Equal(t, a.Answers(), restored.Answers())
	assert.Empty(t, restored.DomainEvents())
}
