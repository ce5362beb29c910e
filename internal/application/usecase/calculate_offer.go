package usecase

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/arinherbz/chat-interferes-sub000/internal/application/dto"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/service"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
	"github.com/arinherbz/chat-interferes-sub000/pkg/money"
)

// CalculateOffer previews score, decision and offer without persisting anything.
type CalculateOffer struct {
	refs      ReferenceData
	guard     *service.FraudGuard
	evaluator *service.Evaluator
	metrics   port.MetricsRecorder
	logger    *slog.Logger
	policy    Policy
}

// NewCalculateOffer creates a new CalculateOffer use case.
func NewCalculateOffer(
	refs ReferenceData,
	guard *service.FraudGuard,
	evaluator *service.Evaluator,
	policy Policy,
	metrics port.MetricsRecorder,
	logger *slog.Logger,
) *CalculateOffer {
	return &CalculateOffer{
		refs:      refs,
		guard:     guard,
		evaluator: evaluator,
		policy:    policy,
		metrics:   metricsOrNoop(metrics),
		logger:    logger,
	}
}

// Execute runs the pipeline. Guard findings become hard-stop reasons rather
// than errors, and no duplicate attempt is recorded.
func (uc *CalculateOffer) Execute(ctx context.Context, req dto.CalculateOfferRequest) (dto.CalculateOfferResponse, error) {
	ctx, span := tracer.Start(ctx, "CalculateOffer", trace.WithAttributes(
		attribute.String("shop.id", req.ShopID),
		attribute.Bool("identity.supplied", req.Identity != ""),
	))
	defer span.End()

	// 1. Validate the device and an optional base value override.
	device, err := valueobject.NewDeviceDescriptor(req.Device.Brand, req.Device.Model, req.Device.Storage, req.Device.Color)
	if err != nil {
		return dto.CalculateOfferResponse{}, err
	}
	var override *money.Money
	if req.BaseValue != nil {
		bv, err := money.Parse(*req.BaseValue, uc.policy.Currency.Code())
		if err != nil || !bv.IsPositive() {
			return dto.CalculateOfferResponse{}, domainerr.Validation("base_value", "must be a positive amount")
		}
		override = &bv
	}

	// 2. Run the fraud guard read-only when an identity was supplied.
	stops := uc.policy.hardStops(device, req.Locks)
	var guardReasons []string
	if req.Identity != "" {
		res, err := uc.guard.Check(ctx, req.Identity)
		if err != nil {
			return dto.CalculateOfferResponse{}, err
		}
		gs := res.HardStops()
		stops.InvalidIdentity = gs.InvalidIdentity
		stops.DuplicateIdentity = gs.DuplicateIdentity
		guardReasons = res.BlockReasons()
	}

	// 3. Load reference data.
	refs, err := uc.refs.load(ctx, req.ShopID, device, override)
	if err != nil {
		span.RecordError(err)
		return dto.CalculateOfferResponse{}, err
	}

	// 4. Score, decide and price.
	result, err := uc.evaluator.Evaluate(service.EvaluationInput{
		Answers:      req.Answers,
		Questions:    refs.questions,
		BaseValue:    refs.baseValue,
		HardStops:    stops,
		GuardReasons: guardReasons,
		Rule:         refs.rule,
	})
	if err != nil {
		return dto.CalculateOfferResponse{}, err
	}

	uc.metrics.OfferPreviewed(result.Decision.String())
	span.SetAttributes(
		attribute.Int("condition.score", result.ConditionScore),
		attribute.String("decision", result.Decision.String()),
	)

	reasons := result.RejectionReasons
	if reasons == nil {
		reasons = []string{}
	}
	return dto.CalculateOfferResponse{
		ConditionScore:     result.ConditionScore,
		BaseValue:          refs.baseValue.Amount().String(),
		CalculatedOffer:    result.CalculatedOffer.Amount().String(),
		Currency:           result.CalculatedOffer.Currency().Code(),
		Decision:           result.Decision.String(),
		RejectionReasons:   reasons,
		DeductionBreakdown: dto.FromDeductions(result.DeductionBreakdown),
	}, nil
}
