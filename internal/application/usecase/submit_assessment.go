package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/arinherbz/chat-interferes-sub000/internal/application/dto"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/event"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/service"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
	"github.com/arinherbz/chat-interferes-sub000/pkg/events"
)

// SubmitAssessment runs the full pipeline and persists the outcome.
type SubmitAssessment struct {
	repo      port.AssessmentRepository
	publisher port.EventPublisher
	refs      ReferenceData
	guard     *service.FraudGuard
	evaluator *service.Evaluator
	metrics   port.MetricsRecorder
	logger    *slog.Logger
	policy    Policy
}

// NewSubmitAssessment creates a new SubmitAssessment use case.
func NewSubmitAssessment(
	repo port.AssessmentRepository,
	publisher port.EventPublisher,
	refs ReferenceData,
	guard *service.FraudGuard,
	evaluator *service.Evaluator,
	policy Policy,
	metrics port.MetricsRecorder,
	logger *slog.Logger,
) *SubmitAssessment {
	return &SubmitAssessment{
		repo:      repo,
		publisher: publisher,
		refs:      refs,
		guard:     guard,
		evaluator: evaluator,
		policy:    policy,
		metrics:   metricsOrNoop(metrics),
		logger:    logger,
	}
}

// Execute validates the identity, runs the fraud guard, scores, decides,
// prices and persists the assessment with its created audit entry. A
// blocked or duplicate identity fails the submission and nothing is stored
// except the duplicate attempt record.
func (uc *SubmitAssessment) Execute(ctx context.Context, req dto.SubmitAssessmentRequest) (dto.AssessmentResponse, error) {
	ctx, span := tracer.Start(ctx, "SubmitAssessment", trace.WithAttributes(
		attribute.String("shop.id", req.ShopID),
	))
	defer span.End()

	// 1. Validate the request.
	if strings.TrimSpace(req.Actor) == "" {
		return dto.AssessmentResponse{}, domainerr.Validation("actor", "is required")
	}
	device, err := valueobject.NewDeviceDescriptor(req.Device.Brand, req.Device.Model, req.Device.Storage, req.Device.Color)
	if err != nil {
		return dto.AssessmentResponse{}, err
	}
	customer, err := valueobject.NewCustomerInfo(req.Customer.Name, req.Customer.Phone, req.Customer.Email)
	if err != nil {
		return dto.AssessmentResponse{}, err
	}

	// 2. Fraud guard: format, blocklist, active history.
	guard, err := uc.guard.Check(ctx, req.Identity)
	if err != nil {
		return dto.AssessmentResponse{}, err
	}
	if guard.InvalidErr != nil {
		uc.metrics.GuardRejected("invalid_identity")
		return dto.AssessmentResponse{}, guard.InvalidErr
	}
	if guard.Blocked() {
		uc.metrics.GuardRejected("blocked")
		uc.logger.WarnContext(ctx, "blocked identity submitted", "identity", guard.Identity.String(), "actor", req.Actor)
		return dto.AssessmentResponse{}, domainerr.New(domainerr.CodeBlocked,
			"identity is blocked: %s", strings.Join(guard.BlockReasons(), "; "))
	}
	if guard.Duplicate() {
		return dto.AssessmentResponse{}, uc.rejectDuplicate(ctx, guard.Identity, guard.ActiveOriginal, req.Actor, req.VisibleShop)
	}

	// 3. Reference data.
	refs, err := uc.refs.load(ctx, req.ShopID, device, nil)
	if err != nil {
		span.RecordError(err)
		return dto.AssessmentResponse{}, err
	}
	if uc.policy.RequireAnswers {
		if missing := model.MissingRequired(refs.questions, req.Answers); len(missing) > 0 {
			return dto.AssessmentResponse{}, domainerr.Validation("answers",
				"missing required questions: "+strings.Join(missing, ", "))
		}
	}

	// 4. Score, decide and price.
	result, err := uc.evaluator.Evaluate(service.EvaluationInput{
		Answers:   req.Answers,
		Questions: refs.questions,
		BaseValue: refs.baseValue,
		HardStops: uc.policy.hardStops(device, req.Locks),
		Rule:      refs.rule,
	})
	if err != nil {
		return dto.AssessmentResponse{}, err
	}

	// 5. Create the aggregate.
	number, err := uc.repo.NextNumber(ctx)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to reserve trade-in number: %w", err)
	}
	assessment, err := model.NewTradeInAssessment(model.NewAssessmentParams{
		Number:       number,
		ShopID:       req.ShopID,
		Identity:     guard.Identity,
		Device:       device,
		SerialNumber: req.SerialNumber,
		Customer:     customer,
		Answers:      req.Answers,
		BaseValue:    refs.baseValue,
		Scoring:      result,
		CreatedBy:    req.Actor,
	})
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to create assessment: %w", err)
	}

	// 6. Persist with the created audit entry. The unique index on active
	// identity settles a race with a concurrent submission.
	entry := model.NewAuditLogEntry(assessment.ID(), model.AuditCreated, nil, assessment.Snapshot(), req.Actor, "")
	if err := uc.repo.Create(ctx, assessment, &entry); err != nil {
		if errors.Is(err, domainerr.ErrDuplicateIdentity) {
			original, findErr := uc.repo.FindActiveByIdentity(ctx, guard.Identity.String())
			if findErr != nil {
				return dto.AssessmentResponse{}, fmt.Errorf("failed to load original trade-in: %w", findErr)
			}
			return dto.AssessmentResponse{}, uc.rejectDuplicate(ctx, guard.Identity, original, req.Actor, req.VisibleShop)
		}
		return dto.AssessmentResponse{}, fmt.Errorf("failed to save assessment: %w", err)
	}

	// 7. Publish domain events.
	publish(ctx, uc.publisher, uc.logger, assessment.DomainEvents())

	uc.metrics.AssessmentSubmitted(result.Decision.String(), result.ConditionScore)
	span.SetAttributes(
		attribute.String("trade_in.number", number.String()),
		attribute.String("decision", result.Decision.String()),
	)
	uc.logger.InfoContext(ctx, "trade-in assessment submitted",
		"trade_in_number", number.String(),
		"decision", result.Decision.String(),
		"score", result.ConditionScore,
		"status", assessment.Status().String(),
	)

	return dto.FromModel(assessment), nil
}

// rejectDuplicate records the attempt against the active original and
// returns DuplicateIdentity. The original's number is only named to callers
// who may see its shop.
func (uc *SubmitAssessment) rejectDuplicate(
	ctx context.Context,
	identity valueobject.IdentityNumber,
	original *model.TradeInAssessment,
	actor, visibleShop string,
) error {
	uc.metrics.GuardRejected("duplicate")
	if original == nil {
		return domainerr.ErrDuplicateIdentity
	}

	entry, err := uc.guard.RecordDuplicateAttempt(ctx, identity, original.Number(), actor)
	if err != nil {
		return err
	}
	publish(ctx, uc.publisher, uc.logger, []events.DomainEvent{event.NewIdentityBlocked(
		entry.ID(), entry.Identity(), string(entry.Kind()), entry.Reason(), entry.ReferenceNumber(),
	)})
	uc.logger.WarnContext(ctx, "duplicate trade-in attempt",
		"identity", identity.String(),
		"original", original.Number().String(),
		"actor", actor,
	)

	if !visibleTo(original, visibleShop) {
		return domainerr.New(domainerr.CodeDuplicateIdentity, "identity already has an active trade-in at another shop")
	}
	return domainerr.New(domainerr.CodeDuplicateIdentity,
		"identity already has an active trade-in %s", original.Number())
}
