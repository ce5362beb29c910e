package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
	"github.com/arinherbz/chat-interferes-sub000/pkg/events"
)

// ListFilter narrows an assessment listing.
type ListFilter struct {
	ShopID string
	Status valueobject.AssessmentStatus
	Limit  int
	Offset int
}

// AssessmentRepository defines the persistence port for trade-in assessments.
// Create and Update write the assessment and its audit entry atomically; the
// entry is sealed against the stored chain inside the same transaction.
type AssessmentRepository interface {
	// NextNumber reserves the next trade-in number.
	NextNumber(ctx context.Context) (valueobject.TradeInNumber, error)

	// Create persists a new assessment. It returns ErrDuplicateIdentity when
	// another active assessment holds the same identity.
	Create(ctx context.Context, assessment *model.TradeInAssessment, entry *model.AuditLogEntry) error

	// Update persists a state transition. It returns ErrConcurrentModification
	// when the stored version is not the one the assessment was loaded at.
	Update(ctx context.Context, assessment *model.TradeInAssessment, entry *model.AuditLogEntry) error

	// FindByID returns ErrNotFound when no assessment exists.
	FindByID(ctx context.Context, id uuid.UUID) (*model.TradeInAssessment, error)

	// FindByNumber returns ErrNotFound when no assessment exists.
	FindByNumber(ctx context.Context, number valueobject.TradeInNumber) (*model.TradeInAssessment, error)

	// FindActiveByIdentity returns nil, nil when the identity has no active assessment.
	FindActiveByIdentity(ctx context.Context, identity string) (*model.TradeInAssessment, error)

	// List returns assessments newest first.
	List(ctx context.Context, filter ListFilter) ([]*model.TradeInAssessment, error)
}

// AuditLogRepository reads the append-only audit trail.
type AuditLogRepository interface {
	// ListByAssessment returns the entries ordered by sequence.
	ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]model.AuditLogEntry, error)
}

// BlocklistRepository is the append-only identity blocklist.
type BlocklistRepository interface {
	Append(ctx context.Context, entry model.BlockedIdentity) error
	FindByIdentity(ctx context.Context, identity string) ([]model.BlockedIdentity, error)
}

// BaseValueRepository resolves the base value of a device configuration.
type BaseValueRepository interface {
	// FindBaseValue returns ErrUnknownDeviceConfiguration when no active row matches.
	FindBaseValue(ctx context.Context, shopID string, device valueobject.DeviceDescriptor) (model.DeviceBaseValue, error)
}

// QuestionSource provides the active condition questions in display order.
type QuestionSource interface {
	ActiveQuestions(ctx context.Context) ([]model.ConditionQuestion, error)
}

// ScoringRuleSource provides the decision thresholds for a shop.
type ScoringRuleSource interface {
	RuleForShop(ctx context.Context, shopID string) (valueobject.ScoringRule, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	Publish(ctx context.Context, events ...events.DomainEvent) error
}

// MetricsRecorder receives engine outcome counters.
type MetricsRecorder interface {
	AssessmentSubmitted(decision string, score int)
	AssessmentTransitioned(action string)
	GuardRejected(reason string)
	OfferPreviewed(decision string)
}
