package usecase

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"

	"github.com/arinherbz/chat-interferes-sub000/internal/application/dto"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
	"github.com/arinherbz/chat-interferes-sub000/pkg/events"
	"github.com/arinherbz/chat-interferes-sub000/pkg/money"
)

var tracer = otel.Tracer("github.com/arinherbz/chat-interferes-sub000/internal/application/usecase")

// Policy holds the engine settings that vary per deployment.
type Policy struct {
	Currency money.Currency
	// PrimaryBrand devices have no secondary lock; the flag is ignored for them.
	PrimaryBrand string
	// RequireAnswers rejects submissions that leave required questions unanswered.
	RequireAnswers bool
}

// DefaultPolicy is UGX pricing, Apple as primary brand, answers optional.
func DefaultPolicy() Policy {
	return Policy{Currency: money.UGX, PrimaryBrand: "Apple"}
}

func (p Policy) hardStops(device valueobject.DeviceDescriptor, locks dto.LockStatus) valueobject.HardStops {
	return valueobject.HardStops{
		IdentityLock:  locks.IdentityLockEnabled,
		SecondaryLock: locks.SecondaryLockEnabled && !strings.EqualFold(device.Brand, p.PrimaryBrand),
	}
}

type noopMetrics struct{}

func (noopMetrics) AssessmentSubmitted(string, int) {}
func (noopMetrics) AssessmentTransitioned(string)   {}
func (noopMetrics) GuardRejected(string)            {}
func (noopMetrics) OfferPreviewed(string)           {}

func metricsOrNoop(m port.MetricsRecorder) port.MetricsRecorder {
	if m == nil {
		return noopMetrics{}
	}
	return m
}

// publish sends events after commit. The audit row is the record of truth,
// so a failed publish is logged and not returned.
func publish(ctx context.Context, publisher port.EventPublisher, logger *slog.Logger, evts []events.DomainEvent) {
	if len(evts) == 0 || publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, evts...); err != nil {
		logger.ErrorContext(ctx, "failed to publish events", "count", len(evts), "error", err)
	}
}
