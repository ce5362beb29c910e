package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
)

// BlockKind distinguishes why an identity was put on the blocklist.
type BlockKind string

const (
	// BlockKindFraud is a standing block (stolen device, operator decision).
	BlockKindFraud BlockKind = "fraud"
	// BlockKindDuplicateAttempt records a second submission while the
	// referenced trade-in was still active.
	BlockKindDuplicateAttempt BlockKind = "duplicate_attempt"
)

// ParseBlockKind validates a stored kind.
func ParseBlockKind(s string) (BlockKind, error) {
	switch k := BlockKind(s); k {
	case BlockKindFraud, BlockKindDuplicateAttempt:
		return k, nil
	}
	return "", fmt.Errorf("invalid block kind: %q", s)
}

// BlockedIdentity is an append-only blocklist entry.
type BlockedIdentity struct {
	id              uuid.UUID
	identity        string
	kind            BlockKind
	reason          string
	referenceNumber string
	blockedBy       string
	blockedAt       time.Time
}

// NewFraudBlock blocks identity outright.
func NewFraudBlock(identity valueobject.IdentityNumber, reason, blockedBy string) (BlockedIdentity, error) {
	if identity.IsZero() {
		return BlockedIdentity{}, fmt.Errorf("identity is required")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return BlockedIdentity{}, fmt.Errorf("reason is required")
	}
	return BlockedIdentity{
		id:        uuid.New(),
		identity:  identity.String(),
		kind:      BlockKindFraud,
		reason:    reason,
		blockedBy: blockedBy,
		blockedAt: now(),
	}, nil
}

// NewDuplicateAttempt records a duplicate submission against the original trade-in.
func NewDuplicateAttempt(identity valueobject.IdentityNumber, original valueobject.TradeInNumber, attemptedBy string) BlockedIdentity {
	return BlockedIdentity{
		id:              uuid.New(),
		identity:        identity.String(),
		kind:            BlockKindDuplicateAttempt,
		reason:          fmt.Sprintf("Duplicate submission while %s is active", original),
		referenceNumber: original.String(),
		blockedBy:       attemptedBy,
		blockedAt:       now(),
	}
}

// ReconstructBlockedIdentity rebuilds an entry from storage.
func ReconstructBlockedIdentity(
	id uuid.UUID,
	identity string,
	kind BlockKind,
	reason, referenceNumber, blockedBy string,
	blockedAt time.Time,
) BlockedIdentity {
	return BlockedIdentity{
		id:              id,
		identity:        identity,
		kind:            kind,
		reason:          reason,
		referenceNumber: referenceNumber,
		blockedBy:       blockedBy,
		blockedAt:       blockedAt,
	}
}

func (b BlockedIdentity) ID() uuid.UUID           { return b.id }
func (b BlockedIdentity) Identity() string        { return b.identity }
func (b BlockedIdentity) Kind() BlockKind         { return b.kind }
func (b BlockedIdentity) Reason() string          { return b.reason }
func (b BlockedIdentity) ReferenceNumber() string { return b.referenceNumber }
func (b BlockedIdentity) BlockedBy() string       { return b.blockedBy }
func (b BlockedIdentity) BlockedAt() time.Time    { return b.blockedAt }

// BlocksSubmission reports whether the entry is a standing block. Duplicate
// attempt entries are a record of the attempt; the active original already
// stops further submissions and releasing it releases the identity.
func (b BlockedIdentity) BlocksSubmission() bool {
	return b.kind == BlockKindFraud
}
