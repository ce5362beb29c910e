// Package memory is an in-process implementation of the storage ports for
// development and tests. It enforces the same uniqueness and versioning rules
// as the PostgreSQL store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
)

// Store holds assessments, audit trails and the blocklist.
type Store struct {
	mu          sync.RWMutex
	assessments map[uuid.UUID]model.AssessmentRecord
	audit       map[uuid.UUID][]model.AuditLogEntry
	blocks      []model.BlockedIdentity
	seq         int64
}

var (
	_ port.AssessmentRepository = (*Store)(nil)
	_ port.AuditLogRepository   = (*Store)(nil)
	_ port.BlocklistRepository  = (*Store)(nil)
)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		assessments: make(map[uuid.UUID]model.AssessmentRecord),
		audit:       make(map[uuid.UUID][]model.AuditLogEntry),
		seq:         valueobject.FirstTradeInSequence - 1,
	}
}

func (s *Store) NextNumber(_ context.Context) (valueobject.TradeInNumber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return valueobject.NewTradeInNumber(s.seq)
}

func (s *Store) Create(_ context.Context, a *model.TradeInAssessment, entry *model.AuditLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := a.Record()
	if _, exists := s.assessments[rec.ID]; exists {
		return domainerr.New(domainerr.CodeValidation, "assessment %s already exists", rec.ID)
	}
	if isActive(rec.Status) {
		for _, other := range s.assessments {
			if other.Identity == rec.Identity && isActive(other.Status) {
				return domainerr.New(domainerr.CodeDuplicateIdentity,
					"identity already has an active trade-in %s", other.Number)
			}
		}
	}

	if err := entry.Seal(nil); err != nil {
		return err
	}
	s.assessments[rec.ID] = rec
	s.audit[rec.ID] = []model.AuditLogEntry{*entry}
	return nil
}

func (s *Store) Update(_ context.Context, a *model.TradeInAssessment, entry *model.AuditLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := a.Record()
	stored, ok := s.assessments[rec.ID]
	if !ok {
		return domainerr.New(domainerr.CodeNotFound, "assessment %s not found", rec.ID)
	}
	if stored.Version != rec.Version-1 {
		return domainerr.New(domainerr.CodeConcurrentModification,
			"assessment %s is at version %d, expected %d", rec.ID, stored.Version, rec.Version-1)
	}

	chain := s.audit[rec.ID]
	var prev *model.AuditLogEntry
	if len(chain) > 0 {
		prev = &chain[len(chain)-1]
	}
	if err := entry.Seal(prev); err != nil {
		return err
	}
	s.assessments[rec.ID] = rec
	s.audit[rec.ID] = append(chain, *entry)
	return nil
}

func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*model.TradeInAssessment, error) {
	s.mu.RLock()
	rec, ok := s.assessments[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domainerr.New(domainerr.CodeNotFound, "assessment %s not found", id)
	}
	return model.Reconstruct(rec)
}

func (s *Store) FindByNumber(_ context.Context, number valueobject.TradeInNumber) (*model.TradeInAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.assessments {
		if rec.Number == number.String() {
			return model.Reconstruct(rec)
		}
	}
	return nil, domainerr.New(domainerr.CodeNotFound, "trade-in %s not found", number)
}

func (s *Store) FindActiveByIdentity(_ context.Context, identity string) (*model.TradeInAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.assessments {
		if rec.Identity == identity && isActive(rec.Status) {
			return model.Reconstruct(rec)
		}
	}
	return nil, nil
}

func (s *Store) List(_ context.Context, filter port.ListFilter) ([]*model.TradeInAssessment, error) {
	s.mu.RLock()
	recs := make([]model.AssessmentRecord, 0, len(s.assessments))
	for _, rec := range s.assessments {
		if filter.ShopID != "" && rec.ShopID != filter.ShopID {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status.String() {
			continue
		}
		recs = append(recs, rec)
	}
	s.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool { return newerNumber(recs[i].Number, recs[j].Number) })

	if filter.Offset >= len(recs) {
		return []*model.TradeInAssessment{}, nil
	}
	recs = recs[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(recs) {
		recs = recs[:filter.Limit]
	}

	out := make([]*model.TradeInAssessment, 0, len(recs))
	for _, rec := range recs {
		a, err := model.Reconstruct(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *Store) ListByAssessment(_ context.Context, assessmentID uuid.UUID) ([]model.AuditLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chain := s.audit[assessmentID]
	out := make([]model.AuditLogEntry, len(chain))
	copy(out, chain)
	return out, nil
}

func (s *Store) Append(_ context.Context, entry model.BlockedIdentity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = append(s.blocks, entry)
	return nil
}

func (s *Store) FindByIdentity(_ context.Context, identity string) ([]model.BlockedIdentity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.BlockedIdentity
	for _, b := range s.blocks {
		if b.Identity() == identity {
			out = append(out, b)
		}
	}
	return out, nil
}

// newerNumber orders trade-in numbers by sequence; a longer number is newer.
func newerNumber(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a > b
}

func isActive(status string) bool {
	return valueobject.AssessmentStatus(status).IsActive()
}
