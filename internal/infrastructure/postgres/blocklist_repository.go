package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
)

// BlocklistRepository implements port.BlocklistRepository. Rows are never
// updated or deleted.
type BlocklistRepository struct {
	pool *pgxpool.Pool
}

var _ port.BlocklistRepository = (*BlocklistRepository)(nil)

// NewBlocklistRepository creates a new PostgreSQL-backed blocklist.
func NewBlocklistRepository(pool *pgxpool.Pool) *BlocklistRepository {
	return &BlocklistRepository{pool: pool}
}

// Append stores a blocklist entry.
func (r *BlocklistRepository) Append(ctx context.Context, b model.BlockedIdentity) error {
	query := `
		INSERT INTO blocked_identities (
			id, identity_number, kind, reason, reference_number, blocked_by, blocked_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		b.ID(),
		b.Identity(),
		string(b.Kind()),
		b.Reason(),
		b.ReferenceNumber(),
		b.BlockedBy(),
		b.BlockedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert blocked identity: %w", err)
	}
	return nil
}

// FindByIdentity returns every entry recorded for identity, oldest first.
func (r *BlocklistRepository) FindByIdentity(ctx context.Context, identity string) ([]model.BlockedIdentity, error) {
	query := `
		SELECT id, identity_number, kind, reason, reference_number, blocked_by, blocked_at
		FROM blocked_identities
		WHERE identity_number = $1
		ORDER BY blocked_at`

	rows, err := r.pool.Query(ctx, query, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocked identities: %w", err)
	}
	defer rows.Close()

	var out []model.BlockedIdentity
	for rows.Next() {
		var (
			id        uuid.UUID
			number    string
			kind      string
			reason    string
			ref       string
			blockedBy string
			blockedAt time.Time
		)
		if err := rows.Scan(&id, &number, &kind, &reason, &ref, &blockedBy, &blockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blocked identity: %w", err)
		}
		parsed, err := model.ParseBlockKind(kind)
		if err != nil {
			return nil, err
		}
		out = append(out, model.ReconstructBlockedIdentity(id, number, parsed, reason, ref, blockedBy, blockedAt.UTC()))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blocked identities: %w", err)
	}
	return out, nil
}
