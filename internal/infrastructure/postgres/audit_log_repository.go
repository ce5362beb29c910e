package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
	pkgpostgres "github.com/arinherbz/chat-interferes-sub000/pkg/postgres"
)

const auditColumns = `
	id, assessment_id, sequence, action,
	previous_state, new_state, actor, notes,
	occurred_at, prev_hash, hash`

// AuditLogRepository reads the append-only audit trail. Entries are written
// by AssessmentRepository inside its transactions.
type AuditLogRepository struct {
	pool *pgxpool.Pool
}

var _ port.AuditLogRepository = (*AuditLogRepository)(nil)

// NewAuditLogRepository creates a new PostgreSQL-backed audit log repository.
func NewAuditLogRepository(pool *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{pool: pool}
}

// ListByAssessment returns the entries of one assessment ordered by sequence.
func (r *AuditLogRepository) ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]model.AuditLogEntry, error) {
	query := `SELECT ` + auditColumns + `
		FROM trade_in_audit_log
		WHERE assessment_id = $1
		ORDER BY sequence`

	rows, err := r.pool.Query(ctx, query, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	entries := make([]model.AuditLogEntry, 0)
	for rows.Next() {
		e, err := scanAuditEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit log: %w", err)
	}
	return entries, nil
}

func insertAuditEntry(ctx context.Context, q pkgpostgres.Querier, e *model.AuditLogEntry) error {
	query := `
		INSERT INTO trade_in_audit_log (` + auditColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := q.Exec(ctx, query,
		e.ID,
		e.AssessmentID,
		e.Sequence,
		string(e.Action),
		e.PreviousState,
		e.NewState,
		e.Actor,
		e.Notes,
		e.Timestamp,
		e.PrevHash,
		e.Hash,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// lastAuditEntry returns nil when the assessment has no entries yet.
func lastAuditEntry(ctx context.Context, q pkgpostgres.Querier, assessmentID uuid.UUID) (*model.AuditLogEntry, error) {
	query := `SELECT ` + auditColumns + `
		FROM trade_in_audit_log
		WHERE assessment_id = $1
		ORDER BY sequence DESC
		LIMIT 1`

	e, err := scanAuditEntry(q.QueryRow(ctx, query, assessmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func scanAuditEntry(row pgx.Row) (model.AuditLogEntry, error) {
	var (
		e      model.AuditLogEntry
		action string
	)
	err := row.Scan(
		&e.ID, &e.AssessmentID, &e.Sequence, &action,
		&e.PreviousState, &e.NewState, &e.Actor, &e.Notes,
		&e.Timestamp, &e.PrevHash, &e.Hash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AuditLogEntry{}, err
		}
		return model.AuditLogEntry{}, fmt.Errorf("failed to scan audit entry: %w", err)
	}

	parsed, err := model.ParseAuditAction(action)
	if err != nil {
		return model.AuditLogEntry{}, err
	}
	e.Action = parsed
	e.Timestamp = e.Timestamp.UTC()
	return e, nil
}
