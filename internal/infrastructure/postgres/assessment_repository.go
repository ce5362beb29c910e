package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
	pkgpostgres "github.com/arinherbz/chat-interferes-sub000/pkg/postgres"
)

const activeIdentityConstraint = "trade_in_assessments_active_identity_key"

const assessmentColumns = `
	id, trade_in_number, shop_id, identity_number,
	brand, model, storage, color, serial_number,
	customer_name, customer_phone, customer_email,
	answers, base_value, currency, condition_score,
	calculated_offer, final_offer, decision,
	rejection_reasons, deduction_breakdown, status,
	payout_method, payout_reference, created_by,
	reviewed_by, reviewed_at, review_notes,
	completed_at, cancelled_at, cancel_reason,
	version, created_at, updated_at`

// AssessmentRepository implements port.AssessmentRepository using PostgreSQL.
type AssessmentRepository struct {
	pool *pgxpool.Pool
}

var _ port.AssessmentRepository = (*AssessmentRepository)(nil)

// NewAssessmentRepository creates a new PostgreSQL-backed assessment repository.
func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

// NextNumber draws the next value of the trade-in sequence.
func (r *AssessmentRepository) NextNumber(ctx context.Context) (valueobject.TradeInNumber, error) {
	var seq int64
	if err := r.pool.QueryRow(ctx, `SELECT nextval('trade_in_number_seq')`).Scan(&seq); err != nil {
		return valueobject.TradeInNumber{}, fmt.Errorf("failed to reserve trade-in number: %w", err)
	}
	return valueobject.NewTradeInNumber(seq)
}

// Create inserts the assessment and its first audit entry in one transaction.
func (r *AssessmentRepository) Create(ctx context.Context, a *model.TradeInAssessment, entry *model.AuditLogEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	rec := a.Record()
	query := `
		INSERT INTO trade_in_assessments (` + assessmentColumns + `
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22,
			$23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34
		)`

	_, err = tx.Exec(ctx, query, recordArgs(a, rec)...)
	if err != nil {
		if pkgpostgres.IsUniqueViolation(err, activeIdentityConstraint) {
			return domainerr.New(domainerr.CodeDuplicateIdentity,
				"identity %s already has an active trade-in", rec.Identity)
		}
		return fmt.Errorf("failed to insert assessment: %w", err)
	}

	if err := entry.Seal(nil); err != nil {
		return err
	}
	if err := insertAuditEntry(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Update writes a state transition guarded by the stored version and appends
// the audit entry after the last one on record.
func (r *AssessmentRepository) Update(ctx context.Context, a *model.TradeInAssessment, entry *model.AuditLogEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	rec := a.Record()

	var storedVersion int
	err = tx.QueryRow(ctx,
		`SELECT version FROM trade_in_assessments WHERE id = $1 FOR UPDATE`, rec.ID,
	).Scan(&storedVersion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainerr.New(domainerr.CodeNotFound, "assessment %s not found", rec.ID)
		}
		return fmt.Errorf("failed to lock assessment: %w", err)
	}
	if storedVersion != rec.Version-1 {
		return domainerr.New(domainerr.CodeConcurrentModification,
			"assessment %s is at version %d, expected %d", rec.ID, storedVersion, rec.Version-1)
	}

	query := `
		UPDATE trade_in_assessments SET
			final_offer = $2,
			status = $3,
			payout_method = $4,
			payout_reference = $5,
			reviewed_by = $6,
			reviewed_at = $7,
			review_notes = $8,
			completed_at = $9,
			cancelled_at = $10,
			cancel_reason = $11,
			version = $12,
			updated_at = $13
		WHERE id = $1`

	_, err = tx.Exec(ctx, query,
		rec.ID,
		nullableAmount(a),
		rec.Status,
		rec.PayoutMethod,
		rec.PayoutReference,
		rec.ReviewedBy,
		rec.ReviewedAt,
		rec.ReviewNotes,
		rec.CompletedAt,
		rec.CancelledAt,
		rec.CancelReason,
		rec.Version,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update assessment: %w", err)
	}

	prev, err := lastAuditEntry(ctx, tx, rec.ID)
	if err != nil {
		return err
	}
	if err := entry.Seal(prev); err != nil {
		return err
	}
	if err := insertAuditEntry(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// FindByID retrieves an assessment by its unique identifier.
func (r *AssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TradeInAssessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM trade_in_assessments WHERE id = $1`

	a, err := scanAssessment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainerr.New(domainerr.CodeNotFound, "assessment %s not found", id)
		}
		return nil, err
	}
	return a, nil
}

// FindByNumber retrieves an assessment by its trade-in number.
func (r *AssessmentRepository) FindByNumber(ctx context.Context, number valueobject.TradeInNumber) (*model.TradeInAssessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM trade_in_assessments WHERE trade_in_number = $1`

	a, err := scanAssessment(r.pool.QueryRow(ctx, query, number.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainerr.New(domainerr.CodeNotFound, "trade-in %s not found", number)
		}
		return nil, err
	}
	return a, nil
}

// FindActiveByIdentity returns the assessment currently holding identity.
func (r *AssessmentRepository) FindActiveByIdentity(ctx context.Context, identity string) (*model.TradeInAssessment, error) {
	query := `SELECT ` + assessmentColumns + `
		FROM trade_in_assessments
		WHERE identity_number = $1 AND status <> ALL($2)`

	a, err := scanAssessment(r.pool.QueryRow(ctx, query, identity, valueobject.InactiveStatuses()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// List returns assessments newest first.
func (r *AssessmentRepository) List(ctx context.Context, filter port.ListFilter) ([]*model.TradeInAssessment, error) {
	var (
		conds []string
		args  []any
	)
	if filter.ShopID != "" {
		args = append(args, filter.ShopID)
		conds = append(conds, fmt.Sprintf("shop_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status.String())
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + assessmentColumns + ` FROM trade_in_assessments`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY length(trade_in_number) DESC, trade_in_number DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	out := make([]*model.TradeInAssessment, 0)
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assessments: %w", err)
	}
	return out, nil
}

func recordArgs(a *model.TradeInAssessment, rec model.AssessmentRecord) []any {
	reasons := rec.RejectionReasons
	if reasons == nil {
		reasons = []string{}
	}
	deductions := rec.DeductionBreakdown
	if deductions == nil {
		deductions = []valueobject.Deduction{}
	}
	return []any{
		rec.ID,
		rec.Number,
		rec.ShopID,
		rec.Identity,
		rec.Brand,
		rec.Model,
		rec.Storage,
		rec.Color,
		rec.SerialNumber,
		rec.CustomerName,
		rec.CustomerPhone,
		rec.CustomerEmail,
		rec.Answers,
		a.BaseValue().Amount(),
		rec.Currency,
		rec.ConditionScore,
		a.CalculatedOffer().Amount(),
		nullableAmount(a),
		rec.Decision,
		reasons,
		deductions,
		rec.Status,
		rec.PayoutMethod,
		rec.PayoutReference,
		rec.CreatedBy,
		rec.ReviewedBy,
		rec.ReviewedAt,
		rec.ReviewNotes,
		rec.CompletedAt,
		rec.CancelledAt,
		rec.CancelReason,
		rec.Version,
		rec.CreatedAt,
		rec.UpdatedAt,
	}
}

func nullableAmount(a *model.TradeInAssessment) decimal.NullDecimal {
	if f := a.FinalOffer(); f != nil {
		return decimal.NewNullDecimal(f.Amount())
	}
	return decimal.NullDecimal{}
}

func scanAssessment(row pgx.Row) (*model.TradeInAssessment, error) {
	var (
		rec        model.AssessmentRecord
		baseValue  decimal.Decimal
		calculated decimal.Decimal
		finalOffer decimal.NullDecimal
		reviewedAt *time.Time
		completed  *time.Time
		cancelled  *time.Time
	)

	err := row.Scan(
		&rec.ID, &rec.Number, &rec.ShopID, &rec.Identity,
		&rec.Brand, &rec.Model, &rec.Storage, &rec.Color, &rec.SerialNumber,
		&rec.CustomerName, &rec.CustomerPhone, &rec.CustomerEmail,
		&rec.Answers, &baseValue, &rec.Currency, &rec.ConditionScore,
		&calculated, &finalOffer, &rec.Decision,
		&rec.RejectionReasons, &rec.DeductionBreakdown, &rec.Status,
		&rec.PayoutMethod, &rec.PayoutReference, &rec.CreatedBy,
		&rec.ReviewedBy, &reviewedAt, &rec.ReviewNotes,
		&completed, &cancelled, &rec.CancelReason,
		&rec.Version, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan assessment: %w", err)
	}

	rec.BaseValue = baseValue.String()
	rec.CalculatedOffer = calculated.String()
	if finalOffer.Valid {
		s := finalOffer.Decimal.String()
		rec.FinalOffer = &s
	}
	rec.ReviewedAt = utcPtr(reviewedAt)
	rec.CompletedAt = utcPtr(completed)
	rec.CancelledAt = utcPtr(cancelled)
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()

	a, err := model.Reconstruct(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct assessment %s: %w", rec.Number, err)
	}
	return a, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
