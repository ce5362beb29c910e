package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
	"github.com/arinherbz/chat-interferes-sub000/pkg/money"
)

// BaseValueRepository resolves device base values from device_base_values.
type BaseValueRepository struct {
	pool *pgxpool.Pool
}

var _ port.BaseValueRepository = (*BaseValueRepository)(nil)

func NewBaseValueRepository(pool *pgxpool.Pool) *BaseValueRepository {
	return &BaseValueRepository{pool: pool}
}

// FindBaseValue prefers the shop's own row over the shared ('') row.
func (r *BaseValueRepository) FindBaseValue(
	ctx context.Context,
	shopID string,
	device valueobject.DeviceDescriptor,
) (model.DeviceBaseValue, error) {
	query := `
		SELECT shop_id, base_value, currency
		FROM device_base_values
		WHERE brand = $1 AND model = $2 AND storage = $3
			AND is_active AND shop_id IN ('', $4)
		ORDER BY shop_id DESC
		LIMIT 1`

	var (
		rowShop  string
		amount   decimal.Decimal
		currency string
	)
	err := r.pool.QueryRow(ctx, query, device.Brand, device.Model, device.Storage, shopID).
		Scan(&rowShop, &amount, &currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.DeviceBaseValue{}, domainerr.New(domainerr.CodeUnknownDeviceConfiguration,
				"no base value for %s", device)
		}
		return model.DeviceBaseValue{}, fmt.Errorf("failed to query base value: %w", err)
	}

	cur, err := money.NewCurrency(currency)
	if err != nil {
		return model.DeviceBaseValue{}, err
	}
	return model.NewDeviceBaseValue(rowShop, device.Brand, device.Model, device.Storage, money.New(amount, cur), true)
}

type optionRow struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Deduction   int    `json:"deduction"`
	IsRejection bool   `json:"is_rejection"`
}

// QuestionRepository reads the active condition questions.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

var _ port.QuestionSource = (*QuestionRepository)(nil)

func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ActiveQuestions returns the active questions in display order.
func (r *QuestionRepository) ActiveQuestions(ctx context.Context) ([]model.ConditionQuestion, error) {
	query := `
		SELECT id, text, category, options, required, critical, sort_order
		FROM condition_questions
		WHERE is_active
		ORDER BY sort_order, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query condition questions: %w", err)
	}
	defer rows.Close()

	questions := make([]model.ConditionQuestion, 0)
	for rows.Next() {
		var (
			id, text, category string
			options            []optionRow
			required, critical bool
			sortOrder          int
		)
		if err := rows.Scan(&id, &text, &category, &options, &required, &critical, &sortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan condition question: %w", err)
		}

		opts := make([]model.ConditionOption, 0, len(options))
		for _, o := range options {
			opt, err := model.NewConditionOption(o.Value, o.Label, o.Deduction, o.IsRejection)
			if err != nil {
				return nil, fmt.Errorf("question %s: %w", id, err)
			}
			opts = append(opts, opt)
		}
		q, err := model.NewConditionQuestion(id, text, model.QuestionCategory(category), opts, required, critical, sortOrder)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate condition questions: %w", err)
	}
	return questions, nil
}

// ScoringRuleRepository reads per-shop thresholds. The '' row is the shared
// rule; fallback is used when neither exists.
type ScoringRuleRepository struct {
	pool     *pgxpool.Pool
	fallback valueobject.ScoringRule
}

var _ port.ScoringRuleSource = (*ScoringRuleRepository)(nil)

func NewScoringRuleRepository(pool *pgxpool.Pool, fallback valueobject.ScoringRule) *ScoringRuleRepository {
	return &ScoringRuleRepository{pool: pool, fallback: fallback}
}

func (r *ScoringRuleRepository) RuleForShop(ctx context.Context, shopID string) (valueobject.ScoringRule, error) {
	query := `
		SELECT accept_min_score, reject_max_score
		FROM scoring_rules
		WHERE shop_id IN ('', $1)
		ORDER BY shop_id DESC
		LIMIT 1`

	var acceptMin, rejectMax int
	err := r.pool.QueryRow(ctx, query, shopID).Scan(&acceptMin, &rejectMax)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.fallback, nil
		}
		return valueobject.ScoringRule{}, fmt.Errorf("failed to query scoring rule: %w", err)
	}
	return valueobject.NewScoringRule(acceptMin, rejectMax)
}
