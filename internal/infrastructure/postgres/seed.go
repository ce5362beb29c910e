package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
	pkgpostgres "github.com/arinherbz/chat-interferes-sub000/pkg/postgres"
)

// ReferenceCatalog is the reference data loaded into an empty database.
type ReferenceCatalog interface {
	Questions() []model.ConditionQuestion
	BaseValues() []model.DeviceBaseValue
	DefaultRule() valueobject.ScoringRule
	ShopRules() map[string]valueobject.ScoringRule
}

// SeedReferenceData inserts catalog questions, base values and shop rules that
// are not yet present, leaving rows an administrator has edited untouched.
// The shared scoring rule always tracks the catalog default.
func SeedReferenceData(ctx context.Context, pool *pgxpool.Pool, cat ReferenceCatalog) error {
	return pkgpostgres.WithTransaction(ctx, pool, func(tx pgx.Tx) error {
		for _, q := range cat.Questions() {
			opts := make([]optionRow, 0, len(q.Options()))
			for _, o := range q.Options() {
				opts = append(opts, optionRow{
					Value:       o.Value(),
					Label:       o.Label(),
					Deduction:   o.Deduction(),
					IsRejection: o.IsRejection(),
				})
			}
			_, err := tx.Exec(ctx, `
				INSERT INTO condition_questions (id, text, category, options, required, critical, sort_order)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (id) DO NOTHING`,
				q.ID(), q.Text(), string(q.Category()), opts, q.Required(), q.Critical(), q.SortOrder(),
			)
			if err != nil {
				return fmt.Errorf("failed to seed question %s: %w", q.ID(), err)
			}
		}

		for _, v := range cat.BaseValues() {
			_, err := tx.Exec(ctx, `
				INSERT INTO device_base_values (shop_id, brand, model, storage, base_value, currency, is_active)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (shop_id, brand, model, storage) DO NOTHING`,
				v.ShopID(), v.Brand(), v.Model(), v.Storage(),
				v.BaseValue().Amount(), v.BaseValue().Currency().Code(), v.IsActive(),
			)
			if err != nil {
				return fmt.Errorf("failed to seed base value %s %s %s: %w", v.Brand(), v.Model(), v.Storage(), err)
			}
		}

		def := cat.DefaultRule()
		_, err := tx.Exec(ctx, `
			INSERT INTO scoring_rules (shop_id, accept_min_score, reject_max_score)
			VALUES ('', $1, $2)
			ON CONFLICT (shop_id) DO UPDATE SET
				accept_min_score = EXCLUDED.accept_min_score,
				reject_max_score = EXCLUDED.reject_max_score`,
			def.AcceptMin(), def.RejectMax(),
		)
		if err != nil {
			return fmt.Errorf("failed to seed default scoring rule: %w", err)
		}
		for shopID, rule := range cat.ShopRules() {
			_, err := tx.Exec(ctx, `
				INSERT INTO scoring_rules (shop_id, accept_min_score, reject_max_score)
				VALUES ($1, $2, $3)
				ON CONFLICT (shop_id) DO NOTHING`,
				shopID, rule.AcceptMin(), rule.RejectMax(),
			)
			if err != nil {
				return fmt.Errorf("failed to seed scoring rule for shop %s: %w", shopID, err)
			}
		}
		return nil
	})
}
