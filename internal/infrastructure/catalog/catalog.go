// Package catalog loads the condition questions, base values and scoring
// rules from YAML. The file is parsed and validated once at start-up.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
	"github.com/arinherbz/chat-interferes-sub000/pkg/money"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

type fileRule struct {
	AcceptMin int `yaml:"accept_min"`
	RejectMax int `yaml:"reject_max"`
}

type fileOption struct {
	Value       string `yaml:"value"`
	Label       string `yaml:"label"`
	Deduction   int    `yaml:"deduction"`
	IsRejection bool   `yaml:"is_rejection"`
}

type fileQuestion struct {
	ID        string       `yaml:"id"`
	Text      string       `yaml:"text"`
	Category  string       `yaml:"category"`
	Options   []fileOption `yaml:"options"`
	Required  bool         `yaml:"required"`
	Critical  bool         `yaml:"critical"`
	SortOrder int          `yaml:"sort_order"`
}

type fileModel struct {
	Model  string           `yaml:"model"`
	Prices map[string]int64 `yaml:"prices"`
}

type fileBrand struct {
	Brand  string      `yaml:"brand"`
	ShopID string      `yaml:"shop_id"`
	Models []fileModel `yaml:"models"`
}

type file struct {
	Currency     string `yaml:"currency"`
	ScoringRules struct {
		Default *fileRule           `yaml:"default"`
		Shops   map[string]fileRule `yaml:"shops"`
	} `yaml:"scoring_rules"`
	Questions  []fileQuestion `yaml:"questions"`
	BaseValues []fileBrand    `yaml:"base_values"`
}

// Catalog is validated reference data. It serves the question, base value
// and scoring rule ports directly.
type Catalog struct {
	currency    money.Currency
	defaultRule valueobject.ScoringRule
	shopRules   map[string]valueobject.ScoringRule
	questions   []model.ConditionQuestion
	baseValues  []model.DeviceBaseValue
}

var (
	_ port.QuestionSource      = (*Catalog)(nil)
	_ port.BaseValueRepository = (*Catalog)(nil)
	_ port.ScoringRuleSource   = (*Catalog)(nil)
)

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file, or the compiled-in catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if f.Currency == "" {
		f.Currency = money.UGX.Code()
	}
	currency, err := money.NewCurrency(f.Currency)
	if err != nil {
		return nil, err
	}
	c := &Catalog{
		currency:    currency,
		defaultRule: valueobject.DefaultScoringRule(),
		shopRules:   make(map[string]valueobject.ScoringRule),
	}

	if r := f.ScoringRules.Default; r != nil {
		if c.defaultRule, err = valueobject.NewScoringRule(r.AcceptMin, r.RejectMax); err != nil {
			return nil, fmt.Errorf("default scoring rule: %w", err)
		}
	}
	for shop, r := range f.ScoringRules.Shops {
		rule, err := valueobject.NewScoringRule(r.AcceptMin, r.RejectMax)
		if err != nil {
			return nil, fmt.Errorf("scoring rule for shop %q: %w", shop, err)
		}
		c.shopRules[shop] = rule
	}

	seenQuestions := make(map[string]struct{}, len(f.Questions))
	for _, fq := range f.Questions {
		if _, dup := seenQuestions[fq.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", fq.ID)
		}
		seenQuestions[fq.ID] = struct{}{}

		opts := make([]model.ConditionOption, 0, len(fq.Options))
		for _, fo := range fq.Options {
			o, err := model.NewConditionOption(fo.Value, fo.Label, fo.Deduction, fo.IsRejection)
			if err != nil {
				return nil, fmt.Errorf("question %q: %w", fq.ID, err)
			}
			opts = append(opts, o)
		}
		q, err := model.NewConditionQuestion(fq.ID, fq.Text, model.QuestionCategory(fq.Category),
			opts, fq.Required, fq.Critical, fq.SortOrder)
		if err != nil {
			return nil, err
		}
		c.questions = append(c.questions, q)
	}
	model.SortQuestions(c.questions)

	seenValues := make(map[string]struct{})
	for _, fb := range f.BaseValues {
		for _, fm := range fb.Models {
			for storage, amount := range fm.Prices {
				key := valueKey(fb.ShopID, fb.Brand, fm.Model, storage)
				if _, dup := seenValues[key]; dup {
					return nil, fmt.Errorf("duplicate base value for %s %s %s", fb.Brand, fm.Model, storage)
				}
				seenValues[key] = struct{}{}

				v, err := model.NewDeviceBaseValue(fb.ShopID, fb.Brand, fm.Model, storage,
					money.NewFromInt(amount, currency), true)
				if err != nil {
					return nil, err
				}
				c.baseValues = append(c.baseValues, v)
			}
		}
	}

	return c, nil
}

// WithDefaultRule returns a copy whose default rule is rule.
func (c *Catalog) WithDefaultRule(rule valueobject.ScoringRule) *Catalog {
	cp := *c
	cp.defaultRule = rule
	return &cp
}

func (c *Catalog) Currency() money.Currency                      { return c.currency }
func (c *Catalog) Questions() []model.ConditionQuestion          { return c.questions }
func (c *Catalog) BaseValues() []model.DeviceBaseValue           { return c.baseValues }
func (c *Catalog) DefaultRule() valueobject.ScoringRule          { return c.defaultRule }
func (c *Catalog) ShopRules() map[string]valueobject.ScoringRule { return c.shopRules }

func (c *Catalog) ActiveQuestions(_ context.Context) ([]model.ConditionQuestion, error) {
	out := make([]model.ConditionQuestion, len(c.questions))
	copy(out, c.questions)
	return out, nil
}

// FindBaseValue prefers a shop-specific row over the shared one.
func (c *Catalog) FindBaseValue(_ context.Context, shopID string, device valueobject.DeviceDescriptor) (model.DeviceBaseValue, error) {
	var shared *model.DeviceBaseValue
	for i := range c.baseValues {
		v := &c.baseValues[i]
		if !v.IsActive() || !v.Matches(device) {
			continue
		}
		if v.ShopID() == shopID && shopID != "" {
			return *v, nil
		}
		if v.ShopID() == "" && shared == nil {
			shared = v
		}
	}
	if shared != nil {
		return *shared, nil
	}
	return model.DeviceBaseValue{}, domainerr.New(domainerr.CodeUnknownDeviceConfiguration,
		"no base value for %s", device)
}

func (c *Catalog) RuleForShop(_ context.Context, shopID string) (valueobject.ScoringRule, error) {
	if rule, ok := c.shopRules[shopID]; ok {
		return rule, nil
	}
	return c.defaultRule, nil
}

func valueKey(parts ...string) string {
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(parts, "|")
}
