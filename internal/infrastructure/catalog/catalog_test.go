package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
	"github.com/arinherbz/chat-interferes-sub000/internal/infrastructure/catalog"
)

func TestDefault(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	assert.Equal(t, "UGX", c.Currency().Code())
	assert.NotEmpty(t, c.Questions())
	assert.NotEmpty(t, c.BaseValues())
	assert.Equal(t, valueobject.DefaultScoringRule(), c.DefaultRule())

	qs, err := c.ActiveQuestions(context.Background())
	require.NoError(t, err)
	for i := 1; i < len(qs); i++ {
		assert.LessOrEqual(t, qs[i-1].SortOrder(), qs[i].SortOrder())
	}

	v, err := c.FindBaseValue(context.Background(), "any-shop",
		valueobject.DeviceDescriptor{Brand: "Apple", Model: "iPhone 15 Pro Max", Storage: "256GB"})
	require.NoError(t, err)
	assert.Equal(t, "4300000", v.BaseValue().Amount().String())
}

func TestFindBaseValue_Unknown(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	_, err = c.FindBaseValue(context.Background(), "",
		valueobject.DeviceDescriptor{Brand: "Apple", Model: "iPhone 15 Pro Max", Storage: "64GB"})
	assert.ErrorIs(t, err, domainerr.ErrUnknownDeviceConfiguration)
}

const shopCatalog = `
currency: KES
scoring_rules:
  default: {accept_min: 75, reject_max: 25}
  shops:
    nairobi-2: {accept_min: 80, reject_max: 40}
questions:
  - id: screen
    text: Screen
    category: screen
    sort_order: 1
    options:
      - {value: ok, label: OK, deduction: 0}
base_values:
  - brand: Google
    models:
      - {model: "Pixel 8", prices: {"128GB": 60000}}
  - brand: Google
    shop_id: nairobi-2
    models:
      - {model: "Pixel 8", prices: {"128GB": 65000}}
`

func TestParse_ShopOverrides(t *testing.T) {
	c, err := catalog.Parse([]byte(shopCatalog))
	require.NoError(t, err)
	ctx := context.Background()
	pixel := valueobject.DeviceDescriptor{Brand: "Google", Model: "Pixel 8", Storage: "128GB"}

	shared, err := c.FindBaseValue(ctx, "mombasa-1", pixel)
	require.NoError(t, err)
	assert.Equal(t, "60000", shared.BaseValue().Amount().String())
	assert.Equal(t, "KES", shared.BaseValue().Currency().Code())

	own, err := c.FindBaseValue(ctx, "nairobi-2", pixel)
	require.NoError(t, err)
	assert.Equal(t, "65000", own.BaseValue().Amount().String())

	rule, err := c.RuleForShop(ctx, "nairobi-2")
	require.NoError(t, err)
	assert.Equal(t, 80, rule.AcceptMin())

	rule, err = c.RuleForShop(ctx, "mombasa-1")
	require.NoError(t, err)
	assert.Equal(t, 75, rule.AcceptMin())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"bad yaml", "questions: [", "decode catalog"},
		{"bad rule", "scoring_rules: {default: {accept_min: 30, reject_max: 70}}", "default scoring rule"},
		{"duplicate question", `
questions:
  - {id: a, text: A, category: body, options: [{value: x, label: X}]}
  - {id: a, text: A, category: body, options: [{value: x, label: X}]}
`, "duplicate question id"},
		{"deduction out of range", `
questions:
  - {id: a, text: A, category: body, options: [{value: x, label: X, deduction: 120}]}
`, "deduction must be between 0 and 100"},
		{"unknown category", `
questions:
  - {id: a, text: A, category: camera, options: [{value: x, label: X}]}
`, "invalid question category"},
		{"non positive price", `
base_values:
  - brand: Apple
    models: [{model: "iPhone 11", prices: {"64GB": 0}}]
`, "base value must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(shopCatalog), 0o600))

	c, err := catalog.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "KES", c.Currency().Code())

	_, err = catalog.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWithDefaultRule(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	rule, err := valueobject.NewScoringRule(90, 10)
	require.NoError(t, err)

	overridden := c.WithDefaultRule(rule)
	got, err := overridden.RuleForShop(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, rule, got)
	assert.Equal(t, valueobject.DefaultScoringRule(), c.DefaultRule())
}
