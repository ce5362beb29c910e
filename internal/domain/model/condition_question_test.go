package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
)

func mustOption(t *testing.T, value, label string, deduction int, rejection bool) model.ConditionOption {
	t.Helper()
	o, err := model.NewConditionOption(value, label, deduction, rejection)
	require.NoError(t, err)
	return o
}

func TestNewConditionOption_Validation(t *testing.T) {
	_, err := model.NewConditionOption("cracked", "Cracked", 101, false)
	assert.Error(t, err)
	_, err = model.NewConditionOption("cracked", "Cracked", -1, false)
	assert.Error(t, err)
	_, err = model.NewConditionOption("", "Cracked", 10, false)
	assert.Error(t, err)
}

func TestNewConditionQuestion(t *testing.T) {
	opts := []model.ConditionOption{
		mustOption(t, "none", "No damage", 0, false),
		mustOption(t, "cracked", "Cracked", 40, false),
	}

	t.Run("valid", func(t *testing.T) {
		q, err := model.NewConditionQuestion("screen", "Screen condition?", model.CategoryScreen, opts, true, false, 2)
		require.NoError(t, err)

		o, ok := q.Option("cracked")
		require.True(t, ok)
		assert.Equal(t, 40, o.Deduction())
		_, ok = q.Option("shattered")
		assert.False(t, ok)
	})

	t.Run("duplicate option value", func(t *testing.T) {
		dup := append(opts, mustOption(t, "none", "Again", 0, false))
		_, err := model.NewConditionQuestion("screen", "Screen condition?", model.CategoryScreen, dup, true, false, 2)
		assert.ErrorContains(t, err, "duplicate option value")
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := model.NewConditionQuestion("screen", "Screen condition?", "camera", opts, true, false, 2)
		assert.Error(t, err)
	})

	t.Run("no options", func(t *testing.T) {
		_, err := model.NewConditionQuestion("screen", "Screen condition?", model.CategoryScreen, nil, true, false, 2)
		assert.Error(t, err)
	})
}

func TestSortQuestionsAndMissingRequired(t *testing.T) {
	opts := []model.ConditionOption{mustOption(t, "yes", "Yes", 0, false)}
	b, err := model.NewConditionQuestion("b", "B?", model.CategoryBody, opts, true, false, 2)
	require.NoError(t, err)
	a, err := model.NewConditionQuestion("a", "A?", model.CategoryBody, opts, false, false, 2)
	require.NoError(t, err)
	c, err := model.NewConditionQuestion("c", "C?", model.CategorySecurity, opts, true, true, 1)
	require.NoError(t, err)

	qs := []model.ConditionQuestion{b, a, c}
	model.SortQuestions(qs)
	assert.Equal(t, []string{"c", "a", "b"}, []string{qs[0].ID(), qs[1].ID(), qs[2].ID()})

	assert.Equal(t, []string{"c", "b"}, model.MissingRequired(qs, map[string]string{"a": "yes"}))
	assert.Empty(t, model.MissingRequired(qs, map[string]string{"b": "yes", "c": "yes"}))
}
