package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
)

type optSpec struct {
	value     string
	label     string
	deduction int
	rejection bool
}

func question(t *testing.T, id, text string, order int, opts ...optSpec) model.ConditionQuestion {
	t.Helper()
	options := make([]model.ConditionOption, 0, len(opts))
	for _, o := range opts {
		opt, err := model.NewConditionOption(o.value, o.label, o.deduction, o.rejection)
		require.NoError(t, err)
		options = append(options, opt)
	}
	q, err := model.NewConditionQuestion(id, text, model.CategoryBody, options, true, false, order)
	require.NoError(t, err)
	return q
}

func questionSet(t *testing.T) []model.ConditionQuestion {
	t.Helper()
	return []model.ConditionQuestion{
		question(t, "screen", "Screen condition", 1,
			optSpec{"perfect", "Perfect", 0, false},
			optSpec{"scratched", "Minor scratches", 15, false},
			optSpec{"cracked", "Cracked", 40, false},
		),
		question(t, "body", "Body condition", 2,
			optSpec{"clean", "Clean", 0, false},
			optSpec{"dented", "Dented", 30, false},
		),
		question(t, "water", "Water damage", 3,
			optSpec{"no", "No", 0, false},
			optSpec{"yes", "Yes", 50, true},
		),
		question(t, "battery", "Battery health", 4,
			optSpec{"good", "Good", 0, false},
			optSpec{"poor", "Below 80%", 20, false},
		),
	}
}
