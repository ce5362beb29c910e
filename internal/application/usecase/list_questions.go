package usecase

import (
	"context"
	"fmt"

	"github.com/arinherbz/chat-interferes-sub000/internal/application/dto"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
)

// ListQuestions returns the active condition questions in display order.
type ListQuestions struct {
	source port.QuestionSource
}

// NewListQuestions creates a new ListQuestions use case.
func NewListQuestions(source port.QuestionSource) *ListQuestions {
	return &ListQuestions{source: source}
}

// Execute loads the question set.
func (uc *ListQuestions) Execute(ctx context.Context) ([]dto.QuestionResponse, error) {
	qs, err := uc.source.ActiveQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load condition questions: %w", err)
	}
	out := make([]dto.QuestionResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, dto.FromQuestion(q))
	}
	return out, nil
}
