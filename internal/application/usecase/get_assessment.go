package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/arinherbz/chat-interferes-sub000/internal/application/dto"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/port"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
)

// GetAssessment is the use case for retrieving an assessment by id or number.
type GetAssessment struct {
	repo port.AssessmentRepository
}

// NewGetAssessment creates a new GetAssessment use case.
func NewGetAssessment(repo port.AssessmentRepository) *GetAssessment {
	return &GetAssessment{repo: repo}
}

// Execute prefers the id when both are set.
func (uc *GetAssessment) Execute(ctx context.Context, req dto.GetAssessmentRequest) (dto.AssessmentResponse, error) {
	var (
		a   *model.TradeInAssessment
		err error
	)
	switch {
	case req.AssessmentID != uuid.Nil:
		a, err = uc.repo.FindByID(ctx, req.AssessmentID)
	case req.TradeInNumber != "":
		number, perr := valueobject.ParseTradeInNumber(req.TradeInNumber)
		if perr != nil {
			return dto.AssessmentResponse{}, domainerr.Validation("trade_in_number", perr.Error())
		}
		a, err = uc.repo.FindByNumber(ctx, number)
	default:
		return dto.AssessmentResponse{}, domainerr.Validation("assessment_id", "id or trade-in number is required")
	}
	if err != nil {
		return dto.AssessmentResponse{}, err
	}
	return dto.FromModel(a), nil
}

// ListAssessments is the use case for listing assessments.
type ListAssessments struct {
	repo port.AssessmentRepository
}

// NewListAssessments creates a new ListAssessments use case.
func NewListAssessments(repo port.AssessmentRepository) *ListAssessments {
	return &ListAssessments{repo: repo}
}

// Execute returns assessments newest first. Limit defaults to 50 and is capped at 200.
func (uc *ListAssessments) Execute(ctx context.Context, req dto.ListAssessmentsRequest) (dto.ListAssessmentsResponse, error) {
	filter := port.ListFilter{ShopID: req.ShopID, Limit: req.Limit, Offset: req.Offset}
	if req.Status != "" {
		status, err := valueobject.ParseAssessmentStatus(req.Status)
		if err != nil {
			return dto.ListAssessmentsResponse{}, domainerr.Validation("status", err.Error())
		}
		filter.Status = status
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	items, err := uc.repo.List(ctx, filter)
	if err != nil {
		return dto.ListAssessmentsResponse{}, fmt.Errorf("failed to list assessments: %w", err)
	}
	resp := dto.ListAssessmentsResponse{Assessments: make([]dto.AssessmentResponse, 0, len(items))}
	for _, a := range items {
		resp.Assessments = append(resp.Assessments, dto.FromModel(a))
	}
	return resp, nil
}
