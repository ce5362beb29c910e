package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/arinherbz/chat-interferes-sub000/internal/application/dto"
	"github.com/arinherbz/chat-interferes-sub000/internal/application/usecase"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
	"github.com/arinherbz/chat-interferes-sub000/pkg/auth"
)

// Role groups.
var (
	readRoles   = []string{auth.RoleStaff, auth.RoleManager, auth.RoleAdmin, auth.RoleAuditor, auth.RoleAPIClient}
	submitRoles = []string{auth.RoleStaff, auth.RoleManager, auth.RoleAdmin, auth.RoleAPIClient}
	payoutRoles = []string{auth.RoleStaff, auth.RoleManager, auth.RoleAdmin}
	reviewRoles = []string{auth.RoleManager, auth.RoleAdmin}
	auditRoles  = []string{auth.RoleManager, auth.RoleAdmin, auth.RoleAuditor}
)

// Proto-aligned request/response message types.
type (
	ValidateIdentityRequest  = dto.ValidateIdentityRequest
	ValidateIdentityResponse = dto.ValidateIdentityResponse
	CalculateOfferRequest    = dto.CalculateOfferRequest
	CalculateOfferResponse   = dto.CalculateOfferResponse
	SubmitAssessmentRequest  = dto.SubmitAssessmentRequest
	ReviewAssessmentRequest  = dto.ReviewAssessmentRequest
	CompletePayoutRequest    = dto.CompletePayoutRequest
	CancelAssessmentRequest  = dto.CancelAssessmentRequest
	GetAssessmentRequest     = dto.GetAssessmentRequest
	AssessmentResponse       = dto.AssessmentResponse
	ListAssessmentsRequest   = dto.ListAssessmentsRequest
	ListAssessmentsResponse  = dto.ListAssessmentsResponse
	ListAuditTrailRequest    = dto.ListAuditTrailRequest
	AuditTrailResponse       = dto.AuditTrailResponse
	BlockIdentityRequest     = dto.BlockIdentityRequest
	BlockedIdentityResponse  = dto.BlockedIdentityResponse
)

// ListQuestionsRequest is empty; the active question set is global.
type ListQuestionsRequest struct{}

// ListQuestionsResponse carries the condition questions in display order.
type ListQuestionsResponse struct {
	Questions []dto.QuestionResponse `json:"questions"`
}

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) (*auth.Claims, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "authentication required")
	}
	if !claims.HasAnyRole(roles...) {
		return nil, status.Error(codes.PermissionDenied, "insufficient permissions")
	}
	return claims, nil
}

// shopScope resolves the shop a request acts on.
func shopScope(claims *auth.Claims, requested string) (string, error) {
	shopID, ok := claims.ResolveShop(requested)
	if !ok {
		return "", status.Error(codes.PermissionDenied, "shop is outside the caller's scope")
	}
	return shopID, nil
}

// Compile-time assertion that TradeInHandler implements TradeInServiceServer.
var _ TradeInServiceServer = (*TradeInHandler)(nil)

// TradeInHandler implements the gRPC TradeInServiceServer interface.
type TradeInHandler struct {
	UnimplementedTradeInServiceServer
	uc     *usecase.Set
	logger *slog.Logger
}

// NewTradeInHandler creates a new gRPC handler.
func NewTradeInHandler(uc *usecase.Set, logger *slog.Logger) *TradeInHandler {
	return &TradeInHandler{uc: uc, logger: logger}
}

// ValidateIdentity checks an identity number and reports any active trade-in.
func (h *TradeInHandler) ValidateIdentity(ctx context.Context, req *ValidateIdentityRequest) (*ValidateIdentityResponse, error) {
	claims, err := requireRole(ctx, readRoles...)
	if err != nil {
		return nil, err
	}
	in := *req
	in.VisibleShop = claims.VisibleShop()
	resp, err := h.uc.ValidateIdentity.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus(ctx, "ValidateIdentity", err)
	}
	return &resp, nil
}

// CalculateOffer previews an offer without persisting anything.
func (h *TradeInHandler) CalculateOffer(ctx context.Context, req *CalculateOfferRequest) (*CalculateOfferResponse, error) {
	claims, err := requireRole(ctx, readRoles...)
	if err != nil {
		return nil, err
	}
	in := *req
	if in.ShopID, err = shopScope(claims, in.ShopID); err != nil {
		return nil, err
	}
	resp, err := h.uc.CalculateOffer.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus(ctx, "CalculateOffer", err)
	}
	return &resp, nil
}

// SubmitAssessment records a new trade-in.
func (h *TradeInHandler) SubmitAssessment(ctx context.Context, req *SubmitAssessmentRequest) (*AssessmentResponse, error) {
	claims, err := requireRole(ctx, submitRoles...)
	if err != nil {
		return nil, err
	}
	in := *req
	if in.ShopID, err = shopScope(claims, in.ShopID); err != nil {
		return nil, err
	}
	in.Actor = claims.Actor()
	in.VisibleShop = claims.VisibleShop()

	resp, err := h.uc.SubmitAssessment.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus(ctx, "SubmitAssessment", err)
	}
	return &resp, nil
}

// ReviewAssessment settles a pending assessment.
func (h *TradeInHandler) ReviewAssessment(ctx context.Context, req *ReviewAssessmentRequest) (*AssessmentResponse, error) {
	claims, err := requireRole(ctx, reviewRoles...)
	if err != nil {
		return nil, err
	}
	if err := h.checkScope(ctx, claims, req.AssessmentID); err != nil {
		return nil, err
	}
	in := *req
	in.Actor = claims.Actor()

	resp, err := h.uc.ReviewAssessment.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus(ctx, "ReviewAssessment", err)
	}
	return &resp, nil
}

// CompletePayout records the payout of an approved assessment.
func (h *TradeInHandler) CompletePayout(ctx context.Context, req *CompletePayoutRequest) (*AssessmentResponse, error) {
	claims, err := requireRole(ctx, payoutRoles...)
	if err != nil {
		return nil, err
	}
	if err := h.checkScope(ctx, claims, req.AssessmentID); err != nil {
		return nil, err
	}
	in := *req
	in.Actor = claims.Actor()

	resp, err := h.uc.CompletePayout.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus(ctx, "CompletePayout", err)
	}
	return &resp, nil
}

// CancelAssessment withdraws an assessment before payout.
func (h *TradeInHandler) CancelAssessment(ctx context.Context, req *CancelAssessmentRequest) (*AssessmentResponse, error) {
	claims, err := requireRole(ctx, reviewRoles...)
	if err != nil {
		return nil, err
	}
	if err := h.checkScope(ctx, claims, req.AssessmentID); err != nil {
		return nil, err
	}
	in := *req
	in.Actor = claims.Actor()

	resp, err := h.uc.CancelAssessment.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus(ctx, "CancelAssessment", err)
	}
	return &resp, nil
}

// GetAssessment loads an assessment by id or trade-in number.
func (h *TradeInHandler) GetAssessment(ctx context.Context, req *GetAssessmentRequest) (*AssessmentResponse, error) {
	claims, err := requireRole(ctx, readRoles...)
	if err != nil {
		return nil, err
	}
	resp, err := h.uc.GetAssessment.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "GetAssessment", err)
	}
	if !claims.CanAccessShop(resp.ShopID) {
		return nil, status.Error(codes.NotFound, string(domainerr.CodeNotFound)+": assessment not found")
	}
	return &resp, nil
}

// ListAssessments pages through assessments, newest first.
func (h *TradeInHandler) ListAssessments(ctx context.Context, req *ListAssessmentsRequest) (*ListAssessmentsResponse, error) {
	claims, err := requireRole(ctx, readRoles...)
	if err != nil {
		return nil, err
	}
	in := *req
	if in.ShopID, err = shopScope(claims, in.ShopID); err != nil {
		return nil, err
	}
	resp, err := h.uc.ListAssessments.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus(ctx, "ListAssessments", err)
	}
	return &resp, nil
}

// ListAuditTrail returns an assessment's audit entries and chain verification.
func (h *TradeInHandler) ListAuditTrail(ctx context.Context, req *ListAuditTrailRequest) (*AuditTrailResponse, error) {
	claims, err := requireRole(ctx, auditRoles...)
	if err != nil {
		return nil, err
	}
	if err := h.checkScope(ctx, claims, req.AssessmentID); err != nil {
		return nil, err
	}
	resp, err := h.uc.ListAuditTrail.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "ListAuditTrail", err)
	}
	return &resp, nil
}

// BlockIdentity adds a fraud block.
func (h *TradeInHandler) BlockIdentity(ctx context.Context, req *BlockIdentityRequest) (*BlockedIdentityResponse, error) {
	claims, err := requireRole(ctx, reviewRoles...)
	if err != nil {
		return nil, err
	}
	in := *req
	in.Actor = claims.Actor()

	resp, err := h.uc.BlockIdentity.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus(ctx, "BlockIdentity", err)
	}
	return &resp, nil
}

// ListQuestions returns the active condition questions.
func (h *TradeInHandler) ListQuestions(ctx context.Context, _ *ListQuestionsRequest) (*ListQuestionsResponse, error) {
	if _, err := requireRole(ctx, readRoles...); err != nil {
		return nil, err
	}
	questions, err := h.uc.ListQuestions.Execute(ctx)
	if err != nil {
		return nil, h.toStatus(ctx, "ListQuestions", err)
	}
	return &ListQuestionsResponse{Questions: questions}, nil
}

// checkScope hides assessments of other shops behind NotFound.
func (h *TradeInHandler) checkScope(ctx context.Context, claims *auth.Claims, id uuid.UUID) error {
	if claims.ShopID == "" || claims.HasRole(auth.RoleAdmin) {
		return nil
	}
	a, err := h.uc.GetAssessment.Execute(ctx, dto.GetAssessmentRequest{AssessmentID: id})
	if err != nil {
		return h.toStatus(ctx, "checkScope", err)
	}
	if !claims.CanAccessShop(a.ShopID) {
		return status.Error(codes.NotFound, string(domainerr.CodeNotFound)+": assessment not found")
	}
	return nil
}

// toStatus maps a use case error to a gRPC status. The domain code prefixes
// the message so clients can branch on it.
func (h *TradeInHandler) toStatus(ctx context.Context, method string, err error) error {
	var c codes.Code
	switch {
	case errors.Is(err, domainerr.ErrInvalidIdentity), errors.Is(err, domainerr.ErrValidation):
		c = codes.InvalidArgument
	case errors.Is(err, domainerr.ErrDuplicateIdentity):
		c = codes.AlreadyExists
	case errors.Is(err, domainerr.ErrUnknownDeviceConfiguration), errors.Is(err, domainerr.ErrNotFound):
		c = codes.NotFound
	case errors.Is(err, domainerr.ErrBlocked),
		errors.Is(err, domainerr.ErrNotApproved),
		errors.Is(err, domainerr.ErrAlreadyFinalized):
		c = codes.FailedPrecondition
	case errors.Is(err, domainerr.ErrConcurrentModification):
		c = codes.Aborted
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request cancelled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	default:
		h.logger.ErrorContext(ctx, "request failed", "method", method, "error", err)
		return status.Error(codes.Internal, "internal error")
	}

	h.logger.DebugContext(ctx, "request rejected", "method", method, "code", c.String(), "error", err)
	return status.Error(c, fmt.Sprintf("%s: %s", domainerr.CodeOf(err), err.Error()))
}
