package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/arinherbz/chat-interferes-sub000/internal/application/dto"
	"github.com/arinherbz/chat-interferes-sub000/internal/application/usecase"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
	"github.com/arinherbz/chat-interferes-sub000/pkg/auth"
)

var (
	readRoles   = []string{auth.RoleStaff, auth.RoleManager, auth.RoleAdmin, auth.RoleAuditor, auth.RoleAPIClient}
	submitRoles = []string{auth.RoleStaff, auth.RoleManager, auth.RoleAdmin, auth.RoleAPIClient}
	payoutRoles = []string{auth.RoleStaff, auth.RoleManager, auth.RoleAdmin}
	reviewRoles = []string{auth.RoleManager, auth.RoleAdmin}
	auditRoles  = []string{auth.RoleManager, auth.RoleAdmin, auth.RoleAuditor}
)

// TradeInHandler serves the trade-in JSON API.
type TradeInHandler struct {
	uc     *usecase.Set
	logger *slog.Logger
}

// NewTradeInHandler creates a new REST handler.
func NewTradeInHandler(uc *usecase.Set, logger *slog.Logger) *TradeInHandler {
	return &TradeInHandler{uc: uc, logger: logger}
}

// Register mounts the API routes on r. Callers are expected to have
// authenticated the request already.
func (h *TradeInHandler) Register(r chi.Router) {
	r.Post("/identity/validate", h.handleValidateIdentity)
	r.Post("/offers/preview", h.handleCalculateOffer)
	r.Get("/questions", h.handleListQuestions)
	r.Post("/blocklist", h.handleBlockIdentity)

	r.Route("/assessments", func(r chi.Router) {
		r.Post("/", h.handleSubmitAssessment)
		r.Get("/", h.handleListAssessments)
		r.Route("/{ref}", func(r chi.Router) {
			r.Get("/", h.handleGetAssessment)
			r.Get("/audit", h.handleListAuditTrail)
			r.Post("/review", h.handleReviewAssessment)
			r.Post("/payout", h.handleCompletePayout)
			r.Post("/cancel", h.handleCancelAssessment)
		})
	})
}

func requireRole(ctx context.Context, roles ...string) (*auth.Claims, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil, errUnauthenticated
	}
	if !claims.HasAnyRole(roles...) {
		return nil, errForbidden
	}
	return claims, nil
}

// lookup resolves {ref}, a UUID or trade-in number, to an assessment the
// caller may see. Assessments of other shops are reported as not found.
func (h *TradeInHandler) lookup(r *http.Request, claims *auth.Claims) (dto.AssessmentResponse, error) {
	ref := chi.URLParam(r, "ref")
	req := dto.GetAssessmentRequest{TradeInNumber: ref}
	if id, err := uuid.Parse(ref); err == nil {
		req = dto.GetAssessmentRequest{AssessmentID: id}
	}

	a, err := h.uc.GetAssessment.Execute(r.Context(), req)
	if err != nil {
		return dto.AssessmentResponse{}, err
	}
	if !claims.CanAccessShop(a.ShopID) {
		return dto.AssessmentResponse{}, domainerr.New(domainerr.CodeNotFound, "trade-in %s not found", ref)
	}
	return a, nil
}

func (h *TradeInHandler) handleValidateIdentity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, err := requireRole(ctx, readRoles...)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}

	var req dto.ValidateIdentityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	req.VisibleShop = claims.VisibleShop()
	resp, err := h.uc.ValidateIdentity.Execute(ctx, req)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TradeInHandler) handleCalculateOffer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, err := requireRole(ctx, readRoles...)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}

	var req dto.CalculateOfferRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	shopID, ok := claims.ResolveShop(req.ShopID)
	if !ok {
		writeError(ctx, w, h.logger, errShopScope)
		return
	}
	req.ShopID = shopID

	resp, err := h.uc.CalculateOffer.Execute(ctx, req)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TradeInHandler) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, err := requireRole(ctx, readRoles...); err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	questions, err := h.uc.ListQuestions.Execute(ctx)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

func (h *TradeInHandler) handleSubmitAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	claims, err := requireRole(ctx, submitRoles...)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}

	var req dto.SubmitAssessmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	shopID, ok := claims.ResolveShop(req.ShopID)
	if !ok {
		writeError(ctx, w, h.logger, errShopScope)
		return
	}
	req.ShopID = shopID
	req.Actor = claims.Actor()
	req.VisibleShop = claims.VisibleShop()

	resp, err := h.uc.SubmitAssessment.Execute(ctx, req)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "assessment submitted",
		"request_id", middleware.GetReqID(ctx),
		"trade_in_number", resp.TradeInNumber,
		"decision", resp.Decision,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	w.Header().Set("Location", "/api/v1/assessments/"+resp.ID.String())
	writeJSON(w, http.StatusCreated, resp)
}

func (h *TradeInHandler) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, err := requireRole(ctx, readRoles...)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}

	q := r.URL.Query()
	req := dto.ListAssessmentsRequest{ShopID: q.Get("shop_id"), Status: q.Get("status")}
	if req.Limit, err = queryInt(q.Get("limit"), "limit"); err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	if req.Offset, err = queryInt(q.Get("offset"), "offset"); err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	shopID, ok := claims.ResolveShop(req.ShopID)
	if !ok {
		writeError(ctx, w, h.logger, errShopScope)
		return
	}
	req.ShopID = shopID

	resp, err := h.uc.ListAssessments.Execute(ctx, req)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TradeInHandler) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, err := requireRole(ctx, readRoles...)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	a, err := h.lookup(r, claims)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *TradeInHandler) handleListAuditTrail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, err := requireRole(ctx, auditRoles...)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	a, err := h.lookup(r, claims)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	resp, err := h.uc.ListAuditTrail.Execute(ctx, dto.ListAuditTrailRequest{AssessmentID: a.ID})
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TradeInHandler) handleReviewAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, err := requireRole(ctx, reviewRoles...)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	var req dto.ReviewAssessmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	a, err := h.lookup(r, claims)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	req.AssessmentID = a.ID
	req.Actor = claims.Actor()

	resp, err := h.uc.ReviewAssessment.Execute(ctx, req)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TradeInHandler) handleCompletePayout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, err := requireRole(ctx, payoutRoles...)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	var req dto.CompletePayoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	a, err := h.lookup(r, claims)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	req.AssessmentID = a.ID
	req.Actor = claims.Actor()

	resp, err := h.uc.CompletePayout.Execute(ctx, req)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TradeInHandler) handleCancelAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, err := requireRole(ctx, reviewRoles...)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	var req dto.CancelAssessmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	a, err := h.lookup(r, claims)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	req.AssessmentID = a.ID
	req.Actor = claims.Actor()

	resp, err := h.uc.CancelAssessment.Execute(ctx, req)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TradeInHandler) handleBlockIdentity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, err := requireRole(ctx, reviewRoles...)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	var req dto.BlockIdentityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	req.Actor = claims.Actor()

	resp, err := h.uc.BlockIdentity.Execute(ctx, req)
	if err != nil {
		writeError(ctx, w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func queryInt(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domainerr.Validation(field, "must be an integer")
	}
	return n, nil
}
