package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// httpError is a transport failure that has no domain code.
type httpError struct {
	status  int
	code    string
	message string
}

func (e *httpError) Error() string { return e.message }

var (
	errUnauthenticated = &httpError{status: http.StatusUnauthorized, code: "UNAUTHENTICATED", message: "authentication required"}
	errForbidden       = &httpError{status: http.StatusForbidden, code: "PERMISSION_DENIED", message: "insufficient permissions"}
	errShopScope       = &httpError{status: http.StatusForbidden, code: "PERMISSION_DENIED", message: "shop is outside the caller's scope"}
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps a domain code to an HTTP status.
func statusFor(code domainerr.Code) int {
	switch code {
	case domainerr.CodeInvalidFormat, domainerr.CodeChecksumMismatch, domainerr.CodeInvalidIdentity, domainerr.CodeValidation:
		return http.StatusBadRequest
	case domainerr.CodeBlocked:
		return http.StatusForbidden
	case domainerr.CodeDuplicateIdentity, domainerr.CodeNotApproved, domainerr.CodeAlreadyFinalized, domainerr.CodeConcurrentModification:
		return http.StatusConflict
	case domainerr.CodeUnknownDeviceConfiguration:
		return http.StatusUnprocessableEntity
	case domainerr.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err. Unclassified errors are logged and hidden.
func writeError(ctx context.Context, w http.ResponseWriter, logger *slog.Logger, err error) {
	requestID := middleware.GetReqID(ctx)

	var he *httpError
	if errors.As(err, &he) {
		writeJSON(w, he.status, ErrorResponse{Code: he.code, Message: he.message, RequestID: requestID})
		return
	}

	code := domainerr.CodeOf(err)
	if code == "" {
		logger.ErrorContext(ctx, "request failed", "request_id", requestID, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Code:      "INTERNAL",
			Message:   "internal error",
			RequestID: requestID,
		})
		return
	}
	writeJSON(w, statusFor(code), ErrorResponse{Code: string(code), Message: err.Error(), RequestID: requestID})
}

// decodeJSON reads a single JSON object into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return domainerr.Validation("body", "is required")
		}
		return domainerr.Validation("body", fmt.Sprintf("malformed JSON: %v", err))
	}
	if dec.More() {
		return domainerr.Validation("body", "must contain a single JSON object")
	}
	return nil
}
