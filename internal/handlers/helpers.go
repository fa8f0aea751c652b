package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bushboy/bookingswap/internal/middleware"
	"github.com/bushboy/bookingswap/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type errorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Best effort response writing
	json.NewEncoder(w).Encode(body)
}

func respondErrorCode(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{
		Error:   code,
		Kind:    string(service.KindOf(code)),
		Message: message,
	})
}

// respondServiceError maps a service error onto an HTTP status. The mapping
// follows the error kind taxonomy so callers can distinguish "someone else
// already accepted" from "the listing expired" from "payment failed".
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	var svcErr *service.ServiceError
	if !errors.As(err, &svcErr) {
		h.logger.Error("unexpected error", "error", err)
		respondErrorCode(w, http.StatusInternalServerError, service.ErrCodeInternalError, "internal error")
		return
	}

	respondErrorCode(w, statusForCode(svcErr.Code), svcErr.Code, svcErr.Message)
}

func statusForCode(code string) int {
	switch code {
	case service.ErrCodeNotFound, service.ErrCodeListingNotFound:
		return http.StatusNotFound
	case service.ErrCodeListingExpired:
		return http.StatusGone
	case service.ErrCodePaymentDeclined:
		return http.StatusPaymentRequired
	case service.ErrCodeInternalError, service.ErrCodeCriticalRollback:
		return http.StatusInternalServerError
	}

	switch service.KindOf(code) {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindAuthorization:
		return http.StatusForbidden
	case service.KindBusiness:
		return http.StatusConflict
	case service.KindInfrastructure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody parses and validates a JSON request body
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondErrorCode(w, http.StatusBadRequest, service.ErrCodeInvalidInput, "invalid JSON body")
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			respondErrorCode(w, http.StatusBadRequest, service.ErrCodeInvalidInput, verrs[0].Error())
			return false
		}
		respondErrorCode(w, http.StatusBadRequest, service.ErrCodeInvalidInput, "invalid request")
		return false
	}

	return true
}

func pathUUID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		respondErrorCode(w, http.StatusBadRequest, service.ErrCodeInvalidInput, "invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}

// callerID resolves the authenticated user from the request context
func callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		respondErrorCode(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return uuid.Nil, false
	}
	return id, true
}
