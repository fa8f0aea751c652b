package handlers

import (
	"net/http"
	"time"

	"github.com/bushboy/bookingswap/internal/models"
)

type rejectRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

type settlementResponse struct {
	ID                      string     `json:"id"`
	Status                  string     `json:"status"`
	PaymentTransactionID    *string    `json:"payment_transaction_id,omitempty"`
	BlockchainTransactionID *string    `json:"blockchain_transaction_id,omitempty"`
	FailedStage             *string    `json:"failed_stage,omitempty"`
	ErrorDetails            *string    `json:"error_details,omitempty"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

type acceptResponse struct {
	Target     targetResponse     `json:"target"`
	Settlement settlementResponse `json:"settlement"`
}

func toSettlementResponse(rec *models.SettlementRecord) settlementResponse {
	resp := settlementResponse{
		ID:                      rec.ID.String(),
		Status:                  string(rec.Status),
		PaymentTransactionID:    rec.PaymentTransactionID,
		BlockchainTransactionID: rec.BlockchainTransactionID,
		ErrorDetails:            rec.ErrorDetails,
		CreatedAt:               rec.CreatedAt,
		UpdatedAt:               rec.UpdatedAt,
	}
	if rec.FailedStage != nil {
		stage := string(*rec.FailedStage)
		resp.FailedStage = &stage
	}
	return resp
}

// AcceptTarget handles POST /api/v1/targets/{targetId}/accept
func (h *Handler) AcceptTarget(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	targetID, ok := pathUUID(w, r, "targetId")
	if !ok {
		return
	}

	result, err := h.accepting.Accept(r.Context(), targetID, userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, acceptResponse{
		Target:     toTargetResponse(result.Target),
		Settlement: toSettlementResponse(result.Settlement),
	})
}

// RejectTarget handles POST /api/v1/targets/{targetId}/reject
func (h *Handler) RejectTarget(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	targetID, ok := pathUUID(w, r, "targetId")
	if !ok {
		return
	}

	var body rejectRequest
	if r.ContentLength > 0 && !h.decodeBody(w, r, &body) {
		return
	}

	target, err := h.accepting.Reject(r.Context(), targetID, userID, body.Reason)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toTargetResponse(target))
}
