package handlers

import (
	"net/http"
	"time"

	"github.com/bushboy/bookingswap/internal/models"
	"github.com/bushboy/bookingswap/internal/service"
	"github.com/google/uuid"
)

type createTargetRequest struct {
	SourceListingID string  `json:"source_listing_id" validate:"required,uuid"`
	TargetListingID string  `json:"target_listing_id" validate:"required,uuid"`
	Message         *string `json:"message,omitempty"`
	Conditions      *string `json:"conditions,omitempty"`
}

type retargetRequest struct {
	NewTargetListingID string  `json:"new_target_listing_id" validate:"required,uuid"`
	Message            *string `json:"message,omitempty"`
	Conditions         *string `json:"conditions,omitempty"`
}

type targetResponse struct {
	ID              string    `json:"id"`
	SourceListingID string    `json:"source_listing_id"`
	TargetListingID string    `json:"target_listing_id"`
	ProposerID      string    `json:"proposer_id"`
	Status          string    `json:"status"`
	Message         *string   `json:"message,omitempty"`
	Conditions      *string   `json:"conditions,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toTargetResponse(t *models.Target) targetResponse {
	return targetResponse{
		ID:              t.ID.String(),
		SourceListingID: t.SourceListingID.String(),
		TargetListingID: t.TargetListingID.String(),
		ProposerID:      t.ProposerID.String(),
		Status:          string(t.Status),
		Message:         t.Message,
		Conditions:      t.Conditions,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// CreateTarget handles POST /api/v1/targets
func (h *Handler) CreateTarget(w http.ResponseWriter, r *http.Request) {
	proposerID, ok := callerID(w, r)
	if !ok {
		return
	}

	var body createTargetRequest
	if !h.decodeBody(w, r, &body) {
		return
	}

	target, err := h.targeting.Propose(r.Context(), service.ProposeRequest{
		SourceListingID: uuid.MustParse(body.SourceListingID),
		TargetListingID: uuid.MustParse(body.TargetListingID),
		ProposerID:      proposerID,
		Message:         body.Message,
		Conditions:      body.Conditions,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toTargetResponse(target))
}

// Retarget handles POST /api/v1/listings/{listingId}/retarget
func (h *Handler) Retarget(w http.ResponseWriter, r *http.Request) {
	proposerID, ok := callerID(w, r)
	if !ok {
		return
	}

	sourceID, ok := pathUUID(w, r, "listingId")
	if !ok {
		return
	}

	var body retargetRequest
	if !h.decodeBody(w, r, &body) {
		return
	}

	target, err := h.targeting.Retarget(r.Context(), service.RetargetRequest{
		SourceListingID: sourceID,
		NewTargetID:     uuid.MustParse(body.NewTargetListingID),
		ProposerID:      proposerID,
		Message:         body.Message,
		Conditions:      body.Conditions,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toTargetResponse(target))
}
