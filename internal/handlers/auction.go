package handlers

import (
	"net/http"
	"time"

	"github.com/bushboy/bookingswap/internal/models"
	"github.com/bushboy/bookingswap/internal/service"
	"github.com/google/uuid"
)

type submitProposalRequest struct {
	Type            string  `json:"type" validate:"required,oneof=BOOKING CASH"`
	BookingID       *string `json:"booking_id,omitempty" validate:"omitempty,uuid"`
	AmountCents     *int64  `json:"amount_cents,omitempty"`
	Currency        *string `json:"currency,omitempty" validate:"omitempty,len=3"`
	PaymentMethodID *string `json:"payment_method_id,omitempty"`
}

type proposalResponse struct {
	ID              string    `json:"id"`
	AuctionID       string    `json:"auction_id"`
	ProposerID      string    `json:"proposer_id"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	BookingID       *string   `json:"booking_id,omitempty"`
	AmountCents     *int64    `json:"amount_cents,omitempty"`
	Currency        *string   `json:"currency,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type winnerResponse struct {
	AuctionID  string             `json:"auction_id"`
	Status     string             `json:"status"`
	Winner     proposalResponse   `json:"winner"`
	Settlement settlementResponse `json:"settlement"`
}

func toProposalResponse(p *models.AuctionProposal) proposalResponse {
	resp := proposalResponse{
		ID:          p.ID.String(),
		AuctionID:   p.AuctionID.String(),
		ProposerID:  p.ProposerID.String(),
		Type:        string(p.Type),
		Status:      string(p.Status),
		AmountCents: p.AmountCents,
		Currency:    p.Currency,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.BookingID != nil {
		id := p.BookingID.String()
		resp.BookingID = &id
	}
	return resp
}

// SubmitProposal handles POST /api/v1/auctions/{auctionId}/proposals
func (h *Handler) SubmitProposal(w http.ResponseWriter, r *http.Request) {
	proposerID, ok := callerID(w, r)
	if !ok {
		return
	}

	auctionID, ok := pathUUID(w, r, "auctionId")
	if !ok {
		return
	}

	var body submitProposalRequest
	if !h.decodeBody(w, r, &body) {
		return
	}

	req := service.SubmitProposalRequest{
		Type:            models.ProposalType(body.Type),
		AmountCents:     body.AmountCents,
		Currency:        body.Currency,
		PaymentMethodID: body.PaymentMethodID,
	}
	if body.BookingID != nil {
		bookingID := uuid.MustParse(*body.BookingID)
		req.BookingID = &bookingID
	}

	proposal, err := h.auctions.SubmitProposal(r.Context(), auctionID, proposerID, req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toProposalResponse(proposal))
}

type selectWinnerRequest struct {
	ProposalID string `json:"proposal_id" validate:"required,uuid"`
}

// SelectWinner handles POST /api/v1/auctions/{auctionId}/winner
func (h *Handler) SelectWinner(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	auctionID, ok := pathUUID(w, r, "auctionId")
	if !ok {
		return
	}

	var body selectWinnerRequest
	if !h.decodeBody(w, r, &body) {
		return
	}

	result, err := h.auctions.SelectWinner(r.Context(), auctionID, uuid.MustParse(body.ProposalID), ownerID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, winnerResponse{
		AuctionID:  result.Auction.ID.String(),
		Status:     string(result.Auction.Status),
		Winner:     toProposalResponse(result.Winner),
		Settlement: toSettlementResponse(result.Settlement),
	})
}
