package models

import (
	"time"

	"github.com/google/uuid"
)

// AuctionStatus represents the lifecycle status of an auction
type AuctionStatus string

const (
	AuctionStatusOpen           AuctionStatus = "OPEN"
	AuctionStatusEnded          AuctionStatus = "ENDED"
	AuctionStatusWinnerSelected AuctionStatus = "WINNER_SELECTED"
)

// ProposalType distinguishes booking-exchange bids from cash bids
type ProposalType string

const (
	ProposalTypeBooking ProposalType = "BOOKING"
	ProposalTypeCash    ProposalType = "CASH"
)

// ProposalStatus represents the status of a single auction bid
type ProposalStatus string

const (
	ProposalStatusSubmitted ProposalStatus = "SUBMITTED"
	ProposalStatusWithdrawn ProposalStatus = "WITHDRAWN"
	ProposalStatusWon       ProposalStatus = "WON"
	ProposalStatusLost      ProposalStatus = "LOST"
)

// Auction collects competitive proposals for a listing over a time window.
// Winner selection is always an explicit owner action after the window ends;
// no implicit ranking is applied.
type Auction struct {
	CreatedAt             time.Time     `db:"created_at"`
	UpdatedAt             time.Time     `db:"updated_at"`
	EndsAt                time.Time     `db:"ends_at"`
	Status                AuctionStatus `db:"status"`
	WinningProposalID     *uuid.UUID    `db:"winning_proposal_id"`
	AllowBookingProposals bool          `db:"allow_booking_proposals"`
	AllowCashProposals    bool          `db:"allow_cash_proposals"`
	ID                    uuid.UUID     `db:"id"`
	ListingID             uuid.UUID     `db:"listing_id"`
}

// Closed reports whether the auction window has passed, regardless of
// whether the status column has been transitioned yet.
func (a *Auction) Closed(now time.Time) bool {
	return !now.Before(a.EndsAt)
}

// AuctionProposal is a single bid submitted into an auction
type AuctionProposal struct {
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	Type            ProposalType   `db:"type"`
	Status          ProposalStatus `db:"status"`
	BookingID       *uuid.UUID     `db:"booking_id"`
	AmountCents     *int64         `db:"amount_cents"`
	Currency        *string        `db:"currency"`
	PaymentMethodID *string        `db:"payment_method_id"`
	ID              uuid.UUID      `db:"id"`
	AuctionID       uuid.UUID      `db:"auction_id"`
	ProposerID      uuid.UUID      `db:"proposer_id"`
}
