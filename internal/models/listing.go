package models

import (
	"time"

	"github.com/google/uuid"
)

// ListingStatus represents the lifecycle status of a swap listing
type ListingStatus string

const (
	ListingStatusPending   ListingStatus = "PENDING"
	ListingStatusTargeted  ListingStatus = "TARGETED"
	ListingStatusAccepted  ListingStatus = "ACCEPTED"
	ListingStatusRejected  ListingStatus = "REJECTED"
	ListingStatusExpired   ListingStatus = "EXPIRED"
	ListingStatusCompleted ListingStatus = "COMPLETED"
	ListingStatusCancelled ListingStatus = "CANCELLED"
)

// AcceptanceStrategy controls how incoming proposals on a listing are resolved
type AcceptanceStrategy string

const (
	AcceptanceFirstMatch AcceptanceStrategy = "FIRST_MATCH"
	AcceptanceAuction    AcceptanceStrategy = "AUCTION"
)

// Listing is a booking offered for swap or cash sale
type Listing struct {
	CreatedAt          time.Time          `db:"created_at"`
	UpdatedAt          time.Time          `db:"updated_at"`
	ExpiresAt          time.Time          `db:"expires_at"`
	Status             ListingStatus      `db:"status"`
	AcceptanceStrategy AcceptanceStrategy `db:"acceptance_strategy"`
	AuctionID          *uuid.UUID         `db:"auction_id"`
	MinCashCents       *int64             `db:"min_cash_cents"`
	AllowBookingSwap   bool               `db:"allow_booking_swap"`
	AllowCashOffer     bool               `db:"allow_cash_offer"`
	ID                 uuid.UUID          `db:"id"`
	OwnerID            uuid.UUID          `db:"owner_id"`
	SourceBookingID    uuid.UUID          `db:"source_booking_id"`
}

// Available reports whether the listing can still receive or resolve proposals.
// Expiry is derived at read time rather than swept eagerly, so a row whose
// status column still says PENDING may already be unavailable.
func (l *Listing) Available(now time.Time) bool {
	if l.Status != ListingStatusPending && l.Status != ListingStatusTargeted {
		return false
	}
	return now.Before(l.ExpiresAt)
}

// Expired reports whether the listing's window has passed regardless of status.
func (l *Listing) Expired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}
