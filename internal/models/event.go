package models

import (
	"time"

	"github.com/google/uuid"
)

// EventType classifies a targeting history event
type EventType string

const (
	EventTargetCreated    EventType = "TARGET_CREATED"
	EventTargetSuperseded EventType = "TARGET_SUPERSEDED"
	EventTargetAccepted   EventType = "TARGET_ACCEPTED"
	EventTargetRejected   EventType = "TARGET_REJECTED"
	EventListingExpired   EventType = "LISTING_EXPIRED"
	EventAuctionEnded     EventType = "AUCTION_ENDED"
	EventWinnerSelected   EventType = "WINNER_SELECTED"
	EventSettlementDone   EventType = "SETTLEMENT_COMPLETED"
	EventSettlementFailed EventType = "SETTLEMENT_FAILED"
)

// EventSeverity grades how much operator attention an event deserves
type EventSeverity string

const (
	SeverityInfo     EventSeverity = "INFO"
	SeverityWarning  EventSeverity = "WARNING"
	SeverityCritical EventSeverity = "CRITICAL"
)

// TargetingEvent is an append-only audit row written alongside every
// targeting, auction and settlement transition.
type TargetingEvent struct {
	CreatedAt time.Time     `db:"created_at"`
	Detail    string        `db:"detail"`
	Type      EventType     `db:"type"`
	Severity  EventSeverity `db:"severity"`
	TargetID  *uuid.UUID    `db:"target_id"`
	ActorID   *uuid.UUID    `db:"actor_id"`
	ID        uuid.UUID     `db:"id"`
	ListingID uuid.UUID     `db:"listing_id"`
}

// EventFilter narrows a targeting history query. Zero values mean "no
// constraint" for every field.
type EventFilter struct {
	From      *time.Time
	To        *time.Time
	ListingID *uuid.UUID
	ActorID   *uuid.UUID
	Types     []EventType
	Severity  []EventSeverity
	Search    string
}

// Page is limit/offset pagination for history queries
type Page struct {
	Limit  int
	Offset int
}

// EventPage is one page of targeting history, newest first
type EventPage struct {
	Events []TargetingEvent
	Total  int
	Limit  int
	Offset int
}
