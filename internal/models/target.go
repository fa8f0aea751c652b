package models

import (
	"time"

	"github.com/google/uuid"
)

// TargetStatus represents the status of a directed swap proposal
type TargetStatus string

const (
	TargetStatusActive     TargetStatus = "ACTIVE"
	TargetStatusAccepted   TargetStatus = "ACCEPTED"
	TargetStatusRejected   TargetStatus = "REJECTED"
	TargetStatusCancelled  TargetStatus = "CANCELLED"
	TargetStatusSuperseded TargetStatus = "SUPERSEDED"
)

// Target is a directed proposal from one listing onto another.
//
// At most one Target per source listing may be ACTIVE, and at most one
// Target per target listing may ever hold ACCEPTED. Both invariants are
// enforced in storage, not in memory.
type Target struct {
	CreatedAt       time.Time    `db:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at"`
	Message         *string      `db:"message"`
	Conditions      *string      `db:"conditions"`
	Status          TargetStatus `db:"status"`
	ID              uuid.UUID    `db:"id"`
	SourceListingID uuid.UUID    `db:"source_listing_id"`
	TargetListingID uuid.UUID    `db:"target_listing_id"`
	ProposerID      uuid.UUID    `db:"proposer_id"`
}

// Resolved reports whether the target has reached a terminal status.
func (t *Target) Resolved() bool {
	return t.Status != TargetStatusActive
}
