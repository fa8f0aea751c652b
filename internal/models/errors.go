package models

import "errors"

// Domain errors that can be returned by repositories
var (
	// ErrNotFound indicates the requested entity was not found
	ErrNotFound = errors.New("not found")

	// ErrDuplicateActiveTarget indicates the source listing already has an
	// active outgoing target; the caller must retarget instead
	ErrDuplicateActiveTarget = errors.New("duplicate active target")

	// ErrTargetAlreadyResolved indicates a conditional status update matched
	// zero rows because a concurrent writer resolved the target first
	ErrTargetAlreadyResolved = errors.New("target already resolved")

	// ErrListingUnavailable indicates a conditional listing update matched
	// zero rows because the listing left the PENDING/TARGETED states
	ErrListingUnavailable = errors.New("listing no longer available")

	// ErrProposalAlreadyResolved indicates the auction proposal is no longer
	// in the SUBMITTED state
	ErrProposalAlreadyResolved = errors.New("proposal already resolved")
)
