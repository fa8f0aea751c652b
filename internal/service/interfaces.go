package service

import (
	"context"

	"github.com/bushboy/bookingswap/internal/models"
	"github.com/google/uuid"
)

// Targeter creates and replaces directed swap proposals between listings
type Targeter interface {
	Propose(ctx context.Context, req ProposeRequest) (*models.Target, error)
	Retarget(ctx context.Context, req RetargetRequest) (*models.Target, error)
}

// Accepter resolves a pending proposal on behalf of the target listing owner
type Accepter interface {
	Accept(ctx context.Context, targetID, userID uuid.UUID) (*AcceptanceResult, error)
	Reject(ctx context.Context, targetID, userID uuid.UUID, reason string) (*models.Target, error)
}

// Auctioneer manages competitive proposal collection and winner selection
type Auctioneer interface {
	SubmitProposal(ctx context.Context, auctionID, proposerID uuid.UUID, req SubmitProposalRequest) (*models.AuctionProposal, error)
	SelectWinner(ctx context.Context, auctionID, proposalID, ownerID uuid.UUID) (*WinnerResult, error)
	CloseExpired(ctx context.Context) (int, error)
}

// Settler runs the settlement saga for an accepted proposal. Implementations
// must durably record every outcome and compensate the acceptance state on
// failure before returning.
type Settler interface {
	Settle(ctx context.Context, req SettlementRequest) (*models.SettlementRecord, error)
}

// HistoryReader serves paginated targeting history queries
type HistoryReader interface {
	Search(ctx context.Context, filter models.EventFilter, page models.Page) (*models.EventPage, error)
}

var (
	_ Targeter      = (*TargetingService)(nil)
	_ Accepter      = (*AcceptanceService)(nil)
	_ Auctioneer    = (*AuctionService)(nil)
	_ Settler       = (*SettlementService)(nil)
	_ HistoryReader = (*HistoryService)(nil)
)
