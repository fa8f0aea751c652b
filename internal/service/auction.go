package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bushboy/bookingswap/internal/db"
	"github.com/bushboy/bookingswap/internal/gateway"
	"github.com/bushboy/bookingswap/internal/metrics"
	"github.com/bushboy/bookingswap/internal/models"
	"github.com/bushboy/bookingswap/internal/repository"
	"github.com/google/uuid"
)

// AuctionService manages time-boxed competitive proposal collection.
//
// The open → ended transition is lazy: any read or write access past endsAt
// flips the row with a conditional update, so concurrent callers converge on
// one ENDED auction without a scheduler. The background sweep in cmd calls
// CloseExpired with the same primitive and is therefore equally idempotent.
type AuctionService struct {
	db            *db.DB
	settler       Settler
	notifications gateway.NotificationGateway
	sink          metrics.MetricsSink
	logger        *slog.Logger
}

// NewAuctionService creates a new AuctionService
func NewAuctionService(
	database *db.DB,
	settler Settler,
	notifications gateway.NotificationGateway,
	sink metrics.MetricsSink,
	logger *slog.Logger,
) *AuctionService {
	return &AuctionService{
		db:            database,
		settler:       settler,
		notifications: notifications,
		sink:          sink,
		logger:        logger,
	}
}

// SubmitProposalRequest carries a new bid for an auction
type SubmitProposalRequest struct {
	BookingID       *uuid.UUID
	AmountCents     *int64
	Currency        *string
	PaymentMethodID *string
	Type            models.ProposalType
}

// SubmitProposal adds a bid to an open auction
func (s *AuctionService) SubmitProposal(ctx context.Context, auctionID, proposerID uuid.UUID, req SubmitProposalRequest) (*models.AuctionProposal, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, internalError("failed to start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	proposal, err := s.performSubmit(ctx,
		repository.NewAuctionRepository(tx),
		repository.NewListingRepository(tx),
		repository.NewEventRepository(tx),
		auctionID, proposerID, req,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, internalError("failed to commit transaction", err)
	}

	s.sink.ProposalSubmitted(string(proposal.Type))

	return proposal, nil
}

func (s *AuctionService) performSubmit(
	ctx context.Context,
	auctionRepo repository.AuctionRepository,
	listingRepo repository.ListingRepository,
	eventRepo repository.EventRepository,
	auctionID, proposerID uuid.UUID,
	req SubmitProposalRequest,
) (*models.AuctionProposal, error) {
	auction, err := s.loadAuctionClosing(ctx, auctionRepo, eventRepo, auctionID)
	if err != nil {
		return nil, err
	}

	if auction.Status != models.AuctionStatusOpen {
		return nil, &ServiceError{
			Code:    ErrCodeAuctionNotOpen,
			Message: "auction is not open for proposals",
		}
	}

	listing, err := listingRepo.FindByID(ctx, auction.ListingID)
	if err != nil {
		return nil, listingNotFound(auction.ListingID, err)
	}

	if listing.OwnerID == proposerID {
		return nil, &ServiceError{
			Code:    ErrCodeOwnAuctionProposal,
			Message: "cannot propose to your own auction",
		}
	}

	if err := s.validateProposalPayload(auction, listing, req); err != nil {
		return nil, err
	}

	proposal := &models.AuctionProposal{
		AuctionID:       auctionID,
		ProposerID:      proposerID,
		Type:            req.Type,
		Status:          models.ProposalStatusSubmitted,
		BookingID:       req.BookingID,
		AmountCents:     req.AmountCents,
		Currency:        req.Currency,
		PaymentMethodID: req.PaymentMethodID,
	}

	if err := auctionRepo.CreateProposal(ctx, proposal); err != nil {
		return nil, internalError("failed to create auction proposal", err)
	}

	return proposal, nil
}

func (s *AuctionService) validateProposalPayload(auction *models.Auction, listing *models.Listing, req SubmitProposalRequest) error {
	switch req.Type {
	case models.ProposalTypeBooking:
		if !auction.AllowBookingProposals {
			return &ServiceError{
				Code:    ErrCodeProposalTypeNotAllowed,
				Message: "auction does not accept booking proposals",
			}
		}
		if req.BookingID == nil {
			return &ServiceError{
				Code:    ErrCodeInvalidInput,
				Message: "booking proposal requires a booking reference",
			}
		}
	case models.ProposalTypeCash:
		if !auction.AllowCashProposals {
			return &ServiceError{
				Code:    ErrCodeProposalTypeNotAllowed,
				Message: "auction does not accept cash proposals",
			}
		}
		if req.AmountCents == nil || req.Currency == nil || req.PaymentMethodID == nil {
			return &ServiceError{
				Code:    ErrCodeInvalidInput,
				Message: "cash proposal requires amount, currency and payment method",
			}
		}
		if err := ValidateAmount(*req.AmountCents); err != nil {
			return &ServiceError{
				Code:    ErrCodeInvalidAmount,
				Message: err.Error(),
			}
		}
		if err := ValidateCurrency(*req.Currency); err != nil {
			return &ServiceError{
				Code:    ErrCodeInvalidCurrency,
				Message: err.Error(),
			}
		}
		if listing.MinCashCents != nil && *req.AmountCents < *listing.MinCashCents {
			return &ServiceError{
				Code:    ErrCodeCashBelowMinimum,
				Message: fmt.Sprintf("cash proposal below listing minimum of %d", *listing.MinCashCents),
			}
		}
	default:
		return &ServiceError{
			Code:    ErrCodeInvalidInput,
			Message: fmt.Sprintf("unknown proposal type %q", req.Type),
		}
	}

	return nil
}

// WinnerResult bundles the resolved auction with the winning proposal and
// its settlement
type WinnerResult struct {
	Auction    *models.Auction
	Winner     *models.AuctionProposal
	Settlement *models.SettlementRecord
}

// SelectWinner resolves an ended auction in favor of one proposal and runs
// settlement exactly as a direct accept would.
func (s *AuctionService) SelectWinner(ctx context.Context, auctionID, proposalID, ownerID uuid.UUID) (*WinnerResult, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, internalError("failed to start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	selected, err := s.performSelectWinner(ctx,
		repository.NewAuctionRepository(tx),
		repository.NewListingRepository(tx),
		repository.NewEventRepository(tx),
		auctionID, proposalID, ownerID,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, internalError("failed to commit transaction", err)
	}

	settleReq := SettlementRequest{
		Listing:   selected.listingBefore,
		Proposal:  selected.winner,
		AuctionID: &selected.auction.ID,
		BuyerID:   selected.winner.ProposerID,
		SellerID:  selected.listingBefore.OwnerID,
	}
	if selected.winner.Type == models.ProposalTypeCash {
		settleReq.Cash = &CashTerms{
			AmountCents:     *selected.winner.AmountCents,
			Currency:        *selected.winner.Currency,
			PaymentMethodID: *selected.winner.PaymentMethodID,
		}
	}

	settlement, err := s.settler.Settle(ctx, settleReq)
	if err != nil {
		s.sink.AcceptanceResolved(metrics.OutcomeSettleFailed)
		return nil, err
	}

	s.sink.AcceptanceResolved(metrics.OutcomeAccepted)
	s.notifyWinnerSelected(ctx, selected)

	return &WinnerResult{
		Auction:    selected.auction,
		Winner:     selected.winner,
		Settlement: settlement,
	}, nil
}

type selectedWinner struct {
	auction       *models.Auction
	winner        *models.AuctionProposal
	listingBefore *models.Listing
	losers        []models.AuctionProposal
}

func (s *AuctionService) performSelectWinner(
	ctx context.Context,
	auctionRepo repository.AuctionRepository,
	listingRepo repository.ListingRepository,
	eventRepo repository.EventRepository,
	auctionID, proposalID, ownerID uuid.UUID,
) (*selectedWinner, error) {
	auction, err := s.loadAuctionClosing(ctx, auctionRepo, eventRepo, auctionID)
	if err != nil {
		return nil, err
	}

	switch auction.Status {
	case models.AuctionStatusOpen:
		return nil, &ServiceError{
			Code:    ErrCodeAuctionNotEnded,
			Message: "auction has not ended yet",
		}
	case models.AuctionStatusWinnerSelected:
		return nil, &ServiceError{
			Code:    ErrCodeWinnerAlreadySelected,
			Message: "a winner has already been selected",
		}
	case models.AuctionStatusEnded:
		// proceed
	}

	listing, err := listingRepo.FindByIDForUpdate(ctx, auction.ListingID)
	if err != nil {
		return nil, listingNotFound(auction.ListingID, err)
	}

	if listing.OwnerID != ownerID {
		return nil, &ServiceError{
			Code:    ErrCodeForbidden,
			Message: "only the listing owner may select a winner",
		}
	}

	if listing.Status != models.ListingStatusPending && listing.Status != models.ListingStatusTargeted {
		return nil, &ServiceError{
			Code:    ErrCodeListingUnavailable,
			Message: "listing is no longer available",
		}
	}

	winner, err := auctionRepo.FindProposalByIDForUpdate(ctx, proposalID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{
				Code:    ErrCodeNotFound,
				Message: "proposal not found",
			}
		}
		return nil, internalError("failed to load proposal", err)
	}
	if winner.AuctionID != auctionID {
		return nil, &ServiceError{
			Code:    ErrCodeInvalidInput,
			Message: "proposal does not belong to this auction",
		}
	}
	if winner.Status != models.ProposalStatusSubmitted {
		return nil, &ServiceError{
			Code:    ErrCodeProposalResolved,
			Message: "proposal has already been resolved",
		}
	}

	all, err := auctionRepo.ListProposals(ctx, auctionID)
	if err != nil {
		return nil, internalError("failed to list auction proposals", err)
	}

	listingBefore := *listing

	if err := auctionRepo.MarkProposalWon(ctx, winner.ID); err != nil {
		if errors.Is(err, models.ErrProposalAlreadyResolved) {
			return nil, &ServiceError{
				Code:    ErrCodeProposalResolved,
				Message: "proposal has already been resolved",
			}
		}
		return nil, internalError("failed to mark proposal won", err)
	}
	winner.Status = models.ProposalStatusWon

	if _, err := auctionRepo.MarkSiblingsLost(ctx, auctionID, winner.ID); err != nil {
		return nil, internalError("failed to mark sibling proposals lost", err)
	}

	if err := auctionRepo.MarkWinnerSelected(ctx, auctionID, winner.ID); err != nil {
		if errors.Is(err, models.ErrProposalAlreadyResolved) {
			return nil, &ServiceError{
				Code:    ErrCodeWinnerAlreadySelected,
				Message: "a winner has already been selected",
			}
		}
		return nil, internalError("failed to mark winner selected", err)
	}
	auction.Status = models.AuctionStatusWinnerSelected
	auction.WinningProposalID = &winner.ID

	err = listingRepo.UpdateStatus(ctx, listing.ID,
		[]models.ListingStatus{models.ListingStatusPending, models.ListingStatusTargeted},
		models.ListingStatusAccepted,
	)
	if err != nil {
		return nil, internalError("failed to update listing status", err)
	}

	event := &models.TargetingEvent{
		ListingID: listing.ID,
		ActorID:   &ownerID,
		Type:      models.EventWinnerSelected,
		Severity:  models.SeverityInfo,
		Detail:    fmt.Sprintf("proposal %s selected as winner of auction %s", winner.ID, auctionID),
	}
	if err := eventRepo.Append(ctx, event); err != nil {
		return nil, internalError("failed to record winner event", err)
	}

	var losers []models.AuctionProposal
	for _, p := range all {
		if p.ID != winner.ID && p.Status == models.ProposalStatusSubmitted {
			losers = append(losers, p)
		}
	}

	return &selectedWinner{
		auction:       auction,
		winner:        winner,
		listingBefore: &listingBefore,
		losers:        losers,
	}, nil
}

// CloseExpired sweeps every open auction whose window has passed. Safe to
// call concurrently with lazy close-on-access: the conditional update means
// each auction ends exactly once.
func (s *AuctionService) CloseExpired(ctx context.Context) (int, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return 0, internalError("failed to start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	auctionRepo := repository.NewAuctionRepository(tx)
	eventRepo := repository.NewEventRepository(tx)

	closed, err := auctionRepo.CloseAllExpired(ctx, time.Now())
	if err != nil {
		return 0, internalError("failed to close expired auctions", err)
	}

	for _, id := range closed {
		auction, err := auctionRepo.FindByID(ctx, id)
		if err != nil {
			return 0, internalError("failed to load closed auction", err)
		}
		if err := s.appendEnded(ctx, eventRepo, auction); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, internalError("failed to commit transaction", err)
	}

	if len(closed) > 0 {
		s.sink.AuctionClosed(len(closed))
		s.logger.Info("closed expired auctions", "count", len(closed))
	}

	return len(closed), nil
}

// loadAuctionClosing loads an auction and lazily applies the open → ended
// transition when the window has passed.
func (s *AuctionService) loadAuctionClosing(
	ctx context.Context,
	auctionRepo repository.AuctionRepository,
	eventRepo repository.EventRepository,
	auctionID uuid.UUID,
) (*models.Auction, error) {
	auction, err := auctionRepo.FindByIDForUpdate(ctx, auctionID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{
				Code:    ErrCodeNotFound,
				Message: "auction not found",
			}
		}
		return nil, internalError("failed to load auction", err)
	}

	if auction.Status == models.AuctionStatusOpen && auction.Closed(time.Now()) {
		flipped, err := auctionRepo.CloseIfExpired(ctx, auctionID, time.Now())
		if err != nil {
			return nil, internalError("failed to close auction", err)
		}
		auction.Status = models.AuctionStatusEnded
		if flipped {
			if err := s.appendEnded(ctx, eventRepo, auction); err != nil {
				return nil, err
			}
			s.sink.AuctionClosed(1)
		}
	}

	return auction, nil
}

func (s *AuctionService) appendEnded(ctx context.Context, eventRepo repository.EventRepository, auction *models.Auction) error {
	event := &models.TargetingEvent{
		ListingID: auction.ListingID,
		Type:      models.EventAuctionEnded,
		Severity:  models.SeverityInfo,
		Detail:    fmt.Sprintf("auction %s ended at %s", auction.ID, auction.EndsAt.Format(time.RFC3339)),
	}
	if err := eventRepo.Append(ctx, event); err != nil {
		return internalError("failed to record auction end event", err)
	}
	return nil
}

// notifyWinnerSelected is sent only after settlement completes, so a
// selection that gets compensated never produces won/lost notifications.
func (s *AuctionService) notifyWinnerSelected(ctx context.Context, selected *selectedWinner) {
	s.notifications.Emit(ctx, gateway.EventAuctionWon, selected.winner.ProposerID, map[string]any{
		"auction_id":  selected.auction.ID.String(),
		"proposal_id": selected.winner.ID.String(),
	})
	for _, loser := range selected.losers {
		s.notifications.Emit(ctx, gateway.EventProposalLost, loser.ProposerID, map[string]any{
			"auction_id":  selected.auction.ID.String(),
			"proposal_id": loser.ID.String(),
		})
	}
}
