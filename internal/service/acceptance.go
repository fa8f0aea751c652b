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

// AcceptanceService is the proposal acceptance state machine. It validates
// an accept/reject request, enforces mutual exclusion through the
// repository's conditional updates, and drives the settlement saga.
type AcceptanceService struct {
	db            *db.DB
	settler       Settler
	notifications gateway.NotificationGateway
	sink          metrics.MetricsSink
	logger        *slog.Logger
}

// NewAcceptanceService creates a new AcceptanceService
func NewAcceptanceService(
	database *db.DB,
	settler Settler,
	notifications gateway.NotificationGateway,
	sink metrics.MetricsSink,
	logger *slog.Logger,
) *AcceptanceService {
	return &AcceptanceService{
		db:            database,
		settler:       settler,
		notifications: notifications,
		sink:          sink,
		logger:        logger,
	}
}

// AcceptanceResult bundles the accepted target with its settlement record
type AcceptanceResult struct {
	Target     *models.Target
	Settlement *models.SettlementRecord
}

// Accept resolves a target in favor of its proposer. Exactly one of N
// concurrent accepts on targets of the same listing succeeds; the others
// surface proposal_already_resolved. The acceptance transaction commits
// before settlement starts; if settlement fails the coordinator reverts the
// acceptance and the returned error carries the settlement outcome.
func (s *AcceptanceService) Accept(ctx context.Context, targetID, userID uuid.UUID) (*AcceptanceResult, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, internalError("failed to start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	accepted, err := s.performAccept(ctx,
		repository.NewTargetRepository(tx),
		repository.NewListingRepository(tx),
		repository.NewEventRepository(tx),
		targetID, userID,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, internalError("failed to commit transaction", err)
	}

	settlement, err := s.settler.Settle(ctx, SettlementRequest{
		Listing:  accepted.listingBefore,
		Target:   accepted.target,
		Cash:     nil,
		BuyerID:  accepted.target.ProposerID,
		SellerID: accepted.listingBefore.OwnerID,
	})
	if err != nil {
		// The coordinator has already compensated; the target is ACTIVE
		// again and the listing restored.
		s.sink.AcceptanceResolved(metrics.OutcomeSettleFailed)
		return nil, err
	}

	s.sink.AcceptanceResolved(metrics.OutcomeAccepted)
	s.notifyResolved(ctx, accepted)

	return &AcceptanceResult{
		Target:     accepted.target,
		Settlement: settlement,
	}, nil
}

// acceptedState carries what the accept transaction resolved
type acceptedState struct {
	target        *models.Target
	listingBefore *models.Listing
	losers        []repository.ResolvedTarget
}

// performAccept contains the core acceptance business logic. The competitor
// resolution and the accept itself are one atomic unit: no observer ever
// sees two accepted targets on a listing.
func (s *AcceptanceService) performAccept(
	ctx context.Context,
	targetRepo repository.TargetRepository,
	listingRepo repository.ListingRepository,
	eventRepo repository.EventRepository,
	targetID, userID uuid.UUID,
) (*acceptedState, error) {
	target, err := targetRepo.FindByIDForUpdate(ctx, targetID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{
				Code:    ErrCodeNotFound,
				Message: "proposal not found",
			}
		}
		return nil, internalError("failed to load target", err)
	}

	// Concurrent accepts on different targets of the same listing serialize
	// on this row lock.
	listing, err := listingRepo.FindByIDForUpdate(ctx, target.TargetListingID)
	if err != nil {
		return nil, listingNotFound(target.TargetListingID, err)
	}

	if userID == target.ProposerID {
		return nil, &ServiceError{
			Code:    ErrCodeForbidden,
			Message: "a proposer may not accept their own proposal",
		}
	}
	if listing.OwnerID != userID {
		return nil, &ServiceError{
			Code:    ErrCodeForbidden,
			Message: "only the owner of the targeted listing may accept",
		}
	}

	now := time.Now()
	if listing.Expired(now) {
		s.sink.AcceptanceResolved(metrics.OutcomeExpired)
		return nil, &ServiceError{
			Code:    ErrCodeListingExpired,
			Message: "listing has expired",
		}
	}
	if listing.Status != models.ListingStatusPending && listing.Status != models.ListingStatusTargeted {
		return nil, &ServiceError{
			Code:    ErrCodeListingUnavailable,
			Message: "listing is no longer available",
		}
	}

	if target.Resolved() {
		return nil, s.raceLost()
	}

	listingBefore := *listing

	if err := targetRepo.Accept(ctx, target.ID); err != nil {
		if errors.Is(err, models.ErrTargetAlreadyResolved) {
			return nil, s.raceLost()
		}
		return nil, internalError("failed to accept target", err)
	}
	target.Status = models.TargetStatusAccepted

	losers, err := targetRepo.ResolveCompetitors(ctx, target.TargetListingID, target.ID)
	if err != nil {
		return nil, internalError("failed to resolve competing targets", err)
	}

	err = listingRepo.UpdateStatus(ctx, listing.ID,
		[]models.ListingStatus{models.ListingStatusPending, models.ListingStatusTargeted},
		models.ListingStatusAccepted,
	)
	if err != nil {
		if errors.Is(err, models.ErrListingUnavailable) {
			return nil, s.raceLost()
		}
		return nil, internalError("failed to update listing status", err)
	}

	if err := s.appendAcceptEvents(ctx, eventRepo, target, userID, losers); err != nil {
		return nil, err
	}

	return &acceptedState{
		target:        target,
		listingBefore: &listingBefore,
		losers:        losers,
	}, nil
}

// Reject resolves a target against its proposer. No settlement is involved,
// but authorization and current-status checks still apply.
func (s *AcceptanceService) Reject(ctx context.Context, targetID, userID uuid.UUID, reason string) (*models.Target, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, internalError("failed to start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	target, err := s.performReject(ctx,
		repository.NewTargetRepository(tx),
		repository.NewListingRepository(tx),
		repository.NewEventRepository(tx),
		targetID, userID, reason,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, internalError("failed to commit transaction", err)
	}

	s.sink.AcceptanceResolved(metrics.OutcomeRejected)
	s.notifications.Emit(ctx, gateway.EventProposalRejected, target.ProposerID, map[string]any{
		"target_id": target.ID.String(),
		"reason":    reason,
	})

	return target, nil
}

func (s *AcceptanceService) performReject(
	ctx context.Context,
	targetRepo repository.TargetRepository,
	listingRepo repository.ListingRepository,
	eventRepo repository.EventRepository,
	targetID, userID uuid.UUID,
	reason string,
) (*models.Target, error) {
	target, err := targetRepo.FindByIDForUpdate(ctx, targetID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{
				Code:    ErrCodeNotFound,
				Message: "proposal not found",
			}
		}
		return nil, internalError("failed to load target", err)
	}

	listing, err := listingRepo.FindByID(ctx, target.TargetListingID)
	if err != nil {
		return nil, listingNotFound(target.TargetListingID, err)
	}

	if listing.OwnerID != userID {
		return nil, &ServiceError{
			Code:    ErrCodeForbidden,
			Message: "only the owner of the targeted listing may reject",
		}
	}

	if err := targetRepo.Reject(ctx, target.ID); err != nil {
		if errors.Is(err, models.ErrTargetAlreadyResolved) {
			return nil, s.raceLost()
		}
		return nil, internalError("failed to reject target", err)
	}
	target.Status = models.TargetStatusRejected

	detail := fmt.Sprintf("target %s rejected by listing owner", target.ID)
	if reason != "" {
		detail = fmt.Sprintf("%s: %s", detail, reason)
	}
	event := &models.TargetingEvent{
		ListingID: target.TargetListingID,
		TargetID:  &target.ID,
		ActorID:   &userID,
		Type:      models.EventTargetRejected,
		Severity:  models.SeverityInfo,
		Detail:    detail,
	}
	if err := eventRepo.Append(ctx, event); err != nil {
		return nil, internalError("failed to record rejection event", err)
	}

	return target, nil
}

func (s *AcceptanceService) appendAcceptEvents(
	ctx context.Context,
	eventRepo repository.EventRepository,
	target *models.Target,
	actorID uuid.UUID,
	losers []repository.ResolvedTarget,
) error {
	accepted := &models.TargetingEvent{
		ListingID: target.TargetListingID,
		TargetID:  &target.ID,
		ActorID:   &actorID,
		Type:      models.EventTargetAccepted,
		Severity:  models.SeverityInfo,
		Detail:    fmt.Sprintf("target %s accepted for listing %s", target.ID, target.TargetListingID),
	}
	if err := eventRepo.Append(ctx, accepted); err != nil {
		return internalError("failed to record acceptance event", err)
	}

	for _, loser := range losers {
		loserID := loser.ID
		event := &models.TargetingEvent{
			ListingID: target.TargetListingID,
			TargetID:  &loserID,
			Type:      models.EventTargetRejected,
			Severity:  models.SeverityInfo,
			Detail:    fmt.Sprintf("target %s rejected: competing target %s was accepted", loser.ID, target.ID),
		}
		if err := eventRepo.Append(ctx, event); err != nil {
			return internalError("failed to record competitor rejection event", err)
		}
	}

	return nil
}

// notifyResolved tells the winner's competitors they lost. Best effort,
// and only sent once settlement has completed: a notification about an
// acceptance that later gets compensated cannot be unsent.
func (s *AcceptanceService) notifyResolved(ctx context.Context, accepted *acceptedState) {
	s.notifications.Emit(ctx, gateway.EventProposalAccepted, accepted.target.ProposerID, map[string]any{
		"target_id":  accepted.target.ID.String(),
		"listing_id": accepted.target.TargetListingID.String(),
	})
	for _, loser := range accepted.losers {
		s.notifications.Emit(ctx, gateway.EventProposalLost, loser.ProposerID, map[string]any{
			"target_id":  loser.ID.String(),
			"listing_id": accepted.target.TargetListingID.String(),
		})
	}
}

// raceLost is the legitimate "someone else won" outcome. Never retried on
// the caller's behalf: the proposer must see the real result.
func (s *AcceptanceService) raceLost() *ServiceError {
	s.sink.AcceptanceResolved(metrics.OutcomeRaceLost)
	return &ServiceError{
		Code:    ErrCodeProposalResolved,
		Message: "proposal has already been resolved",
	}
}
