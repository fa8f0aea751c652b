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

// CashTerms carries the cash leg of a settlement, when there is one
type CashTerms struct {
	Currency        string
	PaymentMethodID string
	AmountCents     int64
}

// SettlementRequest describes an accepted entity for the coordinator.
// Listing is the pre-accept snapshot: its Status field is the value restored
// by the compensation path.
type SettlementRequest struct {
	Listing   *models.Listing
	Target    *models.Target
	Proposal  *models.AuctionProposal
	AuctionID *uuid.UUID
	Cash      *CashTerms
	BuyerID   uuid.UUID
	SellerID  uuid.UUID
}

// SettlementService orchestrates payment capture, blockchain recording and
// listing finalization as one compensatable sequence.
//
// Ordering is deliberate: the blockchain record is the durable,
// hard-to-reverse step, so it happens only after funds are provably held in
// escrow. The stages are never parallelized because each failure path needs
// to know whether the prior stage committed.
type SettlementService struct {
	db            *db.DB
	payments      gateway.PaymentGateway
	chain         gateway.BlockchainGateway
	notifications gateway.NotificationGateway
	sink          metrics.MetricsSink
	logger        *slog.Logger
	notifyTimeout time.Duration
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(
	database *db.DB,
	payments gateway.PaymentGateway,
	chain gateway.BlockchainGateway,
	notifications gateway.NotificationGateway,
	sink metrics.MetricsSink,
	logger *slog.Logger,
	notifyTimeout time.Duration,
) *SettlementService {
	return &SettlementService{
		db:            database,
		payments:      payments,
		chain:         chain,
		notifications: notifications,
		sink:          sink,
		logger:        logger,
		notifyTimeout: notifyTimeout,
	}
}

// Settle runs the settlement saga for an accepted target or auction proposal.
// The INITIATED record is committed before any gateway call, and every
// terminal state is durably recorded before this method returns.
func (s *SettlementService) Settle(ctx context.Context, req SettlementRequest) (*models.SettlementRecord, error) {
	started := time.Now()
	settlementRepo := repository.NewSettlementRepository(s.db)

	record := &models.SettlementRecord{
		ListingID: req.Listing.ID,
		Status:    models.SettlementStatusInitiated,
	}
	if req.Target != nil {
		record.TargetID = &req.Target.ID
	}
	if req.Proposal != nil {
		record.AuctionProposalID = &req.Proposal.ID
	}

	if err := settlementRepo.Create(ctx, record); err != nil {
		return nil, internalError("failed to create settlement record", err)
	}

	escrow, svcErr := s.capturePayment(ctx, settlementRepo, record, req)
	if svcErr != nil {
		return record, svcErr
	}

	if svcErr := s.recordOnChain(ctx, settlementRepo, record, req, escrow); svcErr != nil {
		return record, svcErr
	}

	if escrow != nil {
		if svcErr := s.releasePayout(ctx, settlementRepo, record, req, escrow); svcErr != nil {
			return record, svcErr
		}
	}

	if svcErr := s.finalize(ctx, settlementRepo, record, req); svcErr != nil {
		return record, svcErr
	}

	s.sink.SettlementCompleted(time.Since(started))
	s.emitCompleted(ctx, req, record)

	final, err := settlementRepo.FindByID(ctx, record.ID)
	if err != nil {
		// The settlement is committed; a stale read-back is not worth failing.
		s.logger.Warn("failed to re-read settlement record", "settlement_id", record.ID, "error", err)
		return record, nil
	}
	return final, nil
}

// capturePayment runs the escrow stage. Returns nil escrow when the
// settlement has no cash leg.
func (s *SettlementService) capturePayment(
	ctx context.Context,
	settlementRepo repository.SettlementRepository,
	record *models.SettlementRecord,
	req SettlementRequest,
) (*gateway.EscrowResult, *ServiceError) {
	if req.Cash == nil {
		return nil, nil
	}

	escrow, err := s.payments.CreateEscrow(ctx, gateway.EscrowRequest{
		AmountCents:     req.Cash.AmountCents,
		Currency:        req.Cash.Currency,
		PaymentMethodID: req.Cash.PaymentMethodID,
		PayerID:         req.BuyerID,
		RecipientID:     req.SellerID,
		ListingRef:      req.Listing.ID.String(),
	})
	if err != nil {
		s.failAndCompensate(ctx, settlementRepo, record, req, models.SettlementStagePayment,
			fmt.Sprintf("escrow creation failed: %v", err))
		return nil, s.settlementFailed(models.SettlementStagePayment, err)
	}

	if err := settlementRepo.SetPaymentTransaction(ctx, record.ID, escrow.EscrowID); err != nil {
		s.logger.Error("failed to record escrow id", "settlement_id", record.ID, "error", err)
	}

	return escrow, nil
}

func (s *SettlementService) recordOnChain(
	ctx context.Context,
	settlementRepo repository.SettlementRepository,
	record *models.SettlementRecord,
	req SettlementRequest,
	escrow *gateway.EscrowResult,
) *ServiceError {
	details := gateway.SettlementDetails{
		ListingID: req.Listing.ID,
		BuyerID:   req.BuyerID,
		SellerID:  req.SellerID,
	}
	if req.Target != nil {
		details.TargetID = &req.Target.ID
	}
	if req.Proposal != nil {
		details.AuctionProposalID = &req.Proposal.ID
	}
	if req.Cash != nil {
		details.AmountCents = req.Cash.AmountCents
		details.Currency = req.Cash.Currency
	}

	txID, err := s.chain.RecordSettlement(ctx, details)
	if err != nil {
		return s.abortAfterCapture(ctx, settlementRepo, record, req, escrow,
			models.SettlementStageBlockchain, fmt.Sprintf("blockchain recording failed: %v", err), err)
	}

	if err := settlementRepo.SetBlockchainTransaction(ctx, record.ID, txID); err != nil {
		s.logger.Error("failed to record blockchain transaction id", "settlement_id", record.ID, "error", err)
	}

	return nil
}

func (s *SettlementService) releasePayout(
	ctx context.Context,
	settlementRepo repository.SettlementRepository,
	record *models.SettlementRecord,
	req SettlementRequest,
	escrow *gateway.EscrowResult,
) *ServiceError {
	payout, err := s.payments.ReleaseEscrow(ctx, escrow.EscrowID, req.SellerID)
	if err != nil {
		return s.abortAfterCapture(ctx, settlementRepo, record, req, escrow,
			models.SettlementStagePayout, fmt.Sprintf("escrow release failed: %v", err), err)
	}

	if err := settlementRepo.SetPaymentTransaction(ctx, record.ID, payout.TransactionID); err != nil {
		s.logger.Error("failed to record payout transaction id", "settlement_id", record.ID, "error", err)
	}

	return nil
}

func (s *SettlementService) finalize(
	ctx context.Context,
	settlementRepo repository.SettlementRepository,
	record *models.SettlementRecord,
	req SettlementRequest,
) *ServiceError {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return internalError("failed to start finalize transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	listingRepo := repository.NewListingRepository(tx)
	eventRepo := repository.NewEventRepository(tx)

	err = listingRepo.UpdateStatus(ctx, req.Listing.ID,
		[]models.ListingStatus{models.ListingStatusAccepted},
		models.ListingStatusCompleted,
	)
	if err != nil {
		return s.escalateUnreconciled(ctx, settlementRepo, record, req,
			fmt.Sprintf("listing completion failed after funds moved: %v", err), err)
	}

	event := &models.TargetingEvent{
		ListingID: req.Listing.ID,
		TargetID:  record.TargetID,
		Type:      models.EventSettlementDone,
		Severity:  models.SeverityInfo,
		Detail:    fmt.Sprintf("settlement %s completed for listing %s", record.ID, req.Listing.ID),
	}
	if err := eventRepo.Append(ctx, event); err != nil {
		return s.escalateUnreconciled(ctx, settlementRepo, record, req,
			fmt.Sprintf("settlement event append failed after funds moved: %v", err), err)
	}

	if err := tx.Commit(); err != nil {
		return s.escalateUnreconciled(ctx, settlementRepo, record, req,
			fmt.Sprintf("finalize commit failed after funds moved: %v", err), err)
	}

	if err := settlementRepo.MarkCompleted(ctx, record.ID); err != nil {
		// Listing is completed but the record marker failed; surface loudly,
		// the audit row still shows INITIATED with both transaction ids set.
		s.logger.Error("failed to mark settlement completed", "settlement_id", record.ID, "error", err)
	}
	record.Status = models.SettlementStatusCompleted

	return nil
}

// escalateUnreconciled records a finalize failure. By the time finalize
// runs, the blockchain record exists and any payout has already been
// released, so there is nothing left to refund and reverting the marketplace
// state would allow a second settlement on funds that already moved. The
// record goes CRITICAL and an operator reconciles it.
func (s *SettlementService) escalateUnreconciled(
	ctx context.Context,
	settlementRepo repository.SettlementRepository,
	record *models.SettlementRecord,
	req SettlementRequest,
	detail string,
	cause error,
) *ServiceError {
	if err := settlementRepo.MarkCritical(ctx, record.ID, models.SettlementStageFinalize, detail); err != nil {
		s.logger.Error("failed to mark settlement critical", "settlement_id", record.ID, "error", err)
	}
	record.Status = models.SettlementStatusCritical
	s.sink.CriticalRollbackFailure()
	s.appendSettlementEvent(ctx, req, record, models.SeverityCritical, detail)

	return &ServiceError{
		Code:    ErrCodeCriticalRollback,
		Message: "settlement partially committed and finalization failed",
		Err:     cause,
	}
}

// abortAfterCapture handles failures in stages that run after funds were
// captured. The escrow refund is best effort: if it also fails the record is
// marked CRITICAL so an operator reconciles it, never silently swallowed.
func (s *SettlementService) abortAfterCapture(
	ctx context.Context,
	settlementRepo repository.SettlementRepository,
	record *models.SettlementRecord,
	req SettlementRequest,
	escrow *gateway.EscrowResult,
	stage models.SettlementStage,
	detail string,
	cause error,
) *ServiceError {
	if escrow == nil {
		s.failAndCompensate(ctx, settlementRepo, record, req, stage, detail)
		return s.settlementFailed(stage, cause)
	}

	if _, refundErr := s.payments.RefundEscrow(ctx, escrow.EscrowID); refundErr != nil {
		detail = fmt.Sprintf("%s; escrow %s refund also failed: %v, manual reconciliation required",
			detail, escrow.EscrowID, refundErr)
		if err := settlementRepo.MarkCritical(ctx, record.ID, stage, detail); err != nil {
			s.logger.Error("failed to mark settlement critical", "settlement_id", record.ID, "error", err)
		}
		record.Status = models.SettlementStatusCritical
		s.sink.CriticalRollbackFailure()
		s.appendSettlementEvent(ctx, req, record, models.SeverityCritical, detail)
		s.compensateState(ctx, req, record)

		return &ServiceError{
			Code:    ErrCodeCriticalRollback,
			Message: "settlement partially committed and payment reversal failed",
			Err:     cause,
		}
	}

	detail = fmt.Sprintf("%s; escrow %s refunded", detail, escrow.EscrowID)
	if err := settlementRepo.MarkRolledBack(ctx, record.ID, stage, detail); err != nil {
		s.logger.Error("failed to mark settlement rolled back", "settlement_id", record.ID, "error", err)
	}
	record.Status = models.SettlementStatusRolledBack
	s.sink.SettlementFailed(string(stage))
	s.appendSettlementEvent(ctx, req, record, models.SeverityWarning, detail)
	s.compensateState(ctx, req, record)

	return s.settlementFailed(stage, cause)
}

// failAndCompensate records a pre-capture failure and restores the
// pre-accept state.
func (s *SettlementService) failAndCompensate(
	ctx context.Context,
	settlementRepo repository.SettlementRepository,
	record *models.SettlementRecord,
	req SettlementRequest,
	stage models.SettlementStage,
	detail string,
) {
	if err := settlementRepo.MarkFailed(ctx, record.ID, stage, detail); err != nil {
		s.logger.Error("failed to mark settlement failed", "settlement_id", record.ID, "error", err)
	}
	record.Status = models.SettlementStatusFailed
	s.sink.SettlementFailed(string(stage))
	s.appendSettlementEvent(ctx, req, record, models.SeverityWarning, detail)
	s.compensateState(ctx, req, record)
}

// compensateState reverts the acceptance: target back to ACTIVE (or auction
// winner selection undone) and the listing back to its pre-accept status.
func (s *SettlementService) compensateState(ctx context.Context, req SettlementRequest, record *models.SettlementRecord) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		s.logger.Error("failed to start compensation transaction", "settlement_id", record.ID, "error", err)
		return
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	if req.Target != nil {
		targetRepo := repository.NewTargetRepository(tx)
		if err := targetRepo.Revert(ctx, req.Target.ID); err != nil && !errors.Is(err, models.ErrTargetAlreadyResolved) {
			s.logger.Error("failed to revert target acceptance", "target_id", req.Target.ID, "error", err)
			return
		}
	}

	if req.Proposal != nil && req.AuctionID != nil {
		auctionRepo := repository.NewAuctionRepository(tx)
		if err := auctionRepo.RevertWinner(ctx, *req.AuctionID, req.Proposal.ID); err != nil {
			s.logger.Error("failed to revert winner selection", "auction_id", req.AuctionID, "error", err)
			return
		}
	}

	listingRepo := repository.NewListingRepository(tx)
	if err := listingRepo.SetStatus(ctx, req.Listing.ID, req.Listing.Status); err != nil {
		s.logger.Error("failed to restore listing status", "listing_id", req.Listing.ID, "error", err)
		return
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit compensation", "settlement_id", record.ID, "error", err)
	}
}

func (s *SettlementService) appendSettlementEvent(ctx context.Context, req SettlementRequest, record *models.SettlementRecord, severity models.EventSeverity, detail string) {
	eventRepo := repository.NewEventRepository(s.db)
	event := &models.TargetingEvent{
		ListingID: req.Listing.ID,
		TargetID:  record.TargetID,
		Type:      models.EventSettlementFailed,
		Severity:  severity,
		Detail:    detail,
	}
	if err := eventRepo.Append(ctx, event); err != nil {
		s.logger.Error("failed to append settlement event", "settlement_id", record.ID, "error", err)
	}
}

// emitCompleted notifies both parties. Fire and forget: notification failure
// never affects a committed settlement.
func (s *SettlementService) emitCompleted(ctx context.Context, req SettlementRequest, record *models.SettlementRecord) {
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()

	payload := map[string]any{
		"listing_id":    req.Listing.ID.String(),
		"settlement_id": record.ID.String(),
	}
	s.notifications.Emit(notifyCtx, gateway.EventSwapCompleted, req.SellerID, payload)
	s.notifications.Emit(notifyCtx, gateway.EventSwapCompleted, req.BuyerID, payload)
}

func (s *SettlementService) settlementFailed(stage models.SettlementStage, cause error) *ServiceError {
	code := ErrCodeSettlementFailed
	if errors.Is(cause, gateway.ErrPaymentDeclined) {
		code = ErrCodePaymentDeclined
	}
	return &ServiceError{
		Code:    code,
		Message: fmt.Sprintf("settlement failed at %s stage", stage),
		Err:     cause,
	}
}
