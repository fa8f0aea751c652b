package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bushboy/bookingswap/internal/db"
	"github.com/bushboy/bookingswap/internal/models"
	"github.com/bushboy/bookingswap/internal/repository"
	"github.com/google/uuid"
)

// TargetingService handles creation and retargeting of swap proposals
type TargetingService struct {
	db *db.DB
}

// NewTargetingService creates a new TargetingService
func NewTargetingService(database *db.DB) *TargetingService {
	return &TargetingService{db: database}
}

// ProposeRequest carries the inputs for a new targeting proposal
type ProposeRequest struct {
	Message         *string
	Conditions      *string
	SourceListingID uuid.UUID
	TargetListingID uuid.UUID
	ProposerID      uuid.UUID
}

// Propose creates a directed target from the proposer's listing onto another
// listing. The created target and the TARGETED transition of the receiving
// listing commit together.
func (s *TargetingService) Propose(ctx context.Context, req ProposeRequest) (*models.Target, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, internalError("failed to start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	target, err := s.performPropose(ctx, repository.NewListingRepository(tx), repository.NewTargetRepository(tx), repository.NewEventRepository(tx), req)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, internalError("failed to commit transaction", err)
	}

	return target, nil
}

// performPropose contains the core proposal business logic
func (s *TargetingService) performPropose(
	ctx context.Context,
	listingRepo repository.ListingRepository,
	targetRepo repository.TargetRepository,
	eventRepo repository.EventRepository,
	req ProposeRequest,
) (*models.Target, error) {
	source, targetListing, err := s.loadPair(ctx, listingRepo, req.SourceListingID, req.TargetListingID)
	if err != nil {
		return nil, err
	}

	if err := s.validatePair(source, targetListing, req.ProposerID); err != nil {
		return nil, err
	}

	target := &models.Target{
		SourceListingID: req.SourceListingID,
		TargetListingID: req.TargetListingID,
		ProposerID:      req.ProposerID,
		Message:         req.Message,
		Conditions:      req.Conditions,
		Status:          models.TargetStatusActive,
	}

	if err := targetRepo.Create(ctx, target); err != nil {
		if errors.Is(err, models.ErrDuplicateActiveTarget) {
			return nil, &ServiceError{
				Code:    ErrCodeDuplicateActiveTarget,
				Message: "source listing already has an active target; retarget instead",
			}
		}
		return nil, internalError("failed to create target", err)
	}

	if err := s.markTargeted(ctx, listingRepo, targetListing); err != nil {
		return nil, err
	}

	if err := s.appendCreated(ctx, eventRepo, target); err != nil {
		return nil, err
	}

	return target, nil
}

// RetargetRequest carries the inputs for replacing an active proposal
type RetargetRequest struct {
	Message         *string
	Conditions      *string
	SourceListingID uuid.UUID
	NewTargetID     uuid.UUID
	ProposerID      uuid.UUID
}

// Retarget atomically supersedes the source listing's active target and
// creates a new one. Both writes commit together or not at all, so the
// source listing never observably has zero or two active outgoing targets.
func (s *TargetingService) Retarget(ctx context.Context, req RetargetRequest) (*models.Target, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, internalError("failed to start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	target, err := s.performRetarget(ctx, repository.NewListingRepository(tx), repository.NewTargetRepository(tx), repository.NewEventRepository(tx), req)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, internalError("failed to commit transaction", err)
	}

	return target, nil
}

func (s *TargetingService) performRetarget(
	ctx context.Context,
	listingRepo repository.ListingRepository,
	targetRepo repository.TargetRepository,
	eventRepo repository.EventRepository,
	req RetargetRequest,
) (*models.Target, error) {
	source, targetListing, err := s.loadPair(ctx, listingRepo, req.SourceListingID, req.NewTargetID)
	if err != nil {
		return nil, err
	}

	if err := s.validatePair(source, targetListing, req.ProposerID); err != nil {
		return nil, err
	}

	supersededID, err := targetRepo.Supersede(ctx, req.SourceListingID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{
				Code:    ErrCodeNoActiveTarget,
				Message: "source listing has no active target to replace",
			}
		}
		return nil, internalError("failed to supersede target", err)
	}

	target := &models.Target{
		SourceListingID: req.SourceListingID,
		TargetListingID: req.NewTargetID,
		ProposerID:      req.ProposerID,
		Message:         req.Message,
		Conditions:      req.Conditions,
		Status:          models.TargetStatusActive,
	}

	if err := targetRepo.Create(ctx, target); err != nil {
		return nil, internalError("failed to create replacement target", err)
	}

	if err := s.markTargeted(ctx, listingRepo, targetListing); err != nil {
		return nil, err
	}

	superseded := &models.TargetingEvent{
		ListingID: req.SourceListingID,
		TargetID:  supersededID,
		ActorID:   &req.ProposerID,
		Type:      models.EventTargetSuperseded,
		Severity:  models.SeverityInfo,
		Detail:    fmt.Sprintf("target %s superseded by retarget onto listing %s", supersededID, req.NewTargetID),
	}
	if err := eventRepo.Append(ctx, superseded); err != nil {
		return nil, internalError("failed to record supersede event", err)
	}

	if err := s.appendCreated(ctx, eventRepo, target); err != nil {
		return nil, err
	}

	return target, nil
}

func (s *TargetingService) loadPair(
	ctx context.Context,
	listingRepo repository.ListingRepository,
	sourceID, targetID uuid.UUID,
) (*models.Listing, *models.Listing, error) {
	source, err := listingRepo.FindByID(ctx, sourceID)
	if err != nil {
		return nil, nil, listingNotFound(sourceID, err)
	}

	targetListing, err := listingRepo.FindByIDForUpdate(ctx, targetID)
	if err != nil {
		return nil, nil, listingNotFound(targetID, err)
	}

	return source, targetListing, nil
}

func (s *TargetingService) validatePair(source, targetListing *models.Listing, proposerID uuid.UUID) error {
	if source.OwnerID != proposerID {
		return &ServiceError{
			Code:    ErrCodeForbidden,
			Message: "only the owner of the source listing may propose with it",
		}
	}

	if source.OwnerID == targetListing.OwnerID {
		return &ServiceError{
			Code:    ErrCodeSelfTargeting,
			Message: "cannot target a listing owned by the same user",
		}
	}

	now := time.Now()
	if targetListing.Expired(now) {
		return &ServiceError{
			Code:    ErrCodeListingExpired,
			Message: "target listing has expired",
		}
	}
	if !targetListing.Available(now) {
		return &ServiceError{
			Code:    ErrCodeListingUnavailable,
			Message: "target listing is no longer available",
		}
	}
	if !source.Available(now) {
		return &ServiceError{
			Code:    ErrCodeListingUnavailable,
			Message: "source listing is no longer available",
		}
	}

	return nil
}

func (s *TargetingService) markTargeted(ctx context.Context, listingRepo repository.ListingRepository, targetListing *models.Listing) error {
	if targetListing.Status == models.ListingStatusTargeted {
		return nil
	}

	err := listingRepo.UpdateStatus(ctx, targetListing.ID,
		[]models.ListingStatus{models.ListingStatusPending},
		models.ListingStatusTargeted,
	)
	if errors.Is(err, models.ErrListingUnavailable) {
		return &ServiceError{
			Code:    ErrCodeListingUnavailable,
			Message: "target listing is no longer available",
		}
	}
	if err != nil {
		return internalError("failed to mark listing targeted", err)
	}

	return nil
}

func (s *TargetingService) appendCreated(ctx context.Context, eventRepo repository.EventRepository, target *models.Target) error {
	event := &models.TargetingEvent{
		ListingID: target.TargetListingID,
		TargetID:  &target.ID,
		ActorID:   &target.ProposerID,
		Type:      models.EventTargetCreated,
		Severity:  models.SeverityInfo,
		Detail:    fmt.Sprintf("listing %s targeted by listing %s", target.TargetListingID, target.SourceListingID),
	}
	if err := eventRepo.Append(ctx, event); err != nil {
		return internalError("failed to record targeting event", err)
	}
	return nil
}

func listingNotFound(id uuid.UUID, err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return &ServiceError{
			Code:    ErrCodeListingNotFound,
			Message: fmt.Sprintf("listing %s not found", id),
		}
	}
	return internalError("failed to load listing", err)
}

func internalError(message string, err error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeInternalError,
		Message: message,
		Err:     err,
	}
}
