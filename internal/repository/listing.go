package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bushboy/bookingswap/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ListingRepository defines the interface for listing data access
type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	// UpdateStatus conditionally transitions a listing from any of the given
	// statuses to the new one. Returns models.ErrListingUnavailable when the
	// row was not in an allowed status (a concurrent writer got there first).
	UpdateStatus(ctx context.Context, id uuid.UUID, from []models.ListingStatus, to models.ListingStatus) error
	// SetStatus force-sets a listing status. Reserved for compensation paths
	// where the pre-accept status is being restored.
	SetStatus(ctx context.Context, id uuid.UUID, to models.ListingStatus) error
}

type listingRepository struct {
	q Querier
}

// NewListingRepository creates a new ListingRepository over the given Querier
func NewListingRepository(q Querier) ListingRepository {
	return &listingRepository{q: q}
}

const listingColumns = `id, owner_id, source_booking_id, status, acceptance_strategy,
       auction_id, allow_booking_swap, allow_cash_offer, min_cash_cents,
       expires_at, created_at, updated_at`

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}

	query := `
		INSERT INTO listings (id, owner_id, source_booking_id, status, acceptance_strategy,
		                      auction_id, allow_booking_swap, allow_cash_offer, min_cash_cents, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRowContext(ctx, query,
		listing.ID,
		listing.OwnerID,
		listing.SourceBookingID,
		listing.Status,
		listing.AcceptanceStrategy,
		listing.AuctionID,
		listing.AllowBookingSwap,
		listing.AllowCashOffer,
		listing.MinCashCents,
		listing.ExpiresAt,
	).Scan(&listing.CreatedAt, &listing.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}

	return nil
}

func (r *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`
	return r.scanListing(r.q.QueryRowContext(ctx, query, id))
}

// FindByIDForUpdate retrieves a listing and takes a row lock for the duration
// of the surrounding transaction. Concurrent accepts on the same listing
// serialize here.
func (r *listingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1 FOR UPDATE`
	return r.scanListing(r.q.QueryRowContext(ctx, query, id))
}

func (r *listingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from []models.ListingStatus, to models.ListingStatus) error {
	query := `
		UPDATE listings
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = ANY($3)
	`

	statuses := make([]string, len(from))
	for i, s := range from {
		statuses[i] = string(s)
	}

	result, err := r.q.ExecContext(ctx, query, id, to, pq.Array(statuses))
	if err != nil {
		return fmt.Errorf("failed to update listing status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrListingUnavailable
	}

	return nil
}

func (r *listingRepository) SetStatus(ctx context.Context, id uuid.UUID, to models.ListingStatus) error {
	query := `UPDATE listings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.q.ExecContext(ctx, query, id, to)
	if err != nil {
		return fmt.Errorf("failed to set listing status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *listingRepository) scanListing(row *sql.Row) (*models.Listing, error) {
	var listing models.Listing
	err := row.Scan(
		&listing.ID,
		&listing.OwnerID,
		&listing.SourceBookingID,
		&listing.Status,
		&listing.AcceptanceStrategy,
		&listing.AuctionID,
		&listing.AllowBookingSwap,
		&listing.AllowCashOffer,
		&listing.MinCashCents,
		&listing.ExpiresAt,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan listing: %w", err)
	}

	return &listing, nil
}
