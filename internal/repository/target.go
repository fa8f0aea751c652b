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

// TargetRepository defines the interface for swap target data access.
//
// All status transitions are conditional updates guarded on the current
// status, so a losing concurrent writer observes zero affected rows and gets
// models.ErrTargetAlreadyResolved instead of corrupting state.
type TargetRepository interface {
	Create(ctx context.Context, target *models.Target) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Target, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Target, error)
	FindActiveBySource(ctx context.Context, sourceListingID uuid.UUID) (*models.Target, error)
	// Accept transitions ACTIVE → ACCEPTED. The caller must run this inside
	// the same transaction as ResolveCompetitors and the listing update.
	Accept(ctx context.Context, id uuid.UUID) error
	// ResolveCompetitors marks every other ACTIVE target onto the same
	// listing REJECTED. Returns the resolved targets so losers can be
	// notified.
	ResolveCompetitors(ctx context.Context, targetListingID, acceptedID uuid.UUID) ([]ResolvedTarget, error)
	Reject(ctx context.Context, id uuid.UUID) error
	Cancel(ctx context.Context, id uuid.UUID) error
	// Supersede marks the current ACTIVE outgoing target of the source
	// listing SUPERSEDED. Returns models.ErrNotFound when there was none.
	Supersede(ctx context.Context, sourceListingID uuid.UUID) (*uuid.UUID, error)
	// Revert restores an ACCEPTED target to ACTIVE. Compensation path only,
	// used when settlement fails after the acceptance committed.
	Revert(ctx context.Context, id uuid.UUID) error
}

type targetRepository struct {
	q Querier
}

// NewTargetRepository creates a new TargetRepository over the given Querier
func NewTargetRepository(q Querier) TargetRepository {
	return &targetRepository{q: q}
}

const targetColumns = `id, source_listing_id, target_listing_id, proposer_id, status,
       message, conditions, created_at, updated_at`

func (r *targetRepository) Create(ctx context.Context, target *models.Target) error {
	if target.ID == uuid.Nil {
		target.ID = uuid.New()
	}
	if target.Status == "" {
		target.Status = models.TargetStatusActive
	}

	query := `
		INSERT INTO swap_targets (id, source_listing_id, target_listing_id, proposer_id, status, message, conditions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRowContext(ctx, query,
		target.ID,
		target.SourceListingID,
		target.TargetListingID,
		target.ProposerID,
		target.Status,
		target.Message,
		target.Conditions,
	).Scan(&target.CreatedAt, &target.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		// Partial unique index on (source_listing_id) WHERE status = 'ACTIVE'
		return models.ErrDuplicateActiveTarget
	}
	if err != nil {
		return fmt.Errorf("failed to create target: %w", err)
	}

	return nil
}

func (r *targetRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Target, error) {
	query := `SELECT ` + targetColumns + ` FROM swap_targets WHERE id = $1`
	return r.scanTarget(r.q.QueryRowContext(ctx, query, id))
}

func (r *targetRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Target, error) {
	query := `SELECT ` + targetColumns + ` FROM swap_targets WHERE id = $1 FOR UPDATE`
	return r.scanTarget(r.q.QueryRowContext(ctx, query, id))
}

func (r *targetRepository) FindActiveBySource(ctx context.Context, sourceListingID uuid.UUID) (*models.Target, error) {
	query := `SELECT ` + targetColumns + ` FROM swap_targets WHERE source_listing_id = $1 AND status = 'ACTIVE'`
	return r.scanTarget(r.q.QueryRowContext(ctx, query, sourceListingID))
}

func (r *targetRepository) Accept(ctx context.Context, id uuid.UUID) error {
	return r.transition(ctx, id, models.TargetStatusActive, models.TargetStatusAccepted)
}

func (r *targetRepository) Reject(ctx context.Context, id uuid.UUID) error {
	return r.transition(ctx, id, models.TargetStatusActive, models.TargetStatusRejected)
}

func (r *targetRepository) Cancel(ctx context.Context, id uuid.UUID) error {
	return r.transition(ctx, id, models.TargetStatusActive, models.TargetStatusCancelled)
}

func (r *targetRepository) Revert(ctx context.Context, id uuid.UUID) error {
	return r.transition(ctx, id, models.TargetStatusAccepted, models.TargetStatusActive)
}

// transition performs a conditional status update. Zero affected rows means
// a concurrent writer already resolved the target.
func (r *targetRepository) transition(ctx context.Context, id uuid.UUID, from, to models.TargetStatus) error {
	query := `
		UPDATE swap_targets
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := r.q.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return fmt.Errorf("failed to transition target %s -> %s: %w", from, to, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrTargetAlreadyResolved
	}

	return nil
}

// ResolvedTarget identifies a target rejected as a side effect of a
// competing acceptance
type ResolvedTarget struct {
	ID         uuid.UUID
	ProposerID uuid.UUID
}

func (r *targetRepository) ResolveCompetitors(ctx context.Context, targetListingID, acceptedID uuid.UUID) ([]ResolvedTarget, error) {
	query := `
		UPDATE swap_targets
		SET status = 'REJECTED', updated_at = NOW()
		WHERE target_listing_id = $1 AND id <> $2 AND status = 'ACTIVE'
		RETURNING id, proposer_id
	`

	rows, err := r.q.QueryContext(ctx, query, targetListingID, acceptedID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve competing targets: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows close

	var resolved []ResolvedTarget
	for rows.Next() {
		var rt ResolvedTarget
		if err := rows.Scan(&rt.ID, &rt.ProposerID); err != nil {
			return nil, fmt.Errorf("failed to scan resolved target: %w", err)
		}
		resolved = append(resolved, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resolved targets: %w", err)
	}

	return resolved, nil
}

func (r *targetRepository) Supersede(ctx context.Context, sourceListingID uuid.UUID) (*uuid.UUID, error) {
	query := `
		UPDATE swap_targets
		SET status = 'SUPERSEDED', updated_at = NOW()
		WHERE source_listing_id = $1 AND status = 'ACTIVE'
		RETURNING id
	`

	var id uuid.UUID
	err := r.q.QueryRowContext(ctx, query, sourceListingID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to supersede target: %w", err)
	}

	return &id, nil
}

func (r *targetRepository) scanTarget(row *sql.Row) (*models.Target, error) {
	var target models.Target
	err := row.Scan(
		&target.ID,
		&target.SourceListingID,
		&target.TargetListingID,
		&target.ProposerID,
		&target.Status,
		&target.Message,
		&target.Conditions,
		&target.CreatedAt,
		&target.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan target: %w", err)
	}

	return &target, nil
}
