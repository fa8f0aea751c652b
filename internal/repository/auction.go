package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bushboy/bookingswap/internal/models"
	"github.com/google/uuid"
)

// AuctionRepository defines the interface for auction data access
type AuctionRepository interface {
	Create(ctx context.Context, auction *models.Auction) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Auction, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Auction, error)
	// CloseIfExpired transitions OPEN → ENDED when the window has passed.
	// Idempotent and safe to race: exactly one caller flips the row, all
	// others see false with no error.
	CloseIfExpired(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
	// CloseAllExpired is the sweep form of CloseIfExpired across all open
	// auctions whose window has passed. Returns the closed auction ids.
	CloseAllExpired(ctx context.Context, now time.Time) ([]uuid.UUID, error)
	// MarkWinnerSelected transitions ENDED → WINNER_SELECTED and records the
	// winning proposal. Zero affected rows means another caller already
	// selected a winner.
	MarkWinnerSelected(ctx context.Context, id, winningProposalID uuid.UUID) error

	CreateProposal(ctx context.Context, proposal *models.AuctionProposal) error
	FindProposalByID(ctx context.Context, id uuid.UUID) (*models.AuctionProposal, error)
	FindProposalByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.AuctionProposal, error)
	ListProposals(ctx context.Context, auctionID uuid.UUID) ([]models.AuctionProposal, error)
	// MarkProposalWon transitions SUBMITTED → WON for the winner.
	MarkProposalWon(ctx context.Context, id uuid.UUID) error
	// MarkSiblingsLost transitions every other SUBMITTED proposal in the
	// auction to LOST, returning their ids.
	MarkSiblingsLost(ctx context.Context, auctionID, wonID uuid.UUID) ([]uuid.UUID, error)
	// RevertWinner undoes a winner selection: winner WON → SUBMITTED,
	// siblings LOST → SUBMITTED, auction WINNER_SELECTED → ENDED.
	// Compensation path only.
	RevertWinner(ctx context.Context, auctionID, winningProposalID uuid.UUID) error
}

type auctionRepository struct {
	q Querier
}

// NewAuctionRepository creates a new AuctionRepository over the given Querier
func NewAuctionRepository(q Querier) AuctionRepository {
	return &auctionRepository{q: q}
}

const auctionColumns = `id, listing_id, status, allow_booking_proposals, allow_cash_proposals,
       winning_proposal_id, ends_at, created_at, updated_at`

const proposalColumns = `id, auction_id, proposer_id, type, status, booking_id,
       amount_cents, currency, payment_method_id, created_at, updated_at`

func (r *auctionRepository) Create(ctx context.Context, auction *models.Auction) error {
	if auction.ID == uuid.Nil {
		auction.ID = uuid.New()
	}
	if auction.Status == "" {
		auction.Status = models.AuctionStatusOpen
	}

	query := `
		INSERT INTO auctions (id, listing_id, status, allow_booking_proposals, allow_cash_proposals, ends_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRowContext(ctx, query,
		auction.ID,
		auction.ListingID,
		auction.Status,
		auction.AllowBookingProposals,
		auction.AllowCashProposals,
		auction.EndsAt,
	).Scan(&auction.CreatedAt, &auction.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create auction: %w", err)
	}

	return nil
}

func (r *auctionRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = $1`
	return r.scanAuction(r.q.QueryRowContext(ctx, query, id))
}

func (r *auctionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = $1 FOR UPDATE`
	return r.scanAuction(r.q.QueryRowContext(ctx, query, id))
}

func (r *auctionRepository) CloseIfExpired(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	query := `
		UPDATE auctions
		SET status = 'ENDED', updated_at = NOW()
		WHERE id = $1 AND status = 'OPEN' AND ends_at <= $2
	`

	result, err := r.q.ExecContext(ctx, query, id, now)
	if err != nil {
		return false, fmt.Errorf("failed to close auction: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}

func (r *auctionRepository) CloseAllExpired(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	query := `
		UPDATE auctions
		SET status = 'ENDED', updated_at = NOW()
		WHERE status = 'OPEN' AND ends_at <= $1
		RETURNING id
	`

	rows, err := r.q.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to sweep expired auctions: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows close

	var closed []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan closed auction id: %w", err)
		}
		closed = append(closed, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate closed auctions: %w", err)
	}

	return closed, nil
}

func (r *auctionRepository) MarkWinnerSelected(ctx context.Context, id, winningProposalID uuid.UUID) error {
	query := `
		UPDATE auctions
		SET status = 'WINNER_SELECTED', winning_proposal_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'ENDED'
	`

	result, err := r.q.ExecContext(ctx, query, id, winningProposalID)
	if err != nil {
		return fmt.Errorf("failed to mark winner selected: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrProposalAlreadyResolved
	}

	return nil
}

func (r *auctionRepository) CreateProposal(ctx context.Context, proposal *models.AuctionProposal) error {
	if proposal.ID == uuid.Nil {
		proposal.ID = uuid.New()
	}
	if proposal.Status == "" {
		proposal.Status = models.ProposalStatusSubmitted
	}

	query := `
		INSERT INTO auction_proposals (id, auction_id, proposer_id, type, status,
		                               booking_id, amount_cents, currency, payment_method_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRowContext(ctx, query,
		proposal.ID,
		proposal.AuctionID,
		proposal.ProposerID,
		proposal.Type,
		proposal.Status,
		proposal.BookingID,
		proposal.AmountCents,
		proposal.Currency,
		proposal.PaymentMethodID,
	).Scan(&proposal.CreatedAt, &proposal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create auction proposal: %w", err)
	}

	return nil
}

func (r *auctionRepository) FindProposalByID(ctx context.Context, id uuid.UUID) (*models.AuctionProposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM auction_proposals WHERE id = $1`
	return r.scanProposal(r.q.QueryRowContext(ctx, query, id))
}

func (r *auctionRepository) FindProposalByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.AuctionProposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM auction_proposals WHERE id = $1 FOR UPDATE`
	return r.scanProposal(r.q.QueryRowContext(ctx, query, id))
}

func (r *auctionRepository) ListProposals(ctx context.Context, auctionID uuid.UUID) ([]models.AuctionProposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM auction_proposals WHERE auction_id = $1 ORDER BY created_at`

	rows, err := r.q.QueryContext(ctx, query, auctionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list auction proposals: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows close

	var proposals []models.AuctionProposal
	for rows.Next() {
		p, err := r.scanProposalRows(rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate auction proposals: %w", err)
	}

	return proposals, nil
}

func (r *auctionRepository) MarkProposalWon(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE auction_proposals
		SET status = 'WON', updated_at = NOW()
		WHERE id = $1 AND status = 'SUBMITTED'
	`

	result, err := r.q.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark proposal won: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrProposalAlreadyResolved
	}

	return nil
}

func (r *auctionRepository) MarkSiblingsLost(ctx context.Context, auctionID, wonID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		UPDATE auction_proposals
		SET status = 'LOST', updated_at = NOW()
		WHERE auction_id = $1 AND id <> $2 AND status = 'SUBMITTED'
		RETURNING id
	`

	rows, err := r.q.QueryContext(ctx, query, auctionID, wonID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark sibling proposals lost: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows close

	var lost []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan lost proposal id: %w", err)
		}
		lost = append(lost, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lost proposals: %w", err)
	}

	return lost, nil
}

func (r *auctionRepository) RevertWinner(ctx context.Context, auctionID, winningProposalID uuid.UUID) error {
	queries := []struct {
		query string
		args  []any
	}{
		{
			query: `UPDATE auction_proposals SET status = 'SUBMITTED', updated_at = NOW()
				WHERE id = $1 AND status = 'WON'`,
			args: []any{winningProposalID},
		},
		{
			query: `UPDATE auction_proposals SET status = 'SUBMITTED', updated_at = NOW()
				WHERE auction_id = $1 AND status = 'LOST'`,
			args: []any{auctionID},
		},
		{
			query: `UPDATE auctions SET status = 'ENDED', winning_proposal_id = NULL, updated_at = NOW()
				WHERE id = $1 AND status = 'WINNER_SELECTED'`,
			args: []any{auctionID},
		},
	}

	for _, q := range queries {
		if _, err := r.q.ExecContext(ctx, q.query, q.args...); err != nil {
			return fmt.Errorf("failed to revert winner selection: %w", err)
		}
	}

	return nil
}

func (r *auctionRepository) scanAuction(row *sql.Row) (*models.Auction, error) {
	var auction models.Auction
	err := row.Scan(
		&auction.ID,
		&auction.ListingID,
		&auction.Status,
		&auction.AllowBookingProposals,
		&auction.AllowCashProposals,
		&auction.WinningProposalID,
		&auction.EndsAt,
		&auction.CreatedAt,
		&auction.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan auction: %w", err)
	}

	return &auction, nil
}

func (r *auctionRepository) scanProposal(row *sql.Row) (*models.AuctionProposal, error) {
	var p models.AuctionProposal
	err := row.Scan(
		&p.ID,
		&p.AuctionID,
		&p.ProposerID,
		&p.Type,
		&p.Status,
		&p.BookingID,
		&p.AmountCents,
		&p.Currency,
		&p.PaymentMethodID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan auction proposal: %w", err)
	}

	return &p, nil
}

func (r *auctionRepository) scanProposalRows(rows *sql.Rows) (*models.AuctionProposal, error) {
	var p models.AuctionProposal
	err := rows.Scan(
		&p.ID,
		&p.AuctionID,
		&p.ProposerID,
		&p.Type,
		&p.Status,
		&p.BookingID,
		&p.AmountCents,
		&p.Currency,
		&p.PaymentMethodID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan auction proposal: %w", err)
	}

	return &p, nil
}
