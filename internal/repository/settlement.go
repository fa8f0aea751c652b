package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bushboy/bookingswap/internal/models"
	"github.com/google/uuid"
)

// SettlementRepository defines the interface for settlement audit rows.
//
// The INITIATED row is written and committed before any gateway call, and
// every terminal marker is a separate committed write, so a crash at any
// point in the saga leaves a durable trail.
type SettlementRepository interface {
	Create(ctx context.Context, record *models.SettlementRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.SettlementRecord, error)
	FindByTargetID(ctx context.Context, targetID uuid.UUID) (*models.SettlementRecord, error)
	SetPaymentTransaction(ctx context.Context, id uuid.UUID, paymentTxID string) error
	SetBlockchainTransaction(ctx context.Context, id uuid.UUID, blockchainTxID string) error
	MarkCompleted(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, stage models.SettlementStage, details string) error
	MarkRolledBack(ctx context.Context, id uuid.UUID, stage models.SettlementStage, details string) error
	MarkCritical(ctx context.Context, id uuid.UUID, stage models.SettlementStage, details string) error
}

type settlementRepository struct {
	q Querier
}

// NewSettlementRepository creates a new SettlementRepository over the given Querier
func NewSettlementRepository(q Querier) SettlementRepository {
	return &settlementRepository{q: q}
}

const settlementColumns = `id, listing_id, target_id, auction_proposal_id, status, failed_stage,
       payment_transaction_id, blockchain_transaction_id, error_details, created_at, updated_at`

func (r *settlementRepository) Create(ctx context.Context, record *models.SettlementRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.Status == "" {
		record.Status = models.SettlementStatusInitiated
	}

	query := `
		INSERT INTO settlement_records (id, listing_id, target_id, auction_proposal_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRowContext(ctx, query,
		record.ID,
		record.ListingID,
		record.TargetID,
		record.AuctionProposalID,
		record.Status,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create settlement record: %w", err)
	}

	return nil
}

func (r *settlementRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.SettlementRecord, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlement_records WHERE id = $1`
	return r.scanRecord(r.q.QueryRowContext(ctx, query, id))
}

func (r *settlementRepository) FindByTargetID(ctx context.Context, targetID uuid.UUID) (*models.SettlementRecord, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlement_records
		WHERE target_id = $1 ORDER BY created_at DESC LIMIT 1`
	return r.scanRecord(r.q.QueryRowContext(ctx, query, targetID))
}

func (r *settlementRepository) SetPaymentTransaction(ctx context.Context, id uuid.UUID, paymentTxID string) error {
	return r.exec(ctx, `
		UPDATE settlement_records
		SET payment_transaction_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'INITIATED'
	`, id, paymentTxID)
}

func (r *settlementRepository) SetBlockchainTransaction(ctx context.Context, id uuid.UUID, blockchainTxID string) error {
	return r.exec(ctx, `
		UPDATE settlement_records
		SET blockchain_transaction_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'INITIATED'
	`, id, blockchainTxID)
}

// MarkCompleted finalizes a record. Completed records are immutable: every
// other marker below refuses to touch a COMPLETED row.
func (r *settlementRepository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, `
		UPDATE settlement_records
		SET status = 'COMPLETED', updated_at = NOW()
		WHERE id = $1 AND status = 'INITIATED'
	`, id)
}

func (r *settlementRepository) MarkFailed(ctx context.Context, id uuid.UUID, stage models.SettlementStage, details string) error {
	return r.markTerminal(ctx, id, models.SettlementStatusFailed, stage, details)
}

func (r *settlementRepository) MarkRolledBack(ctx context.Context, id uuid.UUID, stage models.SettlementStage, details string) error {
	return r.markTerminal(ctx, id, models.SettlementStatusRolledBack, stage, details)
}

func (r *settlementRepository) MarkCritical(ctx context.Context, id uuid.UUID, stage models.SettlementStage, details string) error {
	return r.markTerminal(ctx, id, models.SettlementStatusCritical, stage, details)
}

func (r *settlementRepository) markTerminal(ctx context.Context, id uuid.UUID, status models.SettlementStatus, stage models.SettlementStage, details string) error {
	return r.exec(ctx, `
		UPDATE settlement_records
		SET status = $2, failed_stage = $3, error_details = $4, updated_at = NOW()
		WHERE id = $1 AND status NOT IN ('COMPLETED', 'CRITICAL')
	`, id, status, stage, details)
}

func (r *settlementRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update settlement record: %w", err)
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

func (r *settlementRepository) scanRecord(row *sql.Row) (*models.SettlementRecord, error) {
	var record models.SettlementRecord
	err := row.Scan(
		&record.ID,
		&record.ListingID,
		&record.TargetID,
		&record.AuctionProposalID,
		&record.Status,
		&record.FailedStage,
		&record.PaymentTransactionID,
		&record.BlockchainTransactionID,
		&record.ErrorDetails,
		&record.CreatedAt,
		&record.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan settlement record: %w", err)
	}

	return &record, nil
}
