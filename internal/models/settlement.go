package models

import (
	"time"

	"github.com/google/uuid"
)

// SettlementStatus represents the status of a settlement saga
type SettlementStatus string

const (
	SettlementStatusInitiated  SettlementStatus = "INITIATED"
	SettlementStatusCompleted  SettlementStatus = "COMPLETED"
	SettlementStatusFailed     SettlementStatus = "FAILED"
	SettlementStatusRolledBack SettlementStatus = "ROLLED_BACK"
	// SettlementStatusCritical marks a settlement that failed after funds
	// were captured and whose payment reversal also failed. Rows in this
	// state require manual reconciliation and must never be overwritten.
	SettlementStatusCritical SettlementStatus = "CRITICAL"
)

// SettlementStage identifies which saga step a failure occurred in
type SettlementStage string

const (
	SettlementStagePayment    SettlementStage = "PAYMENT"
	SettlementStageBlockchain SettlementStage = "BLOCKCHAIN"
	SettlementStagePayout     SettlementStage = "PAYOUT"
	SettlementStageFinalize   SettlementStage = "FINALIZE"
)

// SettlementRecord is the durable audit row for one acceptance settlement.
// It is created with status INITIATED before any gateway call, so a crash
// mid-saga always leaves an inspectable trail. Once COMPLETED it is immutable.
type SettlementRecord struct {
	CreatedAt               time.Time        `db:"created_at"`
	UpdatedAt               time.Time        `db:"updated_at"`
	Status                  SettlementStatus `db:"status"`
	FailedStage             *SettlementStage `db:"failed_stage"`
	ErrorDetails            *string          `db:"error_details"`
	PaymentTransactionID    *string          `db:"payment_transaction_id"`
	BlockchainTransactionID *string          `db:"blockchain_transaction_id"`
	TargetID                *uuid.UUID       `db:"target_id"`
	AuctionProposalID       *uuid.UUID       `db:"auction_proposal_id"`
	ID                      uuid.UUID        `db:"id"`
	ListingID               uuid.UUID        `db:"listing_id"`
}
