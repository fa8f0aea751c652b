// Package gateway defines the external collaborators the settlement saga
// depends on: payment escrow, blockchain recording and user notification.
// Each implementation is a network client; the settlement coordinator only
// ever sees these interfaces.
package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Payment gateway failures. Declined is a terminal business outcome;
// unavailable is infrastructure and retryable by the caller.
var (
	ErrPaymentDeclined    = errors.New("payment declined")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

// Blockchain gateway failures
var (
	ErrNetworkError        = errors.New("blockchain network error")
	ErrInsufficientBalance = errors.New("insufficient operator balance")
)

// EscrowRequest asks the payment gateway to capture funds into escrow
type EscrowRequest struct {
	Currency        string
	PaymentMethodID string
	ListingRef      string
	AmountCents     int64
	PayerID         uuid.UUID
	RecipientID     uuid.UUID
}

// EscrowResult identifies gateway-held funds
type EscrowResult struct {
	EscrowID string
	Status   string
}

// PaymentTransaction is the gateway's record of a release or refund
type PaymentTransaction struct {
	CreatedAt     time.Time
	TransactionID string
	EscrowID      string
	AmountCents   int64
}

// PaymentGateway captures, releases and reverses escrowed funds
type PaymentGateway interface {
	CreateEscrow(ctx context.Context, req EscrowRequest) (*EscrowResult, error)
	ReleaseEscrow(ctx context.Context, escrowID string, recipientID uuid.UUID) (*PaymentTransaction, error)
	// RefundEscrow is the compensating reversal: best-effort return of
	// captured funds to the payer when a later settlement stage fails.
	RefundEscrow(ctx context.Context, escrowID string) (*PaymentTransaction, error)
}

// SettlementDetails describes the swap event recorded on chain
type SettlementDetails struct {
	ListingID         uuid.UUID
	TargetID          *uuid.UUID
	AuctionProposalID *uuid.UUID
	BuyerID           uuid.UUID
	SellerID          uuid.UUID
	AmountCents       int64
	Currency          string
}

// BlockchainGateway records settlements on the ledger
type BlockchainGateway interface {
	RecordSettlement(ctx context.Context, details SettlementDetails) (string, error)
}

// NotificationGateway emits user-facing events. Best effort: implementations
// log failures and never propagate them.
type NotificationGateway interface {
	Emit(ctx context.Context, eventType string, userID uuid.UUID, payload map[string]any)
}

// Notification event types emitted by the core
const (
	EventSwapCompleted    = "swap.completed"
	EventProposalAccepted = "proposal.accepted"
	EventProposalRejected = "proposal.rejected"
	EventProposalLost     = "proposal.lost"
	EventAuctionWon       = "auction.won"
	EventSettlementFailed = "settlement.failed"
)
