package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bushboy/bookingswap/internal/config"
)

// HTTPBlockchainGateway is a JSON-over-HTTP client for the ledger recording
// service that fronts the chain
type HTTPBlockchainGateway struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
}

// NewHTTPBlockchainGateway creates a blockchain gateway client from configuration
func NewHTTPBlockchainGateway(cfg *config.GatewayConfig) *HTTPBlockchainGateway {
	return &HTTPBlockchainGateway{
		client:  &http.Client{Timeout: cfg.BlockchainTimeout},
		baseURL: cfg.BlockchainBaseURL,
		timeout: cfg.BlockchainTimeout,
	}
}

type recordSettlementBody struct {
	ListingID         string  `json:"listing_id"`
	TargetID          *string `json:"target_id,omitempty"`
	AuctionProposalID *string `json:"auction_proposal_id,omitempty"`
	BuyerID           string  `json:"buyer_id"`
	SellerID          string  `json:"seller_id"`
	AmountCents       int64   `json:"amount_cents"`
	Currency          string  `json:"currency"`
}

type recordSettlementResponse struct {
	TransactionID string `json:"transaction_id"`
}

// RecordSettlement writes the swap event to the chain and returns the
// transaction id
func (g *HTTPBlockchainGateway) RecordSettlement(ctx context.Context, details SettlementDetails) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	body := recordSettlementBody{
		ListingID:   details.ListingID.String(),
		BuyerID:     details.BuyerID.String(),
		SellerID:    details.SellerID.String(),
		AmountCents: details.AmountCents,
		Currency:    details.Currency,
	}
	if details.TargetID != nil {
		s := details.TargetID.String()
		body.TargetID = &s
	}
	if details.AuctionProposalID != nil {
		s := details.AuctionProposalID.String()
		body.AuctionProposalID = &s
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode settlement record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/settlements", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build settlement request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	switch {
	case resp.StatusCode == http.StatusPaymentRequired:
		return "", ErrInsufficientBalance
	case resp.StatusCode >= 400:
		return "", fmt.Errorf("%w: status %d", ErrNetworkError, resp.StatusCode)
	}

	var result recordSettlementResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode settlement response: %w", err)
	}
	if result.TransactionID == "" {
		return "", fmt.Errorf("%w: empty transaction id", ErrNetworkError)
	}

	return result.TransactionID, nil
}
