package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bushboy/bookingswap/internal/config"
	"github.com/google/uuid"
)

// HTTPPaymentGateway is a JSON-over-HTTP client for the escrow service
type HTTPPaymentGateway struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
}

// NewHTTPPaymentGateway creates a payment gateway client from configuration
func NewHTTPPaymentGateway(cfg *config.GatewayConfig) *HTTPPaymentGateway {
	return &HTTPPaymentGateway{
		client:  &http.Client{Timeout: cfg.PaymentTimeout},
		baseURL: cfg.PaymentBaseURL,
		timeout: cfg.PaymentTimeout,
	}
}

type escrowRequestBody struct {
	AmountCents     int64  `json:"amount_cents"`
	Currency        string `json:"currency"`
	PayerID         string `json:"payer_id"`
	RecipientID     string `json:"recipient_id"`
	PaymentMethodID string `json:"payment_method_id"`
	ListingRef      string `json:"listing_ref"`
}

type escrowResponseBody struct {
	EscrowID string `json:"escrow_id"`
	Status   string `json:"status"`
}

type paymentTransactionBody struct {
	TransactionID string    `json:"transaction_id"`
	EscrowID      string    `json:"escrow_id"`
	AmountCents   int64     `json:"amount_cents"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateEscrow captures funds into gateway-held escrow
func (g *HTTPPaymentGateway) CreateEscrow(ctx context.Context, req EscrowRequest) (*EscrowResult, error) {
	body := escrowRequestBody{
		AmountCents:     req.AmountCents,
		Currency:        req.Currency,
		PayerID:         req.PayerID.String(),
		RecipientID:     req.RecipientID.String(),
		PaymentMethodID: req.PaymentMethodID,
		ListingRef:      req.ListingRef,
	}

	var result escrowResponseBody
	if err := g.post(ctx, "/v1/escrows", body, &result); err != nil {
		return nil, err
	}

	return &EscrowResult{EscrowID: result.EscrowID, Status: result.Status}, nil
}

// ReleaseEscrow pays escrowed funds out to the recipient
func (g *HTTPPaymentGateway) ReleaseEscrow(ctx context.Context, escrowID string, recipientID uuid.UUID) (*PaymentTransaction, error) {
	body := map[string]string{"recipient_id": recipientID.String()}

	var result paymentTransactionBody
	if err := g.post(ctx, "/v1/escrows/"+escrowID+"/release", body, &result); err != nil {
		return nil, err
	}

	return &PaymentTransaction{
		TransactionID: result.TransactionID,
		EscrowID:      result.EscrowID,
		AmountCents:   result.AmountCents,
		CreatedAt:     result.CreatedAt,
	}, nil
}

// RefundEscrow returns escrowed funds to the payer
func (g *HTTPPaymentGateway) RefundEscrow(ctx context.Context, escrowID string) (*PaymentTransaction, error) {
	var result paymentTransactionBody
	if err := g.post(ctx, "/v1/escrows/"+escrowID+"/refund", struct{}{}, &result); err != nil {
		return nil, err
	}

	return &PaymentTransaction{
		TransactionID: result.TransactionID,
		EscrowID:      result.EscrowID,
		AmountCents:   result.AmountCents,
		CreatedAt:     result.CreatedAt,
	}, nil
}

func (g *HTTPPaymentGateway) post(ctx context.Context, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode payment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build payment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	switch {
	case resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusUnprocessableEntity:
		return ErrPaymentDeclined
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", ErrGatewayUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("payment gateway rejected request: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode payment response: %w", err)
	}

	return nil
}
