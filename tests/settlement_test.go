//nolint:errcheck // unchecked errors are acceptable in test files
package tests

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/bushboy/bookingswap/internal/gateway"
	"github.com/bushboy/bookingswap/internal/metrics"
	"github.com/bushboy/bookingswap/internal/models"
	"github.com/bushboy/bookingswap/internal/repository"
	"github.com/bushboy/bookingswap/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettlement_CriticalWhenRefundAlsoFails(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	bob := uuid.New()
	dave := uuid.New()
	listing, auction := ts.SeedAuctionListing(t, bob, 0)

	resp := ts.Post(t, "/api/v1/auctions/"+auction.ID.String()+"/proposals", dave, "critical-cash", map[string]any{
		"type":              "CASH",
		"amount_cents":      25000,
		"currency":          "USD",
		"payment_method_id": "pm_test_visa",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	proposalID := decodeBody(t, resp)["id"].(string)

	ts.EndAuction(t, auction.ID)
	ts.Blockchain.FailNextRecord()
	ts.Payment.FailRefunds(true)

	resp = ts.Post(t, "/api/v1/auctions/"+auction.ID.String()+"/winner", bob, "critical-select", map[string]any{
		"proposal_id": proposalID,
	})
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "critical_rollback_failure", decodeBody(t, resp)["error"])

	// the refund never went through, so the record demands reconciliation
	assert.Equal(t, 0, ts.Payment.Refunds())
	assert.Equal(t, "CRITICAL", ts.queryString(t,
		`SELECT status FROM settlement_records WHERE auction_proposal_id = $1`, proposalID))
	assert.Equal(t, "BLOCKCHAIN", ts.queryString(t,
		`SELECT failed_stage FROM settlement_records WHERE auction_proposal_id = $1`, proposalID))
	assert.Equal(t, "CRITICAL", ts.queryString(t,
		`SELECT severity FROM targeting_events WHERE listing_id = $1 AND type = 'SETTLEMENT_FAILED'`, listing.ID))

	// marketplace state is still released for a fresh attempt
	assert.Equal(t, "ENDED", ts.queryString(t, `SELECT status FROM auctions WHERE id = $1`, auction.ID))
	assert.Equal(t, "SUBMITTED", ts.queryString(t, `SELECT status FROM auction_proposals WHERE id = $1`, proposalID))
}

func TestSettlement_PayoutFailureRefundsEscrow(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	bob := uuid.New()
	dave := uuid.New()
	_, auction := ts.SeedAuctionListing(t, bob, 0)

	resp := ts.Post(t, "/api/v1/auctions/"+auction.ID.String()+"/proposals", dave, "payout-cash", map[string]any{
		"type":              "CASH",
		"amount_cents":      18000,
		"currency":          "USD",
		"payment_method_id": "pm_test_visa",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	proposalID := decodeBody(t, resp)["id"].(string)

	ts.EndAuction(t, auction.ID)
	ts.Payment.FailReleases(true)

	resp = ts.Post(t, "/api/v1/auctions/"+auction.ID.String()+"/winner", bob, "payout-select", map[string]any{
		"proposal_id": proposalID,
	})
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "settlement_failed", decodeBody(t, resp)["error"])

	// the held escrow came back to the buyer
	assert.Equal(t, 1, ts.Payment.Refunds())
	assert.Equal(t, "ROLLED_BACK", ts.queryString(t,
		`SELECT status FROM settlement_records WHERE auction_proposal_id = $1`, proposalID))
	assert.Equal(t, "PAYOUT", ts.queryString(t,
		`SELECT failed_stage FROM settlement_records WHERE auction_proposal_id = $1`, proposalID))
	assert.Equal(t, "SUBMITTED", ts.queryString(t, `SELECT status FROM auction_proposals WHERE id = $1`, proposalID))
}

// A failure inside the finalize stage happens after the blockchain record
// (and any payout) committed, so it must surface as CRITICAL rather than a
// compensated FAILED.
func TestSettlement_FinalizeFailureEscalatesToCritical(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	alice := uuid.New()
	bob := uuid.New()
	listingA := ts.SeedListing(t, alice)
	listingB := ts.SeedListing(t, bob)

	target := &models.Target{
		SourceListingID: listingA.ID,
		TargetListingID: listingB.ID,
		ProposerID:      alice,
	}
	require.NoError(t, repository.NewTargetRepository(ts.Database).Create(context.Background(), target))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	settler := service.NewSettlementService(
		ts.Database,
		gateway.NewHTTPPaymentGateway(&ts.cfg.Gateways),
		gateway.NewHTTPBlockchainGateway(&ts.cfg.Gateways),
		gateway.NewLogNotificationGateway(logger),
		metrics.Noop{},
		logger,
		time.Second,
	)

	// the listing row was never moved to ACCEPTED, so finalize cannot
	// complete it after the chain record has been written
	record, err := settler.Settle(context.Background(), service.SettlementRequest{
		Listing:  listingB,
		Target:   target,
		BuyerID:  alice,
		SellerID: bob,
	})
	require.Error(t, err)

	var svcErr *service.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, service.ErrCodeCriticalRollback, svcErr.Code)

	require.NotNil(t, record)
	assert.Equal(t, models.SettlementStatusCritical, record.Status)
	assert.Equal(t, "CRITICAL", ts.queryString(t,
		`SELECT status FROM settlement_records WHERE target_id = $1`, target.ID))
	assert.Equal(t, "FINALIZE", ts.queryString(t,
		`SELECT failed_stage FROM settlement_records WHERE target_id = $1`, target.ID))
	assert.Equal(t, "CRITICAL", ts.queryString(t,
		`SELECT severity FROM targeting_events WHERE listing_id = $1 AND type = 'SETTLEMENT_FAILED'`, listingB.ID))
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Emit(_ context.Context, eventType string, _ uuid.UUID, _ map[string]any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, eventType)
}

func (n *recordingNotifier) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

type stubSettler struct {
	record *models.SettlementRecord
	err    error
}

func (s *stubSettler) Settle(context.Context, service.SettlementRequest) (*models.SettlementRecord, error) {
	return s.record, s.err
}

func TestAcceptance_NotificationsWaitForSettlement(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	seedActiveTarget := func(t *testing.T, proposer, owner uuid.UUID) *models.Target {
		source := ts.SeedListing(t, proposer)
		dest := ts.SeedListing(t, owner)
		target := &models.Target{
			SourceListingID: source.ID,
			TargetListingID: dest.ID,
			ProposerID:      proposer,
		}
		require.NoError(t, repository.NewTargetRepository(ts.Database).Create(context.Background(), target))
		return target
	}

	t.Run("no notifications when settlement fails", func(t *testing.T) {
		alice := uuid.New()
		bob := uuid.New()
		target := seedActiveTarget(t, alice, bob)

		notifier := &recordingNotifier{}
		accepting := service.NewAcceptanceService(ts.Database,
			&stubSettler{err: errors.New("gateway down")},
			notifier, metrics.Noop{}, logger,
		)

		_, err := accepting.Accept(context.Background(), target.ID, bob)
		require.Error(t, err)
		assert.Empty(t, notifier.Events())
	})

	t.Run("notifications sent after settlement completes", func(t *testing.T) {
		alice := uuid.New()
		bob := uuid.New()
		target := seedActiveTarget(t, alice, bob)

		notifier := &recordingNotifier{}
		accepting := service.NewAcceptanceService(ts.Database,
			&stubSettler{record: &models.SettlementRecord{Status: models.SettlementStatusCompleted}},
			notifier, metrics.Noop{}, logger,
		)

		result, err := accepting.Accept(context.Background(), target.ID, bob)
		require.NoError(t, err)
		require.NotNil(t, result.Settlement)
		assert.Contains(t, notifier.Events(), gateway.EventProposalAccepted)
	})
}
