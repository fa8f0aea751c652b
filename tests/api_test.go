//nolint:errcheck // unchecked errors are acceptable in test files
package tests

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwapFlow_ProposeAndAccept(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	alice := uuid.New()
	bob := uuid.New()
	listingA := ts.SeedListing(t, alice)
	listingB := ts.SeedListing(t, bob)

	resp := ts.Post(t, "/api/v1/targets", alice, "swap-propose-1", map[string]any{
		"source_listing_id": listingA.ID.String(),
		"target_listing_id": listingB.ID.String(),
		"message":           "happy to trade dates",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	target := decodeBody(t, resp)
	assert.Equal(t, "ACTIVE", target["status"])
	targetID := target["id"].(string)

	resp = ts.Post(t, "/api/v1/targets/"+targetID+"/accept", bob, "swap-accept-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)

	acceptedTarget := body["target"].(map[string]any)
	assert.Equal(t, "ACCEPTED", acceptedTarget["status"])

	settlement := body["settlement"].(map[string]any)
	assert.Equal(t, "COMPLETED", settlement["status"])
	assert.NotEmpty(t, settlement["blockchain_transaction_id"])
	// booking-for-booking swaps have no cash leg
	assert.Nil(t, settlement["payment_transaction_id"])

	listingStatus := ts.queryString(t, `SELECT status FROM listings WHERE id = $1`, listingB.ID)
	assert.Equal(t, "COMPLETED", listingStatus)
}

func TestSwapFlow_Reject(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	alice := uuid.New()
	bob := uuid.New()
	listingA := ts.SeedListing(t, alice)
	listingB := ts.SeedListing(t, bob)

	resp := ts.Post(t, "/api/v1/targets", alice, "reject-propose-1", map[string]any{
		"source_listing_id": listingA.ID.String(),
		"target_listing_id": listingB.ID.String(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	targetID := decodeBody(t, resp)["id"].(string)

	resp = ts.Post(t, "/api/v1/targets/"+targetID+"/reject", bob, "reject-1", map[string]any{
		"reason": "dates no longer work",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "REJECTED", body["status"])

	// rejecting again should conflict
	resp = ts.Post(t, "/api/v1/targets/"+targetID+"/reject", bob, "reject-2", nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "proposal_already_resolved", decodeBody(t, resp)["error"])
}

func TestSwapFlow_AcceptResolvesCompetitors(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	alice := uuid.New()
	carol := uuid.New()
	bob := uuid.New()
	listingA := ts.SeedListing(t, alice)
	listingC := ts.SeedListing(t, carol)
	listingB := ts.SeedListing(t, bob)

	resp := ts.Post(t, "/api/v1/targets", alice, "compete-1", map[string]any{
		"source_listing_id": listingA.ID.String(),
		"target_listing_id": listingB.ID.String(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	aliceTargetID := decodeBody(t, resp)["id"].(string)

	resp = ts.Post(t, "/api/v1/targets", carol, "compete-2", map[string]any{
		"source_listing_id": listingC.ID.String(),
		"target_listing_id": listingB.ID.String(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	carolTargetID := decodeBody(t, resp)["id"].(string)

	resp = ts.Post(t, "/api/v1/targets/"+aliceTargetID+"/accept", bob, "compete-accept-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	carolStatus := ts.queryString(t, `SELECT status FROM swap_targets WHERE id = $1`, carolTargetID)
	assert.Equal(t, "REJECTED", carolStatus)

	resp = ts.Post(t, "/api/v1/targets/"+carolTargetID+"/accept", bob, "compete-accept-2", nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "proposal_already_resolved", decodeBody(t, resp)["error"])
}

func TestSwapFlow_Retarget(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	alice := uuid.New()
	listingA := ts.SeedListing(t, alice)
	listingB := ts.SeedListing(t, uuid.New())
	listingC := ts.SeedListing(t, uuid.New())

	resp := ts.Post(t, "/api/v1/targets", alice, "retarget-propose", map[string]any{
		"source_listing_id": listingA.ID.String(),
		"target_listing_id": listingB.ID.String(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	firstTargetID := decodeBody(t, resp)["id"].(string)

	resp = ts.Post(t, "/api/v1/listings/"+listingA.ID.String()+"/retarget", alice, "retarget-1", map[string]any{
		"new_target_listing_id": listingC.ID.String(),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "ACTIVE", body["status"])
	assert.Equal(t, listingC.ID.String(), body["target_listing_id"])

	firstStatus := ts.queryString(t, `SELECT status FROM swap_targets WHERE id = $1`, firstTargetID)
	assert.Equal(t, "SUPERSEDED", firstStatus)
}

func TestSwapFlow_BlockchainFailureCompensates(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	alice := uuid.New()
	bob := uuid.New()
	listingA := ts.SeedListing(t, alice)
	listingB := ts.SeedListing(t, bob)

	resp := ts.Post(t, "/api/v1/targets", alice, "chainfail-propose", map[string]any{
		"source_listing_id": listingA.ID.String(),
		"target_listing_id": listingB.ID.String(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	targetID := decodeBody(t, resp)["id"].(string)

	ts.Blockchain.FailNextRecord()

	resp = ts.Post(t, "/api/v1/targets/"+targetID+"/accept", bob, "chainfail-accept", nil)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "settlement_failed", decodeBody(t, resp)["error"])

	// acceptance is rolled back: target active again, listing available
	assert.Equal(t, "ACTIVE", ts.queryString(t, `SELECT status FROM swap_targets WHERE id = $1`, targetID))
	assert.Equal(t, "PENDING", ts.queryString(t, `SELECT status FROM listings WHERE id = $1`, listingB.ID))

	assert.Equal(t, "FAILED", ts.queryString(t,
		`SELECT status FROM settlement_records WHERE target_id = $1`, targetID))
	assert.Equal(t, "BLOCKCHAIN", ts.queryString(t,
		`SELECT failed_stage FROM settlement_records WHERE target_id = $1`, targetID))

	// no cash leg, so nothing to refund
	assert.Equal(t, 0, ts.Payment.Refunds())

	// a fresh accept succeeds once the chain recovers
	resp = ts.Post(t, "/api/v1/targets/"+targetID+"/accept", bob, "chainfail-accept-retry", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAuctionFlow_CashWinnerSettles(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	bob := uuid.New()
	dave := uuid.New()
	listing, auction := ts.SeedAuctionListing(t, bob, 10000)

	resp := ts.Post(t, "/api/v1/auctions/"+auction.ID.String()+"/proposals", dave, "auction-cash-1", map[string]any{
		"type":              "CASH",
		"amount_cents":      15000,
		"currency":          "USD",
		"payment_method_id": "pm_test_visa",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	proposal := decodeBody(t, resp)
	assert.Equal(t, "SUBMITTED", proposal["status"])
	proposalID := proposal["id"].(string)

	// selecting before the window closes is rejected
	resp = ts.Post(t, "/api/v1/auctions/"+auction.ID.String()+"/winner", bob, "auction-early", map[string]any{
		"proposal_id": proposalID,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "auction_not_ended", decodeBody(t, resp)["error"])

	ts.EndAuction(t, auction.ID)

	resp = ts.Post(t, "/api/v1/auctions/"+auction.ID.String()+"/winner", bob, "auction-select-1", map[string]any{
		"proposal_id": proposalID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "WINNER_SELECTED", body["status"])

	winner := body["winner"].(map[string]any)
	assert.Equal(t, "WON", winner["status"])

	settlement := body["settlement"].(map[string]any)
	assert.Equal(t, "COMPLETED", settlement["status"])
	assert.NotEmpty(t, settlement["payment_transaction_id"])
	assert.NotEmpty(t, settlement["blockchain_transaction_id"])

	assert.Equal(t, "COMPLETED", ts.queryString(t, `SELECT status FROM listings WHERE id = $1`, listing.ID))
}

func TestAuctionFlow_ClosedWindowRejectsProposals(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	bob := uuid.New()
	_, auction := ts.SeedAuctionListing(t, bob, 0)
	ts.EndAuction(t, auction.ID)

	resp := ts.Post(t, "/api/v1/auctions/"+auction.ID.String()+"/proposals", uuid.New(), "auction-late-1", map[string]any{
		"type":       "BOOKING",
		"booking_id": uuid.New().String(),
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "auction_not_open", decodeBody(t, resp)["error"])

	// the late access closed the auction lazily
	assert.Equal(t, "ENDED", ts.queryString(t, `SELECT status FROM auctions WHERE id = $1`, auction.ID))
}

func TestAuctionFlow_PaymentDeclinedRevertsWinner(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	bob := uuid.New()
	dave := uuid.New()
	listing, auction := ts.SeedAuctionListing(t, bob, 0)

	resp := ts.Post(t, "/api/v1/auctions/"+auction.ID.String()+"/proposals", dave, "declined-cash", map[string]any{
		"type":              "CASH",
		"amount_cents":      20000,
		"currency":          "USD",
		"payment_method_id": "pm_test_declined",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	proposalID := decodeBody(t, resp)["id"].(string)

	ts.EndAuction(t, auction.ID)
	ts.Payment.DeclineNextEscrow()

	resp = ts.Post(t, "/api/v1/auctions/"+auction.ID.String()+"/winner", bob, "declined-select", map[string]any{
		"proposal_id": proposalID,
	})
	require.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	assert.Equal(t, "payment_declined", decodeBody(t, resp)["error"])

	// selection is unwound so the seller can pick again
	assert.Equal(t, "ENDED", ts.queryString(t, `SELECT status FROM auctions WHERE id = $1`, auction.ID))
	assert.Equal(t, "SUBMITTED", ts.queryString(t, `SELECT status FROM auction_proposals WHERE id = $1`, proposalID))
	assert.Equal(t, "PENDING", ts.queryString(t, `SELECT status FROM listings WHERE id = $1`, listing.ID))
}

func TestAuctionFlow_RefundAfterChainFailure(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	bob := uuid.New()
	dave := uuid.New()
	_, auction := ts.SeedAuctionListing(t, bob, 0)

	resp := ts.Post(t, "/api/v1/auctions/"+auction.ID.String()+"/proposals", dave, "refund-cash", map[string]any{
		"type":              "CASH",
		"amount_cents":      30000,
		"currency":          "EUR",
		"payment_method_id": "pm_test_visa",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	proposalID := decodeBody(t, resp)["id"].(string)

	ts.EndAuction(t, auction.ID)
	ts.Blockchain.FailNextRecord()

	resp = ts.Post(t, "/api/v1/auctions/"+auction.ID.String()+"/winner", bob, "refund-select", map[string]any{
		"proposal_id": proposalID,
	})
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	resp.Body.Close()

	// the held escrow was refunded and the record shows the rollback
	assert.Equal(t, 1, ts.Payment.Refunds())

	assert.Equal(t, "ROLLED_BACK", ts.queryString(t,
		`SELECT status FROM settlement_records WHERE auction_proposal_id = $1`, proposalID))
}

func TestIdempotency_ReplayReturnsCachedResponse(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	alice := uuid.New()
	listingA := ts.SeedListing(t, alice)
	listingB := ts.SeedListing(t, uuid.New())

	body := map[string]any{
		"source_listing_id": listingA.ID.String(),
		"target_listing_id": listingB.ID.String(),
	}

	resp := ts.Post(t, "/api/v1/targets", alice, "replay-key-1", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	first := decodeBody(t, resp)

	resp = ts.Post(t, "/api/v1/targets", alice, "replay-key-1", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get("X-Idempotent-Replayed"))
	second := decodeBody(t, resp)
	assert.Equal(t, first["id"], second["id"])

	assert.Equal(t, 1, ts.queryInt(t, `SELECT COUNT(*) FROM swap_targets`))
}

func TestHistory_ReturnsAuditTrail(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	alice := uuid.New()
	bob := uuid.New()
	listingA := ts.SeedListing(t, alice)
	listingB := ts.SeedListing(t, bob)

	resp := ts.Post(t, "/api/v1/targets", alice, "history-propose", map[string]any{
		"source_listing_id": listingA.ID.String(),
		"target_listing_id": listingB.ID.String(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	targetID := decodeBody(t, resp)["id"].(string)

	resp = ts.Post(t, "/api/v1/targets/"+targetID+"/accept", bob, "history-accept", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = ts.Get(t, fmt.Sprintf("/api/v1/history?listing_id=%s&limit=50", listingB.ID), bob)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)

	events := body["events"].([]any)
	require.NotEmpty(t, events)

	types := make([]string, 0, len(events))
	for _, e := range events {
		types = append(types, e.(map[string]any)["type"].(string))
	}
	assert.Contains(t, types, "TARGET_CREATED")
	assert.Contains(t, types, "TARGET_ACCEPTED")
	assert.Contains(t, types, "SETTLEMENT_COMPLETED")
}

func TestAuth_MissingTokenRejected(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL("/api/v1/history"), nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL("/health"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "healthy", body["status"])

	resp, err = http.Get(ts.URL("/metrics"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSwapFlow_ConcurrentAcceptsResolveExactlyOne(t *testing.T) {
	ts := SetupTest(t)
	defer ts.Close()

	bob := uuid.New()
	listingB := ts.SeedListing(t, bob)

	targetIDs := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		proposer := uuid.New()
		source := ts.SeedListing(t, proposer)
		resp := ts.Post(t, "/api/v1/targets", proposer, fmt.Sprintf("conc-propose-%d", i), map[string]any{
			"source_listing_id": source.ID.String(),
			"target_listing_id": listingB.ID.String(),
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		targetIDs = append(targetIDs, decodeBody(t, resp)["id"].(string))
	}

	const acceptsPerTarget = 3
	total := acceptsPerTarget * len(targetIDs)
	statuses := make(chan int, total)
	token := ts.Token(bob)

	var wg sync.WaitGroup
	for _, id := range targetIDs {
		for i := 0; i < acceptsPerTarget; i++ {
			wg.Add(1)
			go func(targetID string, attempt int) {
				defer wg.Done()
				req, err := http.NewRequest(http.MethodPost,
					ts.URL("/api/v1/targets/"+targetID+"/accept"), nil)
				if err != nil {
					statuses <- 0
					return
				}
				req.Header.Set("Authorization", "Bearer "+token)
				req.Header.Set("Idempotency-Key", fmt.Sprintf("conc-accept-%s-%d", targetID, attempt))
				resp, err := http.DefaultClient.Do(req)
				if err != nil {
					statuses <- 0
					return
				}
				resp.Body.Close()
				statuses <- resp.StatusCode
			}(id, i)
		}
	}
	wg.Wait()
	close(statuses)

	accepted, conflicts := 0, 0
	for code := range statuses {
		switch code {
		case http.StatusOK:
			accepted++
		case http.StatusConflict:
			conflicts++
		default:
			t.Errorf("unexpected status %d from concurrent accept", code)
		}
	}
	assert.Equal(t, 1, accepted, "exactly one accept should win")
	assert.Equal(t, total-1, conflicts, "every other accept should conflict")

	assert.Equal(t, 1, ts.queryInt(t, `SELECT COUNT(*) FROM swap_targets WHERE status = 'ACCEPTED'`))
	assert.Equal(t, "COMPLETED", ts.queryString(t, `SELECT status FROM listings WHERE id = $1`, listingB.ID))
}
