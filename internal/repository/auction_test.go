package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bushboy/bookingswap/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuctionRepository_CloseIfExpired(t *testing.T) {
	database := setupTestDB(t)
	defer cleanupTestDB(t, database)
	truncateTables(t, database)

	repo := NewAuctionRepository(database)

	t.Run("expired open auction flips exactly once", func(t *testing.T) {
		listing := seedListing(t, database, uuid.New())
		auction := seedAuction(t, database, listing.ID, time.Now().Add(-time.Minute))

		flipped, err := repo.CloseIfExpired(context.Background(), auction.ID, time.Now())
		require.NoError(t, err, "unexpected error")
		assert.True(t, flipped, "first close should flip the row")

		flipped, err = repo.CloseIfExpired(context.Background(), auction.ID, time.Now())
		require.NoError(t, err, "unexpected error")
		assert.False(t, flipped, "second close should be a no-op")

		updated, err := repo.FindByID(context.Background(), auction.ID)
		require.NoError(t, err, "failed to retrieve auction")
		assert.Equal(t, models.AuctionStatusEnded, updated.Status, "status mismatch")
	})

	t.Run("auction still inside its window is untouched", func(t *testing.T) {
		listing := seedListing(t, database, uuid.New())
		auction := seedAuction(t, database, listing.ID, time.Now().Add(time.Hour))

		flipped, err := repo.CloseIfExpired(context.Background(), auction.ID, time.Now())
		require.NoError(t, err, "unexpected error")
		assert.False(t, flipped, "open auction must not close early")

		updated, err := repo.FindByID(context.Background(), auction.ID)
		require.NoError(t, err, "failed to retrieve auction")
		assert.Equal(t, models.AuctionStatusOpen, updated.Status, "status mismatch")
	})

	t.Run("concurrent closers flip exactly once", func(t *testing.T) {
		listing := seedListing(t, database, uuid.New())
		auction := seedAuction(t, database, listing.ID, time.Now().Add(-time.Minute))

		const closers = 8
		results := make(chan bool, closers)
		errs := make(chan error, closers)
		var wg sync.WaitGroup
		for i := 0; i < closers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				flipped, err := repo.CloseIfExpired(context.Background(), auction.ID, time.Now())
				results <- flipped
				errs <- err
			}()
		}
		wg.Wait()
		close(results)
		close(errs)

		for err := range errs {
			require.NoError(t, err, "unexpected error")
		}
		flips := 0
		for flipped := range results {
			if flipped {
				flips++
			}
		}
		assert.Equal(t, 1, flips, "exactly one closer should observe the transition")

		updated, err := repo.FindByID(context.Background(), auction.ID)
		require.NoError(t, err, "failed to retrieve auction")
		assert.Equal(t, models.AuctionStatusEnded, updated.Status, "status mismatch")
	})
}

func TestAuctionRepository_CloseAllExpired(t *testing.T) {
	database := setupTestDB(t)
	defer cleanupTestDB(t, database)
	truncateTables(t, database)

	repo := NewAuctionRepository(database)

	expired1 := seedAuction(t, database, seedListing(t, database, uuid.New()).ID, time.Now().Add(-time.Hour))
	expired2 := seedAuction(t, database, seedListing(t, database, uuid.New()).ID, time.Now().Add(-time.Minute))
	open := seedAuction(t, database, seedListing(t, database, uuid.New()).ID, time.Now().Add(time.Hour))

	closed, err := repo.CloseAllExpired(context.Background(), time.Now())
	require.NoError(t, err, "unexpected error")
	assert.ElementsMatch(t, []uuid.UUID{expired1.ID, expired2.ID}, closed, "wrong auctions closed")

	still, err := repo.FindByID(context.Background(), open.ID)
	require.NoError(t, err, "failed to retrieve open auction")
	assert.Equal(t, models.AuctionStatusOpen, still.Status, "open auction must survive the sweep")

	closed, err = repo.CloseAllExpired(context.Background(), time.Now())
	require.NoError(t, err, "unexpected error")
	assert.Empty(t, closed, "second sweep should find nothing")
}

func TestAuctionRepository_MarkWinnerSelected(t *testing.T) {
	database := setupTestDB(t)
	defer cleanupTestDB(t, database)
	truncateTables(t, database)

	repo := NewAuctionRepository(database)

	listing := seedListing(t, database, uuid.New())
	auction := seedAuction(t, database, listing.ID, time.Now().Add(-time.Minute))
	proposal := seedProposal(t, database, auction.ID, uuid.New())

	t.Run("open auction cannot take a winner", func(t *testing.T) {
		err := repo.MarkWinnerSelected(context.Background(), auction.ID, proposal.ID)
		assert.ErrorIs(t, err, models.ErrProposalAlreadyResolved, "expected guard to reject open auction")
	})

	t.Run("ended auction records the winner", func(t *testing.T) {
		_, err := repo.CloseIfExpired(context.Background(), auction.ID, time.Now())
		require.NoError(t, err, "failed to close auction")

		err = repo.MarkWinnerSelected(context.Background(), auction.ID, proposal.ID)
		require.NoError(t, err, "unexpected error")

		updated, err := repo.FindByID(context.Background(), auction.ID)
		require.NoError(t, err, "failed to retrieve auction")
		assert.Equal(t, models.AuctionStatusWinnerSelected, updated.Status, "status mismatch")
		require.NotNil(t, updated.WinningProposalID, "winning proposal should be recorded")
		assert.Equal(t, proposal.ID, *updated.WinningProposalID, "winning proposal mismatch")
	})

	t.Run("winner cannot be selected twice", func(t *testing.T) {
		err := repo.MarkWinnerSelected(context.Background(), auction.ID, proposal.ID)
		assert.ErrorIs(t, err, models.ErrProposalAlreadyResolved, "expected already resolved")
	})
}

func TestAuctionRepository_Proposals(t *testing.T) {
	database := setupTestDB(t)
	defer cleanupTestDB(t, database)
	truncateTables(t, database)

	repo := NewAuctionRepository(database)

	listing := seedListing(t, database, uuid.New())
	auction := seedAuction(t, database, listing.ID, time.Now().Add(time.Hour))

	t.Run("create cash proposal", func(t *testing.T) {
		amount := int64(7500)
		currency := "EUR"
		method := "pm_test_visa"
		proposal := &models.AuctionProposal{
			AuctionID:       auction.ID,
			ProposerID:      uuid.New(),
			Type:            models.ProposalTypeCash,
			AmountCents:     &amount,
			Currency:        &currency,
			PaymentMethodID: &method,
		}

		err := repo.CreateProposal(context.Background(), proposal)
		require.NoError(t, err, "unexpected error")

		assert.Equal(t, models.ProposalStatusSubmitted, proposal.Status, "status should default to submitted")

		retrieved, err := repo.FindProposalByID(context.Background(), proposal.ID)
		require.NoError(t, err, "failed to retrieve proposal")
		require.NotNil(t, retrieved.AmountCents, "amount should round-trip")
		assert.Equal(t, amount, *retrieved.AmountCents, "amount mismatch")
		require.NotNil(t, retrieved.Currency, "currency should round-trip")
		assert.Equal(t, currency, *retrieved.Currency, "currency mismatch")
	})

	t.Run("list proposals for an auction", func(t *testing.T) {
		seedProposal(t, database, auction.ID, uuid.New())
		seedProposal(t, database, auction.ID, uuid.New())

		proposals, err := repo.ListProposals(context.Background(), auction.ID)
		require.NoError(t, err, "unexpected error")
		assert.Len(t, proposals, 3, "all proposals should be listed")
	})

	t.Run("non-existent proposal", func(t *testing.T) {
		_, err := repo.FindProposalByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, models.ErrNotFound, "expected not found")
	})
}

func TestAuctionRepository_MarkProposalWon(t *testing.T) {
	database := setupTestDB(t)
	defer cleanupTestDB(t, database)
	truncateTables(t, database)

	repo := NewAuctionRepository(database)

	listing := seedListing(t, database, uuid.New())
	auction := seedAuction(t, database, listing.ID, time.Now().Add(-time.Minute))
	winner := seedProposal(t, database, auction.ID, uuid.New())
	rival1 := seedProposal(t, database, auction.ID, uuid.New())
	rival2 := seedProposal(t, database, auction.ID, uuid.New())

	err := repo.MarkProposalWon(context.Background(), winner.ID)
	require.NoError(t, err, "unexpected error")

	err = repo.MarkProposalWon(context.Background(), winner.ID)
	assert.ErrorIs(t, err, models.ErrProposalAlreadyResolved, "won proposal cannot win twice")

	lost, err := repo.MarkSiblingsLost(context.Background(), auction.ID, winner.ID)
	require.NoError(t, err, "unexpected error")
	assert.ElementsMatch(t, []uuid.UUID{rival1.ID, rival2.ID}, lost, "wrong siblings lost")

	updated, err := repo.FindProposalByID(context.Background(), rival1.ID)
	require.NoError(t, err, "failed to retrieve sibling")
	assert.Equal(t, models.ProposalStatusLost, updated.Status, "sibling should be lost")
}

func TestAuctionRepository_RevertWinner(t *testing.T) {
	database := setupTestDB(t)
	defer cleanupTestDB(t, database)
	truncateTables(t, database)

	repo := NewAuctionRepository(database)

	listing := seedListing(t, database, uuid.New())
	auction := seedAuction(t, database, listing.ID, time.Now().Add(-time.Minute))
	winner := seedProposal(t, database, auction.ID, uuid.New())
	rival := seedProposal(t, database, auction.ID, uuid.New())

	_, err := repo.CloseIfExpired(context.Background(), auction.ID, time.Now())
	require.NoError(t, err, "failed to close auction")
	require.NoError(t, repo.MarkProposalWon(context.Background(), winner.ID))
	_, err = repo.MarkSiblingsLost(context.Background(), auction.ID, winner.ID)
	require.NoError(t, err, "failed to mark siblings lost")
	require.NoError(t, repo.MarkWinnerSelected(context.Background(), auction.ID, winner.ID))

	err = repo.RevertWinner(context.Background(), auction.ID, winner.ID)
	require.NoError(t, err, "unexpected error")

	revertedAuction, err := repo.FindByID(context.Background(), auction.ID)
	require.NoError(t, err, "failed to retrieve auction")
	assert.Equal(t, models.AuctionStatusEnded, revertedAuction.Status, "auction should be back to ended")
	assert.Nil(t, revertedAuction.WinningProposalID, "winning proposal should be cleared")

	for _, id := range []uuid.UUID{winner.ID, rival.ID} {
		p, err := repo.FindProposalByID(context.Background(), id)
		require.NoError(t, err, "failed to retrieve proposal")
		assert.Equal(t, models.ProposalStatusSubmitted, p.Status, "proposal should be back to submitted")
	}
}
