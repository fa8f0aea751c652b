package repository

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bushboy/bookingswap/internal/config"
	"github.com/bushboy/bookingswap/internal/db"
	"github.com/bushboy/bookingswap/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	logger := cfg.Logger.NewLogger()

	database, err := db.Connect(context.Background(), &cfg.Database, logger)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	runMigrations(t, database)

	return database
}

func runMigrations(t *testing.T, database *db.DB) {
	t.Helper()

	migrationPath := filepath.Join("..", "..", "internal", "db", "migrations", "000001_init.up.sql")
	sqlBytes, err := os.ReadFile(migrationPath) // #nosec G304
	if err != nil {
		t.Fatalf("failed to read migration file: %v", err)
	}

	_, err = database.ExecContext(context.Background(), string(sqlBytes))
	if err != nil {
		t.Logf("migration execution completed (tables may already exist)")
	}
}

func cleanupTestDB(t *testing.T, database *db.DB) {
	t.Helper()
	if err := database.Close(); err != nil {
		log.Printf("failed to close test database: %v", err)
	}
}

func truncateTables(t *testing.T, database *db.DB) {
	t.Helper()

	tables := []string{
		"settlement_records",
		"auction_proposals",
		"auctions",
		"swap_targets",
		"targeting_events",
		"idempotency_keys",
		"listings",
	}
	for _, table := range tables {
		_, err := database.ExecContext(context.Background(), "TRUNCATE TABLE "+table+" CASCADE")
		if err != nil {
			t.Fatalf("failed to truncate table %s: %v", table, err)
		}
	}
}

func seedListing(t *testing.T, database *db.DB, ownerID uuid.UUID) *models.Listing {
	t.Helper()

	listing := &models.Listing{
		OwnerID:            ownerID,
		SourceBookingID:    uuid.New(),
		Status:             models.ListingStatusPending,
		AcceptanceStrategy: models.AcceptanceFirstMatch,
		AllowBookingSwap:   true,
		AllowCashOffer:     true,
		ExpiresAt:          time.Now().Add(24 * time.Hour),
	}
	err := NewListingRepository(database).Create(context.Background(), listing)
	require.NoError(t, err, "failed to seed listing")

	return listing
}

func seedTarget(t *testing.T, database *db.DB, sourceID, targetID, proposerID uuid.UUID) *models.Target {
	t.Helper()

	target := &models.Target{
		SourceListingID: sourceID,
		TargetListingID: targetID,
		ProposerID:      proposerID,
	}
	err := NewTargetRepository(database).Create(context.Background(), target)
	require.NoError(t, err, "failed to seed target")

	return target
}

func seedAuction(t *testing.T, database *db.DB, listingID uuid.UUID, endsAt time.Time) *models.Auction {
	t.Helper()

	auction := &models.Auction{
		ListingID:             listingID,
		AllowBookingProposals: true,
		AllowCashProposals:    true,
		EndsAt:                endsAt,
	}
	err := NewAuctionRepository(database).Create(context.Background(), auction)
	require.NoError(t, err, "failed to seed auction")

	return auction
}

func seedProposal(t *testing.T, database *db.DB, auctionID, proposerID uuid.UUID) *models.AuctionProposal {
	t.Helper()

	bookingID := uuid.New()
	proposal := &models.AuctionProposal{
		AuctionID:  auctionID,
		ProposerID: proposerID,
		Type:       models.ProposalTypeBooking,
		BookingID:  &bookingID,
	}
	err := NewAuctionRepository(database).CreateProposal(context.Background(), proposal)
	require.NoError(t, err, "failed to seed proposal")

	return proposal
}
