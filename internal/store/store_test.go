package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/config"
	model "auction-engine/internal/models"
	"auction-engine/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// newTestStore opens a fresh in-memory database per test.
func newTestStore(t *testing.T) (*GormStore, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", utils.GenerateID())
	db, err := Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)

	return NewGormStore(db, 5), db
}

// Helper to create a listing open for bidding
func newListing(listingID, currentPrice string, endDate time.Time, active bool) model.Listing {
	return model.Listing{
		ListingID:     listingID,
		Title:         fmt.Sprintf("%s title", listingID),
		CategoryCode:  "ART",
		StartingPrice: dec("10.00"),
		CurrentPrice:  dec(currentPrice),
		StartDate:     time.Now().UTC().Add(-time.Hour),
		EndDate:       endDate,
		IsActive:      active,
		CreatedAt:     time.Now().UTC(),
	}
}

func strptr(s string) *string { return &s }

// Test CommitBid
func TestGormStore_CommitBid(t *testing.T) {
	ctx := context.Background()
	open := time.Now().UTC().Add(time.Hour)
	closed := time.Now().UTC().Add(-time.Hour)

	tests := []struct {
		name        string
		listing     model.Listing
		priorBids   []string // committed in order before the candidate
		listingID   string
		amount      string
		expectError error
	}{
		{
			name:      "first_bid_succeeds",
			listing:   newListing("listing1", "10.00", open, true),
			listingID: "listing1",
			amount:    "11.00",
		},
		{
			name:      "outbid_succeeds",
			listing:   newListing("listing1", "10.00", open, true),
			priorBids: []string{"15.00"},
			listingID: "listing1",
			amount:    "20.00",
		},
		{
			name:        "unknown_listing",
			listing:     newListing("listing1", "10.00", open, true),
			listingID:   "listingX",
			amount:      "11.00",
			expectError: auctionerrors.ErrListingNotFound,
		},
		{
			name:        "equal_to_current_rejected",
			listing:     newListing("listing1", "10.00", open, true),
			priorBids:   []string{"15.00"},
			listingID:   "listing1",
			amount:      "15.00",
			expectError: auctionerrors.ErrBelowCurrentPrice,
		},
		{
			name:        "below_increment_rejected",
			listing:     newListing("listing1", "10.00", open, true),
			priorBids:   []string{"15.00"},
			listingID:   "listing1",
			amount:      "15.50",
			expectError: auctionerrors.ErrBelowMinimumIncrement,
		},
		{
			name:        "jump_cap_rejected",
			listing:     newListing("listing1", "10.00", open, true),
			priorBids:   []string{"20.00"},
			listingID:   "listing1",
			amount:      "41.00",
			expectError: auctionerrors.ErrExceedsMaximumJump,
		},
		{
			name:        "closed_listing_rejected",
			listing:     newListing("listing1", "10.00", closed, true),
			listingID:   "listing1",
			amount:      "11.00",
			expectError: auctionerrors.ErrListingClosed,
		},
		{
			name:        "inactive_listing_rejected",
			listing:     newListing("listing1", "10.00", open, false),
			listingID:   "listing1",
			amount:      "11.00",
			expectError: auctionerrors.ErrListingInactive,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			require.NoError(t, s.CreateListing(ctx, tc.listing))

			for i, amount := range tc.priorBids {
				_, _, err := s.CommitBid(ctx, tc.listing.ListingID, strptr(fmt.Sprintf("bidder%d", i)), dec(amount))
				require.NoError(t, err)
			}

			before, err := s.GetListing(ctx, tc.listing.ListingID)
			require.NoError(t, err)

			bid, displaced, err := s.CommitBid(ctx, tc.listingID, strptr("candidate"), dec(tc.amount))

			if tc.expectError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectError)

				// a rejected commit must leave no trace
				listing, getErr := s.GetListing(ctx, tc.listing.ListingID)
				require.NoError(t, getErr)
				require.True(t, listing.CurrentPrice.Equal(before.CurrentPrice),
					"rejected commit moved the price from %s to %s", before.CurrentPrice, listing.CurrentPrice)
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, bid.BidID)
			require.True(t, bid.Amount.Equal(dec(tc.amount)))

			if len(tc.priorBids) == 0 {
				require.Nil(t, displaced)
			} else {
				require.NotNil(t, displaced)
				require.True(t, displaced.Amount.Equal(dec(tc.priorBids[len(tc.priorBids)-1])),
					"displaced bid should be the highest prior bid")
			}

			listing, err := s.GetListing(ctx, tc.listingID)
			require.NoError(t, err)
			require.True(t, listing.CurrentPrice.Equal(dec(tc.amount)),
				"current_price should equal the committed amount")

			highest, err := s.GetHighestBid(ctx, tc.listingID)
			require.NoError(t, err)
			require.Equal(t, bid.BidID, highest.BidID)
		})
	}
}

// Accepted bid amounts must form a strictly increasing sequence and the
// final price must be the maximum accepted amount.
func TestGormStore_CommitBid_Monotonic(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	require.NoError(t, s.CreateListing(ctx, newListing("listing1", "10.00", time.Now().UTC().Add(time.Hour), true)))

	for _, amount := range []string{"11.00", "12.00", "14.00"} {
		_, _, err := s.CommitBid(ctx, "listing1", strptr("bidderA"), dec(amount))
		require.NoError(t, err)
	}

	// lower than current price, must lose to the re-validation
	_, _, err := s.CommitBid(ctx, "listing1", strptr("bidderB"), dec("13.00"))
	require.ErrorIs(t, err, auctionerrors.ErrBelowCurrentPrice)

	listing, err := s.GetListing(ctx, "listing1")
	require.NoError(t, err)
	require.True(t, listing.CurrentPrice.Equal(dec("14.00")))

	bids, err := s.ListBids(ctx, "listing1")
	require.NoError(t, err)
	require.Len(t, bids, 3)
	for i := 1; i < len(bids); i++ {
		require.True(t, bids[i].Amount.LessThan(bids[i-1].Amount),
			"ListBids must return strictly descending amounts")
	}
}

// Concurrent bidders starting from the same baseline: invariants must hold
// regardless of interleaving. Every accepted amount raises the price; the
// final price is the maximum accepted amount.
func TestGormStore_CommitBid_Concurrent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	require.NoError(t, s.CreateListing(ctx, newListing("listing1", "10.00", time.Now().UTC().Add(time.Hour), true)))

	amounts := []string{"11.00", "12.00", "13.00", "14.00", "15.00", "16.00", "17.00", "18.00"}

	var wg sync.WaitGroup
	errs := make([]error, len(amounts))
	for i, amount := range amounts {
		wg.Add(1)
		go func(i int, amount string) {
			defer wg.Done()
			_, _, errs[i] = s.CommitBid(ctx, "listing1", strptr(fmt.Sprintf("bidder%d", i)), dec(amount))
		}(i, amount)
	}
	wg.Wait()

	accepted := decimal.Zero
	acceptedCount := 0
	for i, err := range errs {
		if err == nil {
			acceptedCount++
			if dec(amounts[i]).GreaterThan(accepted) {
				accepted = dec(amounts[i])
			}
			continue
		}
		// only the documented outcomes are permitted
		require.True(t,
			isExpectedConcurrentError(err),
			"unexpected error for amount %s: %v", amounts[i], err)
	}
	require.GreaterOrEqual(t, acceptedCount, 1, "at least one bid must commit")

	listing, err := s.GetListing(ctx, "listing1")
	require.NoError(t, err)
	require.True(t, listing.CurrentPrice.Equal(accepted),
		"final price %s should equal max accepted amount %s", listing.CurrentPrice, accepted)

	bids, err := s.ListBids(ctx, "listing1")
	require.NoError(t, err)
	require.Len(t, bids, acceptedCount)
	for i := 1; i < len(bids); i++ {
		require.True(t, bids[i].Amount.LessThan(bids[i-1].Amount),
			"accepted amounts must be strictly increasing, no duplicates")
	}
}

func isExpectedConcurrentError(err error) bool {
	for _, sentinel := range []error{
		auctionerrors.ErrBelowCurrentPrice,
		auctionerrors.ErrBelowMinimumIncrement,
		auctionerrors.ErrExceedsMaximumJump,
		auctionerrors.ErrConflict,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// Test bid attempt accounting
func TestGormStore_BidAttempts(t *testing.T) {
	ctx := context.Background()
	s, db := newTestStore(t)

	since := time.Now().UTC().Add(-time.Minute)

	// three attempts by the same authenticated actor
	var last model.BidAttempt
	for i := 0; i < 3; i++ {
		attempt, err := s.RecordBidAttempt(ctx, strptr("bidder1"), "10.0.0.1")
		require.NoError(t, err)
		require.False(t, attempt.Success)
		last = attempt
	}

	count, err := s.CountBidAttempts(ctx, strptr("bidder1"), "10.0.0.1", since)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)

	// success flip must not change the count: all attempts count for bids
	require.NoError(t, s.MarkBidAttemptSuccess(ctx, last.AttemptID))
	count, err = s.CountBidAttempts(ctx, strptr("bidder1"), "10.0.0.1", since)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)

	var flipped model.BidAttempt
	require.NoError(t, db.First(&flipped, "attempt_id = ?", last.AttemptID).Error)
	require.True(t, flipped.Success)

	// a different actor on the same address is a separate key when authenticated
	count, err = s.CountBidAttempts(ctx, strptr("bidder2"), "10.0.0.1", since)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)

	// attempts before the window cutoff do not count
	stale := model.BidAttempt{
		AttemptID: utils.GenerateID(),
		BidderID:  strptr("bidder1"),
		IPAddress: "10.0.0.1",
		CreatedAt: time.Now().UTC().Add(-10 * time.Minute),
	}
	require.NoError(t, db.Create(&stale).Error)

	count, err = s.CountBidAttempts(ctx, strptr("bidder1"), "10.0.0.1", since)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)
}

// Test failed login counting
func TestGormStore_CountFailedLogins(t *testing.T) {
	ctx := context.Background()
	s, db := newTestStore(t)

	now := time.Now().UTC()
	rows := []model.LoginAttempt{
		{AttemptID: utils.GenerateID(), Email: "a@example.com", IPAddress: "10.0.0.1", Success: false, CreatedAt: now},
		{AttemptID: utils.GenerateID(), Email: "a@example.com", IPAddress: "10.0.0.1", Success: false, CreatedAt: now},
		{AttemptID: utils.GenerateID(), Email: "a@example.com", IPAddress: "10.0.0.1", Success: true, CreatedAt: now},
		{AttemptID: utils.GenerateID(), Email: "a@example.com", IPAddress: "10.0.0.1", Success: false, CreatedAt: now.Add(-time.Hour)},
		{AttemptID: utils.GenerateID(), Email: "b@example.com", IPAddress: "10.0.0.1", Success: false, CreatedAt: now},
	}
	for _, row := range rows {
		require.NoError(t, db.Create(&row).Error)
	}

	// only recent failures for the exact email/address pair count
	count, err := s.CountFailedLogins(ctx, "a@example.com", "10.0.0.1", now.Add(-15*time.Minute))
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

// Test winner assignment
func TestGormStore_AssignWinner(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	ended := now.Add(-time.Hour)

	t.Run("assigns_highest_bidder", func(t *testing.T) {
		s, _ := newTestStore(t)
		listing := newListing("listing1", "10.00", now.Add(time.Hour), true)
		require.NoError(t, s.CreateListing(ctx, listing))

		_, _, err := s.CommitBid(ctx, "listing1", strptr("bidderA"), dec("15.00"))
		require.NoError(t, err)
		_, _, err = s.CommitBid(ctx, "listing1", strptr("bidderB"), dec("20.00"))
		require.NoError(t, err)

		assignment, err := s.AssignWinner(ctx, "listing1", now.Add(2*time.Hour))
		require.NoError(t, err)
		require.NotNil(t, assignment.WinningBid)
		require.Equal(t, "bidderB", *assignment.WinningBid.BidderID)
		require.False(t, assignment.Listing.IsActive)

		persisted, err := s.GetListing(ctx, "listing1")
		require.NoError(t, err)
		require.NotNil(t, persisted.WinnerID)
		require.Equal(t, "bidderB", *persisted.WinnerID)
		require.False(t, persisted.IsActive)
	})

	t.Run("second_run_is_noop", func(t *testing.T) {
		s, _ := newTestStore(t)
		require.NoError(t, s.CreateListing(ctx, newListing("listing1", "10.00", now.Add(time.Hour), true)))
		_, _, err := s.CommitBid(ctx, "listing1", strptr("bidderA"), dec("15.00"))
		require.NoError(t, err)

		_, err = s.AssignWinner(ctx, "listing1", now.Add(2*time.Hour))
		require.NoError(t, err)

		_, err = s.AssignWinner(ctx, "listing1", now.Add(2*time.Hour))
		require.ErrorIs(t, err, auctionerrors.ErrAlreadyResolved)
	})

	t.Run("no_bids_deactivates_without_winner", func(t *testing.T) {
		s, _ := newTestStore(t)
		require.NoError(t, s.CreateListing(ctx, newListing("listing1", "10.00", ended, true)))

		assignment, err := s.AssignWinner(ctx, "listing1", now)
		require.NoError(t, err)
		require.Nil(t, assignment.WinningBid)

		persisted, err := s.GetListing(ctx, "listing1")
		require.NoError(t, err)
		require.Nil(t, persisted.WinnerID)
		require.False(t, persisted.IsActive)
	})

	t.Run("still_open_listing_is_skipped", func(t *testing.T) {
		s, _ := newTestStore(t)
		require.NoError(t, s.CreateListing(ctx, newListing("listing1", "10.00", now.Add(time.Hour), true)))

		_, err := s.AssignWinner(ctx, "listing1", now)
		require.ErrorIs(t, err, auctionerrors.ErrAlreadyResolved)
	})

	t.Run("unknown_listing", func(t *testing.T) {
		s, _ := newTestStore(t)
		_, err := s.AssignWinner(ctx, "listingX", now)
		require.ErrorIs(t, err, auctionerrors.ErrListingNotFound)
	})
}

// Test ListEndedUnresolved predicate
func TestGormStore_ListEndedUnresolved(t *testing.T) {
	ctx := context.Background()
	s, db := newTestStore(t)

	now := time.Now().UTC()
	ended := now.Add(-time.Hour)
	open := now.Add(time.Hour)

	winner := "bidderX"
	listings := []model.Listing{
		newListing("ended-unresolved", "10.00", ended, true),
		newListing("still-open", "10.00", open, true),
		newListing("ended-inactive", "10.00", ended, false),
	}
	resolved := newListing("ended-resolved", "10.00", ended, true)
	resolved.WinnerID = &winner

	for _, l := range listings {
		require.NoError(t, s.CreateListing(ctx, l))
	}
	require.NoError(t, db.Create(&resolved).Error)

	got, err := s.ListEndedUnresolved(ctx, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "ended-unresolved", got[0].ListingID)
}

func TestGormStore_MarkWinnerNotified(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	now := time.Now().UTC()
	require.NoError(t, s.CreateListing(ctx, newListing("listing1", "10.00", now.Add(-time.Hour), true)))

	require.NoError(t, s.MarkWinnerNotified(ctx, "listing1", now))

	listing, err := s.GetListing(ctx, "listing1")
	require.NoError(t, err)
	require.True(t, listing.WinnerNotified)
	require.NotNil(t, listing.WinnerContacted)
}

// CreateListing defaults current price to starting price
func TestGormStore_CreateListing_DefaultsCurrentPrice(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	listing := newListing("listing1", "10.00", time.Now().UTC().Add(time.Hour), true)
	listing.CurrentPrice = decimal.Decimal{}
	require.NoError(t, s.CreateListing(ctx, listing))

	persisted, err := s.GetListing(ctx, "listing1")
	require.NoError(t, err)
	require.True(t, persisted.CurrentPrice.Equal(persisted.StartingPrice))
}
