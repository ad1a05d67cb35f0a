package bidding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/cache"
	"auction-engine/internal/models"
	"auction-engine/internal/notify"
	"auction-engine/internal/ratelimit"
	"auction-engine/internal/store"
	"auction-engine/internal/validator"
	"auction-engine/utils"

	"github.com/shopspring/decimal"
)

// BiddingService orchestrates bid placement: rate limiting, attempt
// logging, fast-path validation, the atomic commit, and the best-effort
// side effects (cache invalidation, outbid notification).
type BiddingService struct {
	store       store.AuctionDB
	limiter     *ratelimit.Limiter
	notifier    notify.Notifier
	invalidator cache.Invalidator
}

// NewBiddingService creates a new BiddingService instance.
func NewBiddingService(db store.AuctionDB, limiter *ratelimit.Limiter, notifier notify.Notifier, invalidator cache.Invalidator) *BiddingService {
	return &BiddingService{
		store:       db,
		limiter:     limiter,
		notifier:    notifier,
		invalidator: invalidator,
	}
}

// PlaceBid validates and commits a bid for the actor on a listing.
//
// The attempt row is written before any validation so abusive actors are
// counted even when every attempt fails; a rate-limit denial is the only
// outcome that touches no storage. Validation here is a fast path only;
// the commit re-validates inside its transaction and has the final word.
func (s *BiddingService) PlaceBid(ctx context.Context, actor models.Actor, listingID, rawAmount string) (models.Bid, error) {
	allowed, err := s.limiter.AllowBid(ctx, actor)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: rate limit check for listing %s: %w", listingID, err)
	}
	if !allowed {
		return models.Bid{}, fmt.Errorf("service: bid on listing %s: %w", listingID, auctionerrors.ErrTooManyAttempts)
	}

	var bidderID *string
	if actor.Authenticated() {
		bidderID = &actor.BidderID
	}

	attempt, err := s.store.RecordBidAttempt(ctx, bidderID, actor.IPAddress)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: record bid attempt for listing %s: %w", listingID, err)
	}

	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: parse amount %q: %w", rawAmount, auctionerrors.ErrAmountNotPositive)
	}

	listing, err := s.store.GetListing(ctx, listingID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: %w", err)
	}

	previousHighest, err := s.snapshotHighestBid(ctx, listingID)
	if err != nil {
		return models.Bid{}, err
	}

	// Fast-path rejection before entering the commit transaction.
	if err := validator.Validate(listing, previousHighest, amount, time.Now().UTC()); err != nil {
		return models.Bid{}, fmt.Errorf("service: %w", err)
	}

	bid, displaced, err := s.store.CommitBid(ctx, listingID, bidderID, amount)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: %w", err)
	}

	if err := s.store.MarkBidAttemptSuccess(ctx, attempt.AttemptID); err != nil {
		utils.Warn("PlaceBid: failed to mark attempt successful", map[string]any{
			"attempt_id": attempt.AttemptID,
			"listing_id": listingID,
			"error":      err.Error(),
		})
	}

	s.invalidateListing(ctx, listing)
	s.notifyOutbid(ctx, listing, displaced, bid)

	return bid, nil
}

// snapshotHighestBid loads the highest bid, treating an empty bid set as
// a nil bid rather than an error.
func (s *BiddingService) snapshotHighestBid(ctx context.Context, listingID string) (*models.Bid, error) {
	hb, err := s.store.GetHighestBid(ctx, listingID)
	if err == nil {
		return &hb, nil
	}
	if errors.Is(err, auctionerrors.ErrNoBids) {
		return nil, nil
	}
	return nil, fmt.Errorf("service: %w", err)
}

// invalidateListing signals external caches after a successful commit.
// Failures are logged and swallowed: the cache is never authoritative.
func (s *BiddingService) invalidateListing(ctx context.Context, listing models.Listing) {
	if err := s.invalidator.InvalidateListing(ctx, listing.ListingID, listing.CategoryCode); err != nil {
		utils.Warn("PlaceBid: cache invalidation failed", map[string]any{
			"listing_id": listing.ListingID,
			"error":      err.Error(),
		})
	}
}

// notifyOutbid tells the displaced highest bidder they were outbid, when
// there is one and it isn't the new bidder. The displaced bid comes from
// the commit transaction, not the pre-commit snapshot: a bidder who
// committed between the snapshot and this commit would otherwise be
// skipped. Fire and forget: a delivery failure never fails the bid.
func (s *BiddingService) notifyOutbid(ctx context.Context, listing models.Listing, previous *models.Bid, bid models.Bid) {
	if previous == nil || previous.BidderID == nil {
		return
	}
	if bid.BidderID != nil && *bid.BidderID == *previous.BidderID {
		return
	}

	err := s.notifier.NotifyOutbid(ctx, *previous.BidderID, listing, previous.Amount, bid.Amount)
	if err != nil {
		utils.Warn("PlaceBid: outbid notification failed", map[string]any{
			"listing_id": listing.ListingID,
			"bidder_id":  *previous.BidderID,
			"error":      err.Error(),
		})
	}
}

// GetListing returns a listing snapshot.
func (s *BiddingService) GetListing(ctx context.Context, listingID string) (models.Listing, error) {
	if listingID == "" {
		return models.Listing{}, fmt.Errorf("service: %w: empty listing ID", auctionerrors.ErrListingNotFound)
	}

	listing, err := s.store.GetListing(ctx, listingID)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: %w", err)
	}
	return listing, nil
}

// GetBidsForListing returns all bids for a listing, highest first.
func (s *BiddingService) GetBidsForListing(ctx context.Context, listingID string) ([]models.Bid, error) {
	if listingID == "" {
		return nil, fmt.Errorf("service: %w: empty listing ID", auctionerrors.ErrListingNotFound)
	}

	bids, err := s.store.ListBids(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return bids, nil
}

// GetWinningBid returns the current highest bid for a listing.
func (s *BiddingService) GetWinningBid(ctx context.Context, listingID string) (models.Bid, error) {
	if listingID == "" {
		return models.Bid{}, fmt.Errorf("service: %w: empty listing ID", auctionerrors.ErrListingNotFound)
	}

	bid, err := s.store.GetHighestBid(ctx, listingID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: %w", err)
	}
	return bid, nil
}
