package winner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/cache"
	"auction-engine/internal/notify"
	"auction-engine/internal/store"
	"auction-engine/utils"
)

// Resolver closes out ended listings: the highest bidder becomes the
// winner, listings without bids are deactivated. Safe to run repeatedly
// and concurrently; the store's locked winner-null check makes each
// assignment fire exactly once.
type Resolver struct {
	store       store.AuctionDB
	notifier    notify.Notifier
	invalidator cache.Invalidator
}

// NewResolver creates a Resolver.
func NewResolver(db store.AuctionDB, notifier notify.Notifier, invalidator cache.Invalidator) *Resolver {
	return &Resolver{
		store:       db,
		notifier:    notifier,
		invalidator: invalidator,
	}
}

// ResolveClosedAuctions scans for ended, active, winnerless listings and
// resolves each in its own transaction. One listing failing does not
// abort the rest of the batch; errors are logged per listing and the
// successful assignments are returned.
func (r *Resolver) ResolveClosedAuctions(ctx context.Context) ([]store.Assignment, error) {
	now := time.Now().UTC()

	listings, err := r.store.ListEndedUnresolved(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("resolver: %w", err)
	}

	assignments := make([]store.Assignment, 0, len(listings))
	for _, listing := range listings {
		assignment, err := r.store.AssignWinner(ctx, listing.ListingID, now)
		if errors.Is(err, auctionerrors.ErrAlreadyResolved) {
			// lost the race to a concurrent resolver run
			continue
		}
		if err != nil {
			utils.Error("ResolveClosedAuctions: failed to resolve listing", map[string]any{
				"listing_id": listing.ListingID,
				"error":      err.Error(),
			})
			continue
		}

		r.finishAssignment(ctx, assignment)
		assignments = append(assignments, assignment)
	}

	return assignments, nil
}

// finishAssignment performs the best-effort side effects of a resolved
// listing: win notification (recorded via winner_notified on success) and
// cache invalidation. Neither can fail the assignment.
func (r *Resolver) finishAssignment(ctx context.Context, assignment store.Assignment) {
	listing := assignment.Listing

	if assignment.WinningBid != nil && assignment.WinningBid.BidderID != nil {
		winnerID := *assignment.WinningBid.BidderID
		err := r.notifier.NotifyWon(ctx, winnerID, listing, assignment.WinningBid.Amount)
		if err != nil {
			utils.Warn("ResolveClosedAuctions: win notification failed", map[string]any{
				"listing_id": listing.ListingID,
				"bidder_id":  winnerID,
				"error":      err.Error(),
			})
		} else if err := r.store.MarkWinnerNotified(ctx, listing.ListingID, time.Now().UTC()); err != nil {
			utils.Warn("ResolveClosedAuctions: failed to mark winner notified", map[string]any{
				"listing_id": listing.ListingID,
				"error":      err.Error(),
			})
		}
	}

	if err := r.invalidator.InvalidateListing(ctx, listing.ListingID, listing.CategoryCode); err != nil {
		utils.Warn("ResolveClosedAuctions: cache invalidation failed", map[string]any{
			"listing_id": listing.ListingID,
			"error":      err.Error(),
		})
	}
}

// Run resolves on a fixed interval until the context is cancelled.
func (r *Resolver) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			assignments, err := r.ResolveClosedAuctions(ctx)
			if err != nil {
				utils.Error("winner resolver pass failed", map[string]any{"error": err.Error()})
				continue
			}
			if len(assignments) > 0 {
				utils.Info("winner resolver pass completed", map[string]any{
					"resolved": len(assignments),
				})
			}
		}
	}
}
