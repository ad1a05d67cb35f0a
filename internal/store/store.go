package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/models"
	"auction-engine/internal/validator"
	"auction-engine/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Assignment is the outcome of resolving one ended listing. WinningBid is
// nil when the listing closed without bids.
type Assignment struct {
	Listing    models.Listing
	WinningBid *models.Bid
}

//go:generate mockgen -source=store.go -destination=mock_store.go -package=store

// AuctionDB defines the persistent auction state interface. The store is
// the single source of truth: only CommitBid mutates listing prices and
// inserts bids, and only AssignWinner mutates the winner reference.
type AuctionDB interface {
	CreateListing(ctx context.Context, listing models.Listing) error
	GetListing(ctx context.Context, listingID string) (models.Listing, error)
	GetHighestBid(ctx context.Context, listingID string) (models.Bid, error)
	ListBids(ctx context.Context, listingID string) ([]models.Bid, error)
	CommitBid(ctx context.Context, listingID string, bidderID *string, amount decimal.Decimal) (models.Bid, *models.Bid, error)

	RecordBidAttempt(ctx context.Context, bidderID *string, ipAddress string) (models.BidAttempt, error)
	MarkBidAttemptSuccess(ctx context.Context, attemptID string) error
	CountBidAttempts(ctx context.Context, bidderID *string, ipAddress string, since time.Time) (int64, error)
	CountFailedLogins(ctx context.Context, email, ipAddress string, since time.Time) (int64, error)

	ListEndedUnresolved(ctx context.Context, now time.Time) ([]models.Listing, error)
	AssignWinner(ctx context.Context, listingID string, now time.Time) (Assignment, error)
	MarkWinnerNotified(ctx context.Context, listingID string, at time.Time) error
}

// GormStore is the relational implementation of AuctionDB.
type GormStore struct {
	db            *gorm.DB
	commitRetries int
}

// NewGormStore creates a store over an open gorm connection. commitRetries
// bounds how many times CommitBid retries a transient conflict before
// surfacing ErrConflict.
func NewGormStore(db *gorm.DB, commitRetries int) *GormStore {
	if commitRetries < 1 {
		commitRetries = 1
	}
	return &GormStore{db: db, commitRetries: commitRetries}
}

// CreateListing inserts a listing. Listings are created by the (external)
// listing management flow; the engine only needs this for seeding and tests.
func (s *GormStore) CreateListing(ctx context.Context, listing models.Listing) error {
	if listing.CurrentPrice.IsZero() {
		listing.CurrentPrice = listing.StartingPrice
	}
	if err := s.db.WithContext(ctx).Create(&listing).Error; err != nil {
		return fmt.Errorf("create listing %s: %w", listing.ListingID, err)
	}
	return nil
}

// GetListing returns a listing by ID.
func (s *GormStore) GetListing(ctx context.Context, listingID string) (models.Listing, error) {
	var listing models.Listing
	err := s.db.WithContext(ctx).First(&listing, "listing_id = ?", listingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Listing{}, fmt.Errorf("get listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	if err != nil {
		return models.Listing{}, fmt.Errorf("get listing %s: %w", listingID, err)
	}
	return listing, nil
}

// GetHighestBid returns the highest bid for a listing.
func (s *GormStore) GetHighestBid(ctx context.Context, listingID string) (models.Bid, error) {
	return highestBid(s.db.WithContext(ctx), listingID)
}

func highestBid(db *gorm.DB, listingID string) (models.Bid, error) {
	var bid models.Bid
	err := db.Where("listing_id = ?", listingID).Order("amount DESC").First(&bid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Bid{}, fmt.Errorf("get highest bid for listing %s: %w", listingID, auctionerrors.ErrNoBids)
	}
	if err != nil {
		return models.Bid{}, fmt.Errorf("get highest bid for listing %s: %w", listingID, err)
	}
	return bid, nil
}

// ListBids returns all bids for a listing, highest amount first.
func (s *GormStore) ListBids(ctx context.Context, listingID string) ([]models.Bid, error) {
	var bids []models.Bid
	err := s.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("amount DESC").
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("list bids for listing %s: %w", listingID, err)
	}
	if len(bids) == 0 {
		return nil, fmt.Errorf("list bids for listing %s: %w", listingID, auctionerrors.ErrNoBids)
	}
	return bids, nil
}

// CommitBid atomically validates and persists a bid. Inside one
// transaction it locks the listing row, re-reads the highest bid,
// re-runs the validator against that fresh state, inserts the bid, and
// raises the listing's current price. The pre-transaction validation a
// caller may have done is only a fast path; this re-validation is the
// authoritative decision, otherwise two bidders passing the fast check
// concurrently could both commit.
//
// Transient serialization failures are retried up to the configured
// bound, then surfaced as ErrConflict.
//
// The second return is the bid this commit displaced: the highest bid as
// read under the lock, nil for the first bid on a listing. A pre-commit
// snapshot can be stale, so callers notifying the outbid party must use
// this value.
func (s *GormStore) CommitBid(ctx context.Context, listingID string, bidderID *string, amount decimal.Decimal) (models.Bid, *models.Bid, error) {
	var lastErr error
	for attempt := 0; attempt < s.commitRetries; attempt++ {
		bid, displaced, err := s.commitBidOnce(ctx, listingID, bidderID, amount)
		if err == nil {
			return bid, displaced, nil
		}
		if !isRetryable(err) {
			return models.Bid{}, nil, err
		}
		lastErr = err
		utils.Warn("CommitBid: retrying after transient conflict", map[string]any{
			"listing_id": listingID,
			"attempt":    attempt + 1,
			"error":      err.Error(),
		})
	}
	return models.Bid{}, nil, fmt.Errorf("commit bid on listing %s: retries exhausted: %w (%v)",
		listingID, auctionerrors.ErrConflict, lastErr)
}

func (s *GormStore) commitBidOnce(ctx context.Context, listingID string, bidderID *string, amount decimal.Decimal) (models.Bid, *models.Bid, error) {
	var bid models.Bid
	var displaced *models.Bid
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&listing, "listing_id = ?", listingID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("commit bid on listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
		}
		if err != nil {
			return fmt.Errorf("commit bid on listing %s: lock listing: %w", listingID, err)
		}

		var highest *models.Bid
		hb, err := highestBid(tx, listingID)
		if err == nil {
			highest = &hb
		} else if !errors.Is(err, auctionerrors.ErrNoBids) {
			return err
		}

		if err := validator.Validate(listing, highest, amount, time.Now().UTC()); err != nil {
			return err
		}
		displaced = highest

		bid = models.Bid{
			BidID:     utils.GenerateID(),
			ListingID: listingID,
			BidderID:  bidderID,
			Amount:    amount,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&bid).Error; err != nil {
			return fmt.Errorf("commit bid on listing %s: insert bid: %w", listingID, err)
		}

		err = tx.Model(&models.Listing{}).
			Where("listing_id = ?", listingID).
			Update("current_price", amount).Error
		if err != nil {
			return fmt.Errorf("commit bid on listing %s: update price: %w", listingID, err)
		}
		return nil
	})
	if err != nil {
		return models.Bid{}, nil, err
	}
	return bid, displaced, nil
}

// RecordBidAttempt appends an attempt row with success=false. The caller
// flips it via MarkBidAttemptSuccess only after a successful commit, so
// rejected attempts still count toward the rate window.
func (s *GormStore) RecordBidAttempt(ctx context.Context, bidderID *string, ipAddress string) (models.BidAttempt, error) {
	attempt := models.BidAttempt{
		AttemptID: utils.GenerateID(),
		BidderID:  bidderID,
		IPAddress: ipAddress,
		Success:   false,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&attempt).Error; err != nil {
		return models.BidAttempt{}, fmt.Errorf("record bid attempt from %s: %w", ipAddress, err)
	}
	return attempt, nil
}

// MarkBidAttemptSuccess flips an attempt row to success=true.
func (s *GormStore) MarkBidAttemptSuccess(ctx context.Context, attemptID string) error {
	err := s.db.WithContext(ctx).
		Model(&models.BidAttempt{}).
		Where("attempt_id = ?", attemptID).
		Update("success", true).Error
	if err != nil {
		return fmt.Errorf("mark bid attempt %s successful: %w", attemptID, err)
	}
	return nil
}

// CountBidAttempts counts all bid attempts since the cutoff for an actor.
// The origin address always participates in the key; the bidder ID narrows
// it when the actor is authenticated.
func (s *GormStore) CountBidAttempts(ctx context.Context, bidderID *string, ipAddress string, since time.Time) (int64, error) {
	query := s.db.WithContext(ctx).
		Model(&models.BidAttempt{}).
		Where("ip_address = ? AND created_at >= ?", ipAddress, since)
	if bidderID != nil {
		query = query.Where("bidder_id = ?", *bidderID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count bid attempts from %s: %w", ipAddress, err)
	}
	return count, nil
}

// CountFailedLogins counts failed login attempts since the cutoff for an
// email/address pair.
func (s *GormStore) CountFailedLogins(ctx context.Context, email, ipAddress string, since time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.LoginAttempt{}).
		Where("email = ? AND ip_address = ? AND created_at >= ? AND success = ?", email, ipAddress, since, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count failed logins for %s: %w", email, err)
	}
	return count, nil
}

// ListEndedUnresolved returns listings whose bidding window has closed but
// which still await winner resolution.
func (s *GormStore) ListEndedUnresolved(ctx context.Context, now time.Time) ([]models.Listing, error) {
	var listings []models.Listing
	err := s.db.WithContext(ctx).
		Where("end_date < ? AND winner_id IS NULL AND is_active = ?", now, true).
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("list ended unresolved listings: %w", err)
	}
	return listings, nil
}

// AssignWinner resolves one ended listing inside its own transaction. The
// listing row is locked and the unresolved predicate re-checked under the
// lock, which makes concurrent and repeated invocations idempotent: a
// listing that already has a winner returns ErrAlreadyResolved. A listing
// that closed with bids gets the highest bidder as winner; one that closed
// without bids is only deactivated. Both paths flip is_active to false,
// closing the listing exactly once.
func (s *GormStore) AssignWinner(ctx context.Context, listingID string, now time.Time) (Assignment, error) {
	var assignment Assignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&listing, "listing_id = ?", listingID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("assign winner for listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
		}
		if err != nil {
			return fmt.Errorf("assign winner for listing %s: lock listing: %w", listingID, err)
		}

		if listing.WinnerID != nil || !listing.IsActive {
			return fmt.Errorf("assign winner for listing %s: %w", listingID, auctionerrors.ErrAlreadyResolved)
		}
		if !listing.Ended(now) {
			return fmt.Errorf("assign winner for listing %s: not yet ended: %w", listingID, auctionerrors.ErrAlreadyResolved)
		}

		updates := map[string]any{"is_active": false}

		hb, err := highestBid(tx, listingID)
		switch {
		case err == nil:
			listing.WinnerID = hb.BidderID
			assignment.WinningBid = &hb
			updates["winner_id"] = hb.BidderID
		case errors.Is(err, auctionerrors.ErrNoBids):
			// closed with no bids: deactivate only
		default:
			return err
		}

		if err := tx.Model(&models.Listing{}).Where("listing_id = ?", listingID).Updates(updates).Error; err != nil {
			return fmt.Errorf("assign winner for listing %s: update: %w", listingID, err)
		}

		listing.IsActive = false
		assignment.Listing = listing
		return nil
	})
	if err != nil {
		return Assignment{}, err
	}
	return assignment, nil
}

// MarkWinnerNotified records that the winner notification went out.
func (s *GormStore) MarkWinnerNotified(ctx context.Context, listingID string, at time.Time) error {
	err := s.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("listing_id = ?", listingID).
		Updates(map[string]any{"winner_notified": true, "winner_contacted": at}).Error
	if err != nil {
		return fmt.Errorf("mark winner notified for listing %s: %w", listingID, err)
	}
	return nil
}
