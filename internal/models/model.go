package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Actor identifies who is performing a request. BidderID is empty for
// unauthenticated actors, in which case rate limiting falls back to the
// origin address.
type Actor struct {
	BidderID  string `json:"bidder_id"`
	IPAddress string `json:"ip_address"`
}

// Authenticated reports whether the actor carries a bidder identity.
func (a Actor) Authenticated() bool {
	return a.BidderID != ""
}

// Listing represents a time-boxed auction listing.
// CurrentPrice never decreases and never drops below StartingPrice.
type Listing struct {
	ListingID       string          `json:"listing_id" gorm:"primaryKey;column:listing_id"`
	Title           string          `json:"title"`
	CategoryCode    string          `json:"category_code" gorm:"index"`
	StartingPrice   decimal.Decimal `json:"starting_price" gorm:"type:numeric(10,2)"`
	CurrentPrice    decimal.Decimal `json:"current_price" gorm:"type:numeric(10,2)"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date" gorm:"index;index:idx_listings_end_active,priority:1"`
	IsActive        bool            `json:"is_active" gorm:"index:idx_listings_end_active,priority:2"`
	WinnerID        *string         `json:"winner_id"`
	WinnerNotified  bool            `json:"winner_notified"`
	WinnerContacted *time.Time      `json:"winner_contacted"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Ended reports whether the listing's bidding window has closed at now.
func (l Listing) Ended(now time.Time) bool {
	return !now.Before(l.EndDate)
}

// Bid represents an accepted monetary offer on a listing.
// Bid rows are insert-only: they are never updated or deleted.
type Bid struct {
	BidID     string          `json:"bid_id" gorm:"primaryKey;column:bid_id"`
	ListingID string          `json:"listing_id" gorm:"index"`
	BidderID  *string         `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric(10,2);index"`
	CreatedAt time.Time       `json:"created_at"`
}

// BidAttempt records every bid submission, accepted or not, for rate
// limiting and audit. The only permitted mutation is the creating
// request flipping Success to true after a successful commit.
type BidAttempt struct {
	AttemptID string    `json:"attempt_id" gorm:"primaryKey;column:attempt_id"`
	BidderID  *string   `json:"bidder_id" gorm:"index"`
	IPAddress string    `json:"ip_address" gorm:"index"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// LoginAttempt records authentication attempts. The auth layer writes
// these; the engine only counts recent failures for rate limiting.
type LoginAttempt struct {
	AttemptID string    `json:"attempt_id" gorm:"primaryKey;column:attempt_id"`
	Email     string    `json:"email" gorm:"index"`
	IPAddress string    `json:"ip_address" gorm:"index"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
