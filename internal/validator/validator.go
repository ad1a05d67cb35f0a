package validator

import (
	"fmt"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/models"

	"github.com/shopspring/decimal"
)

// MinimumIncrement is the smallest amount a bid must clear the current
// price by, in currency units.
var MinimumIncrement = decimal.NewFromInt(1)

// maxJumpFactor caps a bid at this multiple of the previous highest bid.
var maxJumpFactor = decimal.NewFromInt(2)

// Validate decides whether a candidate amount is an acceptable bid given
// the listing state and the current highest bid (nil when the listing has
// no bids). It is a pure function: no I/O, no clock reads, deterministic
// for a given now.
//
// A nil return means the bid is accepted. Rejections wrap one of the
// sentinel validation errors from auctionerrors, checked in this order:
// inactive listing, closed listing, non-positive amount, amount at or
// below the current price, amount under the minimum increment, amount
// over twice the previous highest bid. The jump cap only applies when a
// prior bid exists; the first bid on a listing has no upper bound.
func Validate(listing models.Listing, highest *models.Bid, amount decimal.Decimal, now time.Time) error {
	if !listing.IsActive {
		return fmt.Errorf("validate bid on listing %s: %w", listing.ListingID, auctionerrors.ErrListingInactive)
	}
	if listing.Ended(now) {
		return fmt.Errorf("validate bid on listing %s: %w", listing.ListingID, auctionerrors.ErrListingClosed)
	}
	if amount.Sign() <= 0 {
		return fmt.Errorf("validate bid on listing %s: %w", listing.ListingID, auctionerrors.ErrAmountNotPositive)
	}
	if amount.Cmp(listing.CurrentPrice) <= 0 {
		return fmt.Errorf("validate bid on listing %s: current price is %s: %w",
			listing.ListingID, listing.CurrentPrice.StringFixed(2), auctionerrors.ErrBelowCurrentPrice)
	}
	if amount.Cmp(listing.CurrentPrice.Add(MinimumIncrement)) < 0 {
		return fmt.Errorf("validate bid on listing %s: minimum increment is %s: %w",
			listing.ListingID, MinimumIncrement.StringFixed(2), auctionerrors.ErrBelowMinimumIncrement)
	}
	if highest != nil {
		maxAllowed := highest.Amount.Mul(maxJumpFactor)
		if amount.Cmp(maxAllowed) > 0 {
			return fmt.Errorf("validate bid on listing %s: maximum allowed bid is %s: %w",
				listing.ListingID, maxAllowed.StringFixed(2), auctionerrors.ErrExceedsMaximumJump)
		}
	}
	return nil
}
