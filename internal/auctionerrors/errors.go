package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrListingNotFound = errors.New("listing not found")
	ErrNoBids          = errors.New("no bids found for listing")
	ErrConflict        = errors.New("concurrent bid conflict")
)

// Validation errors, in the order the validator evaluates them. These are
// deterministic decisions and are never retried.
var (
	ErrListingInactive       = errors.New("listing is not active")
	ErrListingClosed         = errors.New("listing has closed")
	ErrAmountNotPositive     = errors.New("bid amount must be a positive decimal")
	ErrBelowCurrentPrice     = errors.New("bid must be higher than the current price")
	ErrBelowMinimumIncrement = errors.New("bid below the minimum increment")
	ErrExceedsMaximumJump    = errors.New("bid exceeds the maximum allowed jump")
)

// Rate-limit errors
var ErrTooManyAttempts = errors.New("too many attempts")

// winner resolution
var ErrAlreadyResolved = errors.New("listing already resolved")
