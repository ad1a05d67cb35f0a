package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/models"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, "invalid_payload", wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to an HTTP status, a
// machine-readable reason code, and a human-readable message.
func MapErrorToHTTP(err error) (int, string, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrListingNotFound):
		return http.StatusNotFound, "listing_not_found", "listing not found"
	case errors.Is(err, auctionerrors.ErrListingInactive):
		return http.StatusBadRequest, "listing_inactive", "this listing is not open for bidding"
	case errors.Is(err, auctionerrors.ErrListingClosed):
		return http.StatusBadRequest, "listing_closed", "this listing has closed"
	case errors.Is(err, auctionerrors.ErrAmountNotPositive):
		return http.StatusBadRequest, "amount_not_positive", "bid amount must be a positive decimal"
	case errors.Is(err, auctionerrors.ErrBelowCurrentPrice):
		return http.StatusBadRequest, "below_current_price", "bid must be higher than the current price"
	case errors.Is(err, auctionerrors.ErrBelowMinimumIncrement):
		return http.StatusBadRequest, "below_minimum_increment", "minimum bid increment is $1.00"
	case errors.Is(err, auctionerrors.ErrExceedsMaximumJump):
		return http.StatusBadRequest, "exceeds_maximum_jump", "bid cannot exceed twice the current highest bid"
	case errors.Is(err, auctionerrors.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "too_many_attempts", "too many bid attempts, please try again later"
	case errors.Is(err, auctionerrors.ErrConflict):
		return http.StatusConflict, "conflict", "another bid was committed concurrently, safe to retry"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusNotFound, "no_bids", "no bids found for listing"
	default:
		return http.StatusInternalServerError, "internal_error", "internal server error"
	}
}

// NewBidResponse serializes a bid for the HTTP boundary.
func NewBidResponse(bid models.Bid) BidResponse {
	return BidResponse{
		BidID:     bid.BidID,
		ListingID: bid.ListingID,
		BidderID:  bid.BidderID,
		Amount:    bid.Amount.StringFixed(2),
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewListingResponse serializes a listing for the HTTP boundary.
func NewListingResponse(listing models.Listing) ListingResponse {
	return ListingResponse{
		ListingID:     listing.ListingID,
		Title:         listing.Title,
		CategoryCode:  listing.CategoryCode,
		StartingPrice: listing.StartingPrice.StringFixed(2),
		CurrentPrice:  listing.CurrentPrice.StringFixed(2),
		StartDate:     listing.StartDate.UTC().Format(time.RFC3339),
		EndDate:       listing.EndDate.UTC().Format(time.RFC3339),
		IsActive:      listing.IsActive,
		WinnerID:      listing.WinnerID,
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
