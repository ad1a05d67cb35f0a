package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
	"auction-engine/services/bidding/helpers"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
)

// userIDHeader carries the authenticated bidder identity set by the
// (external) auth gateway. Requests without it are rate-limited by
// origin address only.
const userIDHeader = "X-User-ID"

//go:generate mockgen -source=bidding_handler.go -destination=mock_service.go -package=handler

type BiddingServiceInterface interface {
	PlaceBid(ctx context.Context, actor model.Actor, listingID, amount string) (model.Bid, error)
	GetListing(ctx context.Context, listingID string) (model.Listing, error)
	GetBidsForListing(ctx context.Context, listingID string) ([]model.Bid, error)
	GetWinningBid(ctx context.Context, listingID string) (model.Bid, error)
}

type BiddingHandler struct {
	service       BiddingServiceInterface
	retryAfterSec int
}

func NewBiddingHandler(service BiddingServiceInterface, retryAfterSec int) *BiddingHandler {
	return &BiddingHandler{service: service, retryAfterSec: retryAfterSec}
}

func actorFromRequest(c *gin.Context) model.Actor {
	return model.Actor{
		BidderID:  c.GetHeader(userIDHeader),
		IPAddress: c.ClientIP(),
	}
}

// PlaceBidHandler handles POST /listings/:listing_id/bids
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	actor := actorFromRequest(c)

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(c.Request.Context(), actor, listingID, req.Amount)
	if err != nil {
		status, reason, message := helpers.MapErrorToHTTP(err)
		if errors.Is(err, auctionerrors.ErrTooManyAttempts) {
			c.Header("Retry-After", strconv.Itoa(h.retryAfterSec))
		}
		utils.JSONError(c, status, reason, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("PlaceBidHandler: failed to place bid", map[string]any{
			"handler":    "PlaceBidHandler",
			"listing_id": listingID,
			"bidder_id":  actor.BidderID,
			"reason":     reason,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewBidResponse(bid), "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":     bid.BidID,
		"listing_id": bid.ListingID,
		"bidder_id":  actor.BidderID,
		"amount":     bid.Amount.StringFixed(2),
	})
}

// GetListingHandler handles GET /listings/:listing_id
func (h *BiddingHandler) GetListingHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	listing, err := h.service.GetListing(c.Request.Context(), listingID)
	if err != nil {
		status, reason, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, reason, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetListingHandler: error retrieving listing", map[string]any{"listing_id": listingID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewListingResponse(listing), "listing retrieved successfully")
}

// GetBidsByListingHandler handles GET /listings/:listing_id/bids
func (h *BiddingHandler) GetBidsByListingHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	bids, err := h.service.GetBidsForListing(c.Request.Context(), listingID)
	if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
		status, reason, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, reason, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetBidsByListingHandler: error retrieving bids", map[string]any{"listing_id": listingID, "error": err.Error()})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, bid := range bids {
		resp = append(resp, helpers.NewBidResponse(bid))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByListingHandler", "bids retrieved successfully", map[string]any{
		"listing_id": listingID,
		"count":      len(resp),
	})
}

// GetWinningBidHandler handles GET /listings/:listing_id/winning
func (h *BiddingHandler) GetWinningBidHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	bid, err := h.service.GetWinningBid(c.Request.Context(), listingID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNoBids) {
			utils.JSONError(c, http.StatusNotFound, "no_bids", err, "no winning bid found")
			utils.Info("GetWinningBidHandler: no winning bid found", map[string]any{"listing_id": listingID})
			return
		}
		status, reason, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, reason, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetWinningBidHandler: winning bid error", map[string]any{"listing_id": listingID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidResponse(bid), "winning bid retrieved successfully")
	helpers.LogSuccess("GetWinningBidHandler", "winning bid retrieved successfully", map[string]any{
		"bid_id":     bid.BidID,
		"listing_id": bid.ListingID,
		"amount":     bid.Amount.StringFixed(2),
	})
}
