package server

import (
	handler "auction-engine/services/bidding/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(biddingService handler.BiddingServiceInterface, retryAfterSec int) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	biddingHandler := handler.NewBiddingHandler(biddingService, retryAfterSec)

	listings := router.Group("/listings")
	{
		listings.GET("/:listing_id", biddingHandler.GetListingHandler)
		listings.POST("/:listing_id/bids", biddingHandler.PlaceBidHandler)
		listings.GET("/:listing_id/bids", biddingHandler.GetBidsByListingHandler)
		listings.GET("/:listing_id/winning", biddingHandler.GetWinningBidHandler)
	}

	return router
}
