package helpers

// Request/Response DTOs
type PlaceBidRequest struct {
	Amount string `json:"amount" binding:"required"`
}

type BidResponse struct {
	BidID     string  `json:"bid_id"`
	ListingID string  `json:"listing_id"`
	BidderID  *string `json:"bidder_id"`
	Amount    string  `json:"amount"`
	CreatedAt string  `json:"created_at"`
}

type ListingResponse struct {
	ListingID     string  `json:"listing_id"`
	Title         string  `json:"title"`
	CategoryCode  string  `json:"category_code"`
	StartingPrice string  `json:"starting_price"`
	CurrentPrice  string  `json:"current_price"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	IsActive      bool    `json:"is_active"`
	WinnerID      *string `json:"winner_id,omitempty"`
}
