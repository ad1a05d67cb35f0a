package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"auction-engine/internal/models"

	"github.com/nats-io/nats.go"
	"github.com/shopspring/decimal"
)

// NATS subjects the engine publishes auction events on.
const (
	SubjectOutbid = "auction.outbid"
	SubjectWon    = "auction.won"
)

//go:generate mockgen -source=notifier.go -destination=mock_notifier.go -package=notify

// Notifier delivers best-effort auction notifications to the external
// dispatcher. Implementations must never block the bid transaction;
// callers log and swallow any error.
type Notifier interface {
	NotifyOutbid(ctx context.Context, bidderID string, listing models.Listing, oldAmount, newAmount decimal.Decimal) error
	NotifyWon(ctx context.Context, bidderID string, listing models.Listing, finalAmount decimal.Decimal) error
}

// OutbidEvent is the payload published on SubjectOutbid.
type OutbidEvent struct {
	BidderID     string    `json:"bidder_id"`
	ListingID    string    `json:"listing_id"`
	ListingTitle string    `json:"listing_title"`
	OldAmount    string    `json:"old_amount"`
	NewAmount    string    `json:"new_amount"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// WonEvent is the payload published on SubjectWon.
type WonEvent struct {
	BidderID     string    `json:"bidder_id"`
	ListingID    string    `json:"listing_id"`
	ListingTitle string    `json:"listing_title"`
	FinalAmount  string    `json:"final_amount"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type natsNotifier struct {
	conn *nats.Conn
}

// NewNATSNotifier creates a Notifier publishing JSON events over NATS.
func NewNATSNotifier(conn *nats.Conn) (Notifier, error) {
	if conn == nil {
		return nil, fmt.Errorf("NATS connection cannot be nil")
	}
	return &natsNotifier{conn: conn}, nil
}

func (n *natsNotifier) NotifyOutbid(ctx context.Context, bidderID string, listing models.Listing, oldAmount, newAmount decimal.Decimal) error {
	event := OutbidEvent{
		BidderID:     bidderID,
		ListingID:    listing.ListingID,
		ListingTitle: listing.Title,
		OldAmount:    oldAmount.StringFixed(2),
		NewAmount:    newAmount.StringFixed(2),
		OccurredAt:   time.Now().UTC(),
	}
	return n.publish(SubjectOutbid, event)
}

func (n *natsNotifier) NotifyWon(ctx context.Context, bidderID string, listing models.Listing, finalAmount decimal.Decimal) error {
	event := WonEvent{
		BidderID:     bidderID,
		ListingID:    listing.ListingID,
		ListingTitle: listing.Title,
		FinalAmount:  finalAmount.StringFixed(2),
		OccurredAt:   time.Now().UTC(),
	}
	return n.publish(SubjectWon, event)
}

func (n *natsNotifier) publish(subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event for subject %s: %w", subject, err)
	}
	if err := n.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish event to subject %s: %w", subject, err)
	}
	return nil
}

type noopNotifier struct{}

// NewNoopNotifier returns a Notifier that drops all events. Used when no
// NATS URL is configured and in tests.
func NewNoopNotifier() Notifier {
	return noopNotifier{}
}

func (noopNotifier) NotifyOutbid(context.Context, string, models.Listing, decimal.Decimal, decimal.Decimal) error {
	return nil
}

func (noopNotifier) NotifyWon(context.Context, string, models.Listing, decimal.Decimal) error {
	return nil
}
