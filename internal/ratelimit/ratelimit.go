package ratelimit

import (
	"context"
	"fmt"
	"time"

	"auction-engine/internal/config"
	"auction-engine/internal/models"
)

// AttemptCounter reads windowed attempt counts from the append-only
// attempt log. The limiter itself never writes; recording attempts is the
// caller's responsibility.
type AttemptCounter interface {
	CountBidAttempts(ctx context.Context, bidderID *string, ipAddress string, since time.Time) (int64, error)
	CountFailedLogins(ctx context.Context, email, ipAddress string, since time.Time) (int64, error)
}

// Limiter caps per-actor attempt rates over trailing windows. Bid
// attempts count unconditionally; login attempts only count failures.
type Limiter struct {
	counter     AttemptCounter
	bidLimit    int64
	bidWindow   time.Duration
	loginLimit  int64
	loginWindow time.Duration
}

// NewLimiter creates a limiter with the configured thresholds.
func NewLimiter(counter AttemptCounter, cfg config.RateLimitConfig) *Limiter {
	return &Limiter{
		counter:     counter,
		bidLimit:    int64(cfg.BidLimit),
		bidWindow:   cfg.BidWindow,
		loginLimit:  int64(cfg.LoginLimit),
		loginWindow: cfg.LoginWindow,
	}
}

// AllowBid reports whether the actor may place another bid attempt. All
// attempts in the trailing window count, successful or not, so a denial
// does not reset the window.
func (l *Limiter) AllowBid(ctx context.Context, actor models.Actor) (bool, error) {
	var bidderID *string
	if actor.Authenticated() {
		bidderID = &actor.BidderID
	}

	since := time.Now().UTC().Add(-l.bidWindow)
	count, err := l.counter.CountBidAttempts(ctx, bidderID, actor.IPAddress, since)
	if err != nil {
		return false, fmt.Errorf("rate limit: count bid attempts: %w", err)
	}
	return count < l.bidLimit, nil
}

// AllowLogin reports whether another login attempt is permitted for the
// email/address pair. Only failed attempts count against the limit.
func (l *Limiter) AllowLogin(ctx context.Context, email, ipAddress string) (bool, error) {
	since := time.Now().UTC().Add(-l.loginWindow)
	count, err := l.counter.CountFailedLogins(ctx, email, ipAddress, since)
	if err != nil {
		return false, fmt.Errorf("rate limit: count failed logins: %w", err)
	}
	return count < l.loginLimit, nil
}

// BidRetryAfter is the hint returned with a bid-rate denial.
func (l *Limiter) BidRetryAfter() time.Duration {
	return l.bidWindow
}
