package cache

import (
	"context"
	"fmt"
	"time"

	"auction-engine/internal/config"

	"github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

//go:generate mockgen -source=invalidator.go -destination=mock_invalidator.go -package=cache

// Invalidator signals externally cached listing views to refresh. The
// cache itself is never authoritative: the store is the single source of
// truth, and invalidation is a best-effort side channel.
type Invalidator interface {
	InvalidateListing(ctx context.Context, listingID, categoryCode string) error
}

// NewClient connects to redis and verifies the connection with a ping.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	if _, err := client.Ping(dialCtx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

type redisInvalidator struct {
	client *redis.Client
}

// NewRedisInvalidator creates an Invalidator deleting cached listing keys.
func NewRedisInvalidator(client *redis.Client) Invalidator {
	return &redisInvalidator{client: client}
}

// InvalidateListing drops the cached detail view for the listing, its
// category list view, and the active-listings list view.
func (r *redisInvalidator) InvalidateListing(ctx context.Context, listingID, categoryCode string) error {
	keys := []string{
		fmt.Sprintf("listing:%s", listingID),
		"listings:active",
	}
	if categoryCode != "" {
		keys = append(keys, fmt.Sprintf("listings:category:%s", categoryCode))
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate cache for listing %s: %w", listingID, err)
	}
	return nil
}

type noopInvalidator struct{}

// NewNoopInvalidator returns an Invalidator that does nothing. Used when
// no redis address is configured and in tests.
func NewNoopInvalidator() Invalidator {
	return noopInvalidator{}
}

func (noopInvalidator) InvalidateListing(context.Context, string, string) error {
	return nil
}
