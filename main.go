package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	bidding "auction-engine/internal/biddingService"
	"auction-engine/internal/cache"
	"auction-engine/internal/config"
	"auction-engine/internal/notify"
	"auction-engine/internal/ratelimit"
	"auction-engine/internal/server"
	"auction-engine/internal/store"
	"auction-engine/internal/winner"
	"auction-engine/utils"

	"github.com/nats-io/nats.go"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("failed to load configuration", map[string]any{"error": err.Error()})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(cfg.Database)
	if err != nil {
		utils.Fatal("failed to open database", map[string]any{"driver": cfg.Database.Driver, "error": err.Error()})
	}

	auctionStore := store.NewGormStore(db, cfg.Bidding.CommitRetries)
	limiter := ratelimit.NewLimiter(auctionStore, cfg.RateLimit)
	invalidator := setupInvalidator(ctx, cfg)
	notifier := setupNotifier(cfg)

	biddingSvc := bidding.NewBiddingService(auctionStore, limiter, notifier, invalidator)
	resolver := winner.NewResolver(auctionStore, notifier, invalidator)
	go resolver.Run(ctx, cfg.Resolver.Interval)

	router := server.SetupRouter(biddingSvc, int(limiter.BidRetryAfter().Seconds()))

	addr := fmt.Sprintf(":%s", cfg.HTTP.Port)
	utils.Info("starting auction server", map[string]any{"addr": addr, "env": cfg.Env})
	if err := router.Run(addr); err != nil {
		utils.Fatal("failed to start server", map[string]any{"error": err.Error()})
	}
}

// setupInvalidator wires the redis cache invalidator, falling back to a
// no-op when no redis address is configured.
func setupInvalidator(ctx context.Context, cfg *config.Config) cache.Invalidator {
	if cfg.Redis.Addr == "" {
		utils.Warn("no redis address configured, cache invalidation disabled", nil)
		return cache.NewNoopInvalidator()
	}

	client, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		utils.Fatal("failed to connect to redis", map[string]any{"addr": cfg.Redis.Addr, "error": err.Error()})
	}
	return cache.NewRedisInvalidator(client)
}

// setupNotifier wires the NATS notifier, falling back to a no-op when no
// NATS URL is configured.
func setupNotifier(cfg *config.Config) notify.Notifier {
	if cfg.NATS.URL == "" {
		utils.Warn("no NATS URL configured, notifications disabled", nil)
		return notify.NewNoopNotifier()
	}

	conn, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		utils.Fatal("failed to connect to NATS", map[string]any{"url": cfg.NATS.URL, "error": err.Error()})
	}

	notifier, err := notify.NewNATSNotifier(conn)
	if err != nil {
		utils.Fatal("failed to create notifier", map[string]any{"error": err.Error()})
	}
	return notifier
}
