package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type HTTPConfig struct {
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"sqlite"`
	DSN    string `yaml:"dsn" env:"DB_DSN" env-default:"file:auction.db?cache=shared"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type NATSConfig struct {
	URL string `yaml:"url" env:"NATS_URL"`
}

type RateLimitConfig struct {
	BidLimit    int           `yaml:"bid_limit" env:"RATE_BID_LIMIT" env-default:"10"`
	BidWindow   time.Duration `yaml:"bid_window" env:"RATE_BID_WINDOW" env-default:"60s"`
	LoginLimit  int           `yaml:"login_limit" env:"RATE_LOGIN_LIMIT" env-default:"5"`
	LoginWindow time.Duration `yaml:"login_window" env:"RATE_LOGIN_WINDOW" env-default:"15m"`
}

type BiddingConfig struct {
	CommitRetries int `yaml:"commit_retries" env:"BID_COMMIT_RETRIES" env-default:"3"`
}

type ResolverConfig struct {
	Interval time.Duration `yaml:"interval" env:"RESOLVER_INTERVAL" env-default:"1m"`
}

type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	NATS      NATSConfig      `yaml:"nats"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Bidding   BiddingConfig   `yaml:"bidding"`
	Resolver  ResolverConfig  `yaml:"resolver"`
}

// Load reads configuration from the environment, first merging a local
// .env file when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read environment: %w", err)
	}
	return &cfg, nil
}
