package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`

	// Catalog JSON data files (products, categories, reviews).
	DataDir string `env:"DATA_DIR" envDefault:"./data"`

	// Snapshot persistence. Backend is "redis", "file" or "memory"; the
	// file backend stores per-session JSON under SnapshotDir.
	SnapshotBackend string        `env:"SNAPSHOT_BACKEND" envDefault:"file"`
	SnapshotDir     string        `env:"SNAPSHOT_DIR" envDefault:"./data/snapshots"`
	SnapshotTTL     time.Duration `env:"SNAPSHOT_TTL" envDefault:"168h"`
	RedisAddr       string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword   string        `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`

	// Simulated checkout processing delay.
	CheckoutDelay time.Duration `env:"CHECKOUT_DELAY" envDefault:"2s"`

	// WhatsApp manual-order deep links.
	WhatsAppNumber string `env:"WHATSAPP_NUMBER" envDefault:"254747896429"`
	SiteOrigin     string `env:"SITE_ORIGIN" envDefault:"http://localhost:3000"`
}

// Load reads configuration from environment variables and checks invariants.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.SnapshotBackend {
	case "redis", "file", "memory":
	default:
		return fmt.Errorf("invalid snapshot backend: %q", c.SnapshotBackend)
	}
	if c.SnapshotTTL <= 0 {
		return fmt.Errorf("snapshot ttl must be positive, got %s", c.SnapshotTTL)
	}
	if c.CheckoutDelay < 0 {
		return fmt.Errorf("checkout delay must not be negative, got %s", c.CheckoutDelay)
	}
	return nil
}
