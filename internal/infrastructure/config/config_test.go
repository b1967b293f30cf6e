package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/mindwell/creditledger/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SETTLEMENT_WEBHOOK_SECRET", "whsec_test")
	t.Setenv("JWT_SECRET", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.BalanceCacheTTL != 30*time.Second {
		t.Fatalf("expected default balance cache TTL 30s, got %s", cfg.BalanceCacheTTL)
	}

	if cfg.KafkaTopic != "creditledger.events" {
		t.Fatalf("expected default kafka topic, got %s", cfg.KafkaTopic)
	}

	if cfg.TransferRateLimitBurst != 5 {
		t.Fatalf("expected default transfer burst 5, got %d", cfg.TransferRateLimitBurst)
	}
}

func TestLoadRequiresWebhookSecret(t *testing.T) {
	original, had := os.LookupEnv("SETTLEMENT_WEBHOOK_SECRET")
	os.Unsetenv("SETTLEMENT_WEBHOOK_SECRET")
	t.Cleanup(func() {
		if had {
			os.Setenv("SETTLEMENT_WEBHOOK_SECRET", original)
		}
	})

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error when webhook secret is missing")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SETTLEMENT_WEBHOOK_SECRET", "whsec_test")
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092,broker-2:9092")
	t.Setenv("RATE_LIMIT_RPS", "10")
	t.Setenv("TRANSFER_RATE_LIMIT_RPS", "1")
	t.Setenv("TRANSFER_RATE_LIMIT_BURST", "2")
	t.Setenv("JWT_SECRET", "top-secret")
	t.Setenv("AUTH_ENABLED", "true")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "broker-1:9092" {
		t.Fatalf("expected kafka brokers to be split, got %v", cfg.KafkaBrokers)
	}

	if cfg.RateLimitRPS != 10 {
		t.Fatalf("expected rate limit override, got %v", cfg.RateLimitRPS)
	}

	if cfg.TransferRateLimitRPS != 1 || cfg.TransferRateLimitBurst != 2 {
		t.Fatalf("expected transfer rate limit overrides, got rps=%v burst=%d", cfg.TransferRateLimitRPS, cfg.TransferRateLimitBurst)
	}

	if cfg.JWTSecret != "top-secret" || !cfg.AuthEnabled {
		t.Fatalf("expected auth settings to be set, got secret=%s enabled=%v", cfg.JWTSecret, cfg.AuthEnabled)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("SETTLEMENT_WEBHOOK_SECRET", "whsec_test")
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
