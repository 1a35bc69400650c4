package config_test

import (
	"testing"
	"time"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("KAFKA_BROKERS", "")

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

	policy, err := cfg.StockPolicy()
	if err != nil || policy != domain.NegativeStockAllow {
		t.Fatalf("expected allow policy by default, got %s (%v)", policy, err)
	}

	if cfg.KafkaEnabled() {
		t.Fatalf("expected kafka to be disabled without brokers")
	}

	if cfg.ReferenceCacheTTL != 10*time.Minute {
		t.Fatalf("expected 10m reference cache ttl, got %s", cfg.ReferenceCacheTTL)
	}

	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("expected wildcard CORS origin, got %v", cfg.CORSAllowedOrigins)
	}

	if cfg.MigrationsPath != "migrations" {
		t.Fatalf("expected migrations directory, got %s", cfg.MigrationsPath)
	}

	if cfg.OutboxRetention != 7*24*time.Hour {
		t.Fatalf("expected one week outbox retention, got %s", cfg.OutboxRetention)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("NEGATIVE_STOCK_POLICY", "REJECT")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("OUTBOX_INTERVAL", "250ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

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

	if policy, _ := cfg.StockPolicy(); policy != domain.NegativeStockReject {
		t.Fatalf("expected reject policy, got %s", policy)
	}

	if !cfg.KafkaEnabled() || len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Fatalf("expected two kafka brokers, got %v", cfg.KafkaBrokers)
	}

	if cfg.OutboxInterval != 250*time.Millisecond {
		t.Fatalf("expected outbox interval override, got %s", cfg.OutboxInterval)
	}

	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected two CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadInvalidStockPolicy(t *testing.T) {
	t.Setenv("NEGATIVE_STOCK_POLICY", "sometimes")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for unknown negative stock policy")
	}
}

func TestLoadInvalidOutboxBatch(t *testing.T) {
	t.Setenv("OUTBOX_BATCH_SIZE", "0")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for zero outbox batch size")
	}
}
