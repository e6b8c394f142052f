package config_test

import (
	"testing"
	"time"

	"github.com/iho/saku/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	t.Setenv("AMQP_URL", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.RedisURL != "" {
		t.Fatalf("expected redis to default to disabled, got %q", cfg.RedisURL)
	}

	if cfg.AMQPExchange != "saku.events" {
		t.Fatalf("expected default AMQP exchange, got %q", cfg.AMQPExchange)
	}

	if cfg.RateLimitRPS != 0 {
		t.Fatalf("expected rate limiting to default to disabled, got %v", cfg.RateLimitRPS)
	}

	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("expected default shutdown timeout 10s, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("AMQP_URL", "amqp://example")
	t.Setenv("AMQP_EXCHANGE", "finance.events")
	t.Setenv("BUDGETS_FILE", "/etc/saku/budgets.toml")
	t.Setenv("HTTP_READ_TIMEOUT", "45s")
	t.Setenv("RATE_LIMIT_RPS", "25.5")
	t.Setenv("RATE_LIMIT_BURST", "50")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.AMQPURL != "amqp://example" || cfg.AMQPExchange != "finance.events" {
		t.Fatalf("expected AMQP settings to be set, got url=%s exchange=%s", cfg.AMQPURL, cfg.AMQPExchange)
	}

	if cfg.BudgetsFile != "/etc/saku/budgets.toml" {
		t.Fatalf("expected budgets file override, got %s", cfg.BudgetsFile)
	}

	if cfg.HTTPReadTimeout != 45*time.Second {
		t.Fatalf("expected read timeout override, got %s", cfg.HTTPReadTimeout)
	}

	if cfg.RateLimitRPS != 25.5 || cfg.RateLimitBurst != 50 {
		t.Fatalf("expected rate limit overrides, got rps=%v burst=%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
