package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.RedisAddr != "127.0.0.1:6379" {
		t.Fatalf("unexpected default redis addr %q", cfg.RedisAddr)
	}
	if cfg.WorkerConcurrency != 10 || cfg.TickIntervalSeconds != 1 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("WORKER_CONCURRENCY", "4")
	t.Setenv("TICK_INTERVAL_SECONDS", "2")

	cfg := Load()
	if cfg.RedisAddr != "redis:6380" {
		t.Fatalf("redis addr override ignored: %q", cfg.RedisAddr)
	}
	if cfg.WorkerConcurrency != 4 || cfg.TickIntervalSeconds != 2 {
		t.Fatalf("overrides ignored: %+v", cfg)
	}
}

func TestLoadIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("WORKER_CONCURRENCY", "zero")
	t.Setenv("TICK_INTERVAL_SECONDS", "-5")

	cfg := Load()
	if cfg.WorkerConcurrency != 10 || cfg.TickIntervalSeconds != 1 {
		t.Fatalf("invalid values must fall back to defaults: %+v", cfg)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := LoadDotEnv("does-not-exist.env"); err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
}
