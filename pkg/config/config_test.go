package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8091" {
		t.Errorf("Port = %s, want 8091", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %s, want development", cfg.Env)
	}
	if cfg.Collector.Source != "statusinvest" {
		t.Errorf("Collector.Source = %s, want statusinvest", cfg.Collector.Source)
	}
	if cfg.Collector.RequestInterval != 300*time.Millisecond {
		t.Errorf("Collector.RequestInterval = %v, want 300ms", cfg.Collector.RequestInterval)
	}
	if cfg.Database.Retention != 8760*time.Hour {
		t.Errorf("Database.Retention = %v, want 1 year", cfg.Database.Retention)
	}
	if cfg.Redis.Enabled {
		t.Error("Redis.Enabled should default to false")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("METRICS_SOURCE", "yahoo")
	t.Setenv("REQUEST_INTERVAL", "1s")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Port = %s, want 9000", cfg.Port)
	}
	if cfg.Collector.Source != "yahoo" {
		t.Errorf("Collector.Source = %s, want yahoo", cfg.Collector.Source)
	}
	if cfg.Collector.RequestInterval != time.Second {
		t.Errorf("Collector.RequestInterval = %v, want 1s", cfg.Collector.RequestInterval)
	}
	if !cfg.Redis.Enabled {
		t.Error("Redis.Enabled should be true")
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("ENV", "testing")

	if _, err := Load(); err == nil {
		t.Error("Load() with unknown ENV should fail")
	}
}

func TestLoadInvalidSource(t *testing.T) {
	t.Setenv("METRICS_SOURCE", "bloomberg")

	if _, err := Load(); err == nil {
		t.Error("Load() with unknown METRICS_SOURCE should fail")
	}
}
