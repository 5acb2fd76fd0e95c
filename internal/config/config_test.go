package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NewsURL != "https://archlinux.org/feeds/news/" {
		t.Errorf("NewsURL = %q", cfg.NewsURL)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.PollInterval != time.Hour {
		t.Errorf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.StorageType != "bbolt" {
		t.Errorf("StorageType = %q", cfg.StorageType)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("NEWS_URL", "https://example.com/feed")
	t.Setenv("POLL_INTERVAL", "60")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NewsURL != "https://example.com/feed" {
		t.Errorf("NewsURL = %q", cfg.NewsURL)
	}
	if cfg.PollInterval != time.Minute {
		t.Errorf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadRejectsNonPositiveDurations(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT_SECONDS", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero http timeout")
	}
}
