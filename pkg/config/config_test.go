package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("VOLT_API_BASE_URL", "")
	t.Setenv("VOLT_LEDGER_PATH", "")
	t.Setenv("VOLT_PAYLINK_CACHE_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Upstream.BaseURL != "https://api.voltpay.dev" {
		t.Fatalf("unexpected base url: %s", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.HTTPTimeout != 30*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.Upstream.HTTPTimeout)
	}
	if want := filepath.Join(home, ".voltcli", "ledger.json"); cfg.Ledger.Path != want {
		t.Fatalf("ledger path = %s, want %s", cfg.Ledger.Path, want)
	}
	if want := filepath.Join(home, ".voltcli", "paylinks.json"); cfg.Ledger.PaylinkCachePath != want {
		t.Fatalf("paylink cache path = %s, want %s", cfg.Ledger.PaylinkCachePath, want)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("VOLT_API_BASE_URL", "http://localhost:4000")
	t.Setenv("VOLT_LEDGER_PATH", "/tmp/ledger.json")
	t.Setenv("VOLT_PAYLINK_CACHE_PATH", "/tmp/paylinks.json")
	t.Setenv("VOLT_HTTP_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Upstream.BaseURL != "http://localhost:4000" {
		t.Fatalf("override not applied: %s", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.HTTPTimeout != 5*time.Second {
		t.Fatalf("timeout override not applied: %s", cfg.Upstream.HTTPTimeout)
	}
	if cfg.Ledger.Path != "/tmp/ledger.json" {
		t.Fatalf("path override not applied: %s", cfg.Ledger.Path)
	}
}

func TestLoadRejectsMalformedBaseURL(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("VOLT_API_BASE_URL", "not a url")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for malformed base url")
	}
}
