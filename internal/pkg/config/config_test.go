package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("port: got %q", cfg.Port)
	}
	if cfg.Backend.BaseURL != "https://multisorteios.dev/msrifaadmin/api" {
		t.Errorf("backend url: got %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 30*time.Second {
		t.Errorf("backend timeout: got %v", cfg.Backend.Timeout)
	}
	if cfg.Session.LayoutTTL != 2*time.Hour {
		t.Errorf("layout ttl: got %v", cfg.Session.LayoutTTL)
	}
	if cfg.Session.TTL != 720*time.Hour || cfg.Session.IdleTimeout != 30*time.Minute {
		t.Errorf("session lifetimes: got %v / %v", cfg.Session.TTL, cfg.Session.IdleTimeout)
	}
	if cfg.Audit.Workers != 4 {
		t.Errorf("audit workers: got %d", cfg.Audit.Workers)
	}
	if cfg.IsProduction() {
		t.Error("default env must not be production")
	}
}

func TestLoadFrom_RequiresJWTSecret(t *testing.T) {
	if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":       "s3cret",
		"ENV":              "production",
		"COOKIE_SECURE":    "true",
		"BACKEND_BASE_URL": "http://localhost:9000/api",
		"REDIS_DB":         "3",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.IsProduction() || !cfg.CookieSecure {
		t.Error("expected production with secure cookies")
	}
	if cfg.Backend.BaseURL != "http://localhost:9000/api" || cfg.Redis.DB != 3 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}
