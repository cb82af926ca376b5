package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestProcess_Defaults(t *testing.T) {
	cfg, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.JWTTTL != time.Hour {
		t.Fatalf("expected 1h ttl, got %v", cfg.JWTTTL)
	}
	if cfg.StoreDriver != DriverPostgres {
		t.Fatalf("expected postgres driver, got %s", cfg.StoreDriver)
	}
	if cfg.Events.Workers != 8 {
		t.Fatalf("expected 8 workers, got %d", cfg.Events.Workers)
	}
	if cfg.RateLimit.LoginLimit != 10 || cfg.RateLimit.LoginWindow != time.Minute {
		t.Fatalf("unexpected rate limit config: %+v", cfg.RateLimit)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env by default")
	}
}

func TestProcess_Overrides(t *testing.T) {
	cfg, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":           "secret",
		"JWT_TTL":              "30m",
		"STORE_DRIVER":         "mongo",
		"CORS_ALLOWED_ORIGINS": "https://a.example,https://b.example",
		"ENV":                  "production",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.JWTTTL != 30*time.Minute {
		t.Fatalf("expected 30m, got %v", cfg.JWTTTL)
	}
	if cfg.StoreDriver != DriverMongo {
		t.Fatalf("expected mongo, got %s", cfg.StoreDriver)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("expected production env")
	}
}

func TestProcess_MissingSecret(t *testing.T) {
	if _, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error for missing JWT_SECRET")
	}
}

func TestProcess_UnknownDriver(t *testing.T) {
	_, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "secret",
		"STORE_DRIVER": "mysql",
	}))
	if err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
