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
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %s, want 24h", cfg.TokenTTL)
	}
	if !cfg.SeedMockData {
		t.Error("expected mock data seeding on by default")
	}
	if cfg.Auth.VerifyPasswords {
		t.Error("expected password verification off by default")
	}
	if cfg.Activity.Workers != 4 {
		t.Errorf("Activity.Workers = %d, want 4", cfg.Activity.Workers)
	}
	if cfg.Mongo.URI != "" || cfg.Redis.Addr != "" {
		t.Errorf("expected optional backends unset, got mongo=%q redis=%q", cfg.Mongo.URI, cfg.Redis.Addr)
	}
	if cfg.IsProduction() {
		t.Error("default env must not be production")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":            "s3cret",
		"PORT":                  "9000",
		"ENV":                   "production",
		"TOKEN_TTL":             "90m",
		"LOG_LEVEL":             "debug",
		"LOG_PRETTY":            "true",
		"AUTH_VERIFY_PASSWORDS": "true",
		"SEED_MOCK_DATA":        "false",
		"ACTIVITY_WORKERS":      "8",
		"MONGO_URI":             "mongodb://mongo:27017",
		"REDIS_ADDR":            "redis:6379",
		"REDIS_DB":              "2",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" || !cfg.IsProduction() {
		t.Errorf("unexpected port/env: %q/%q", cfg.Port, cfg.Env)
	}
	if cfg.TokenTTL != 90*time.Minute {
		t.Errorf("TokenTTL = %s, want 90m", cfg.TokenTTL)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.Pretty {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
	if !cfg.Auth.VerifyPasswords || cfg.SeedMockData {
		t.Errorf("unexpected flags: verify=%v seed=%v", cfg.Auth.VerifyPasswords, cfg.SeedMockData)
	}
	if cfg.Activity.Workers != 8 {
		t.Errorf("Activity.Workers = %d, want 8", cfg.Activity.Workers)
	}
	if cfg.Mongo.URI != "mongodb://mongo:27017" || cfg.Mongo.Database != "skilllink" {
		t.Errorf("unexpected mongo config: %+v", cfg.Mongo)
	}
	if cfg.Redis.Addr != "redis:6379" || cfg.Redis.DB != 2 {
		t.Errorf("unexpected redis config: %+v", cfg.Redis)
	}
}

func TestLoadFrom_MissingSecret(t *testing.T) {
	if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(nil)); err == nil {
		t.Fatal("expected an error when JWT_SECRET is missing")
	}
}

func TestLoadFrom_NonPositiveTTL(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
		"TOKEN_TTL":  "0s",
	}))
	if err == nil {
		t.Fatal("expected an error for a zero TOKEN_TTL")
	}
}
