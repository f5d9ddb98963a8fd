package config

import (
	"context"
	"errors"
	"testing"
)

func TestLoad_FailsWithoutJWTSecret(t *testing.T) {
	// No JWT_SECRET in the environment: startup must refuse rather than fall
	// back to a built-in secret.
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(context.Background()); !errors.Is(err, ErrMissingJWTSecret) {
		t.Fatalf("expected ErrMissingJWTSecret, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port = %q, want 8080", cfg.Port)
	}
	if cfg.RateLimit.MaxRequests != 10 {
		t.Fatalf("rate limit max = %d, want 10", cfg.RateLimit.MaxRequests)
	}
	if cfg.Mongo.Database != "membership" {
		t.Fatalf("mongo db = %q, want membership", cfg.Mongo.Database)
	}
}
