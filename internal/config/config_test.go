package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/sony/gobreaker"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"HOSTEL_API_BASE", "HOSTEL_SESSION_STORE", "HOSTEL_LANDING", "HOSTEL_REDIS_PREFIX"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.BaseURL != "http://localhost:8080/api" {
		t.Errorf("expected default base URL, got %s", cfg.BaseURL)
	}
	if cfg.SessionStore != StoreSQLite {
		t.Errorf("expected sqlite store, got %s", cfg.SessionStore)
	}
	if cfg.Landing != "index.html" {
		t.Errorf("expected index.html landing, got %s", cfg.Landing)
	}
	if !strings.HasSuffix(cfg.SessionPath, "session.db") {
		t.Errorf("expected session.db path, got %s", cfg.SessionPath)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HOSTEL_API_BASE", "https://hostel.example/api")
	t.Setenv("HOSTEL_SESSION_STORE", StoreRedis)
	t.Setenv("REDIS_ADDRESS", "cache:6380")
	t.Setenv("HOSTEL_SESSION_SECRET", "s3cret")

	cfg := Load()
	if cfg.BaseURL != "https://hostel.example/api" {
		t.Errorf("unexpected base URL %s", cfg.BaseURL)
	}
	if cfg.SessionStore != StoreRedis || cfg.RedisAddress != "cache:6380" {
		t.Errorf("unexpected redis config %+v", cfg)
	}
	if cfg.SessionSecret != "s3cret" {
		t.Errorf("expected session secret, got %q", cfg.SessionSecret)
	}
}

func TestNewCircuitBreaker(t *testing.T) {
	cb := NewCircuitBreaker(RedisBreaker)
	if cb.Name() != RedisBreaker {
		t.Errorf("unexpected name %s", cb.Name())
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected closed breaker, got %s", cb.State())
	}
}

func TestNewCircuitBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	cb := NewCircuitBreaker(PostgresBreaker)
	failure := errors.New("connection refused")

	for i := 0; i < breakerTripAfter; i++ {
		if cb.State() != gobreaker.StateClosed {
			t.Fatalf("breaker opened after %d failures", i)
		}
		_, _ = cb.Execute(func() (interface{}, error) { return nil, failure })
	}
	if cb.State() != gobreaker.StateOpen {
		t.Errorf("expected open breaker after %d failures, got %s", breakerTripAfter, cb.State())
	}
	if _, err := cb.Execute(func() (interface{}, error) { return nil, nil }); !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
}
