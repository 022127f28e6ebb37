package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiter_Window(t *testing.T) {
	now := time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiter(MemoryLimiterConfig{Now: func() time.Time { return now }})

	for i := 0; i < 3; i++ {
		decision, err := limiter.Allow(context.Background(), "ip:10.0.0.1", 3, time.Minute)
		if err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
		if !decision.Allowed {
			t.Fatalf("attempt %d should be allowed", i)
		}
		if decision.Remaining != 3-(i+1) {
			t.Fatalf("attempt %d remaining = %d", i, decision.Remaining)
		}
	}

	decision, err := limiter.Allow(context.Background(), "ip:10.0.0.1", 3, time.Minute)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if decision.Allowed {
		t.Fatal("fourth attempt should be limited")
	}

	// A different key is unaffected.
	decision, err = limiter.Allow(context.Background(), "ip:10.0.0.2", 3, time.Minute)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !decision.Allowed {
		t.Fatal("separate key should be allowed")
	}

	// After the window passes the counter resets.
	now = now.Add(2 * time.Minute)
	decision, err = limiter.Allow(context.Background(), "ip:10.0.0.1", 3, time.Minute)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !decision.Allowed {
		t.Fatal("new window should be allowed")
	}
}

func TestMemoryLimiter_ZeroLimitDisables(t *testing.T) {
	limiter := NewMemoryLimiter(MemoryLimiterConfig{})
	for i := 0; i < 10; i++ {
		decision, err := limiter.Allow(context.Background(), "key", 0, time.Minute)
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if !decision.Allowed {
			t.Fatal("zero limit must disable limiting")
		}
	}
}

func TestMemoryLimiter_EvictsExpiredAtCapacity(t *testing.T) {
	now := time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiter(MemoryLimiterConfig{Now: func() time.Time { return now }, MaxKeys: 2})

	if _, err := limiter.Allow(context.Background(), "a", 1, time.Minute); err != nil {
		t.Fatalf("allow a: %v", err)
	}
	if _, err := limiter.Allow(context.Background(), "b", 1, time.Minute); err != nil {
		t.Fatalf("allow b: %v", err)
	}
	if _, err := limiter.Allow(context.Background(), "c", 1, time.Minute); err == nil {
		t.Fatal("expected capacity error with live keys")
	}

	now = now.Add(2 * time.Minute)
	if _, err := limiter.Allow(context.Background(), "c", 1, time.Minute); err != nil {
		t.Fatalf("expected gc to free capacity: %v", err)
	}
}
