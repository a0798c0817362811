package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestProviderLimiter_BurstThenBlocks(t *testing.T) {
	l := NewProviderLimiter(Config{RequestsPerSecond: 0.001, BurstSize: 2})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := l.Wait(ctx, "amadeus"); err != nil {
			t.Fatalf("call %d within burst failed: %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, "amadeus"); err == nil {
		t.Error("expected the third call to be refused")
	}
}

func TestProviderLimiter_SeparateProviders(t *testing.T) {
	l := NewProviderLimiter(Config{RequestsPerSecond: 0.001, BurstSize: 1})
	ctx := context.Background()

	if err := l.Wait(ctx, "amadeus"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.Wait(ctx, "other"); err != nil {
		t.Errorf("other provider should have its own budget: %v", err)
	}
}

func TestProviderLimiter_SetProviderLimit(t *testing.T) {
	l := NewProviderLimiter(Config{})
	l.SetProviderLimit("amadeus", 0.001, 1)

	if err := l.Wait(context.Background(), "amadeus"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, "amadeus"); err == nil {
		t.Error("expected the custom limit to apply")
	}
}
