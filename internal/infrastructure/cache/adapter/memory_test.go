package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RiteshJadhav021/connectu-messaging/internal/infrastructure/cache/port"
)

func TestMemoryCacheGetSet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if _, err := c.Get(ctx, "k"); !errors.Is(err, port.ErrMiss) {
		t.Fatalf("Get on empty cache: err = %v, want ErrMiss", err)
	}

	if err := c.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "v" {
		t.Errorf("Get = %q, want %q", got, "v")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := c.Get(ctx, "k"); !errors.Is(err, port.ErrMiss) {
		t.Errorf("Get after expiry: err = %v, want ErrMiss", err)
	}
}

func TestMemoryCacheClose(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	_ = c.Set(ctx, "k", "v", 0)
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, port.ErrMiss) {
		t.Errorf("Get after Close: err = %v, want ErrMiss", err)
	}
}
