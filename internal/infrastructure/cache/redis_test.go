package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/orderdesk/order-gateway/internal/core/domain"
)

func newTestRedis(t *testing.T) *Redis {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client)
}

func TestRedis_PutGet(t *testing.T) {
	c := newTestRedis(t)
	ctx := context.Background()

	status := domain.OrderStatus{ID: "o1", Status: "created", Item: "widget", Amount: 2, UserID: "u1", UpdatedAt: "2026-03-01T12:00:00Z"}
	if err := c.Put(ctx, "o1", &status); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, found, err := c.Get(ctx, "o1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !found {
		t.Fatalf("expected hit")
	}
	if *got != status {
		t.Fatalf("unexpected status: %+v", got)
	}
}

func TestRedis_Miss(t *testing.T) {
	c := newTestRedis(t)
	if _, found, err := c.Get(context.Background(), "missing"); err != nil || found {
		t.Fatalf("expected clean miss, got found=%v err=%v", found, err)
	}
}

func TestRedis_NoExpiry(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	c := NewRedis(client)

	if err := c.Put(context.Background(), "o1", &domain.OrderStatus{ID: "o1"}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if ttl := srv.TTL("order:o1"); ttl != 0 {
		t.Fatalf("expected no expiry, got ttl %v", ttl)
	}
}
