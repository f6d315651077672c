package cache

import (
	"context"
	"testing"
	"time"

	"campus-jobs/internal/config"
)

type item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestLocalJSON(t *testing.T) {
	ctx := context.Background()
	l, err := NewLocal(ctx, time.Minute)
	if err != nil {
		t.Fatalf("new local: %v", err)
	}
	defer l.Close()

	var got item
	if ok, err := l.GetJSON(ctx, "missing", &got); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := l.SetJSON(ctx, "k", item{Name: "a", Count: 2}, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	ok, err := l.GetJSON(ctx, "k", &got)
	if !ok || err != nil || got.Count != 2 {
		t.Fatalf("get: ok=%v err=%v got=%+v", ok, err, got)
	}

	if err := l.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := l.Delete(ctx, "k"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestRedisBypassWhenNotConfigured(t *testing.T) {
	r := NewRedis(config.RedisConfig{}, nil)
	ctx := context.Background()

	if r.Available() {
		t.Fatalf("expected redis to be unavailable")
	}
	if err := r.SetJSON(ctx, "k", item{Name: "a"}, 0); err != nil {
		t.Fatalf("set should be a no-op: %v", err)
	}
	var got item
	if ok, err := r.GetJSON(ctx, "k", &got); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	acquired, err := r.SetIfNotExists(ctx, "lock", "1", time.Second)
	if !acquired || err != nil {
		t.Fatalf("lock without redis should be granted: %v %v", acquired, err)
	}
}
