package cache

import (
	"context"
	"testing"
	"time"
)

func TestNilCacheBypasses(t *testing.T) {
	var r *Redis
	ctx := context.Background()

	if r.Enabled() {
		t.Fatalf("nil cache must be disabled")
	}
	var out map[string]string
	hit, err := r.GetJSON(ctx, "k", &out)
	if hit || err != nil {
		t.Fatalf("expected miss without error, got %v %v", hit, err)
	}
	if err := r.SetJSON(ctx, "k", map[string]string{"a": "b"}, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	if err := r.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestNewWithoutAddrBypasses(t *testing.T) {
	r := New(context.Background(), "  ", "")
	if r.Enabled() {
		t.Fatalf("expected bypassing cache")
	}
	var out struct{}
	if hit, err := r.GetJSON(context.Background(), "dashboard:u1", &out); hit || err != nil {
		t.Fatalf("expected miss, got %v %v", hit, err)
	}
}
