package health

import (
	"context"
	"errors"
	"testing"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

type fakeCache struct {
	enabled bool
	err     error
}

func (c fakeCache) Enabled() bool                  { return c.enabled }
func (c fakeCache) Ping(ctx context.Context) error { return c.err }

func TestStatus(t *testing.T) {
	cases := []struct {
		name   string
		db     Pinger
		cache  CachePinger
		wantDB string
		wantC  string
		wantOK bool
	}{
		{"memory", nil, nil, "memory", "disabled", true},
		{"healthy", pingFunc(func(context.Context) error { return nil }), fakeCache{enabled: true}, "ok", "ok", true},
		{"db down", pingFunc(func(context.Context) error { return errors.New("refused") }), fakeCache{}, "down", "disabled", false},
		{"cache down", pingFunc(func(context.Context) error { return nil }), fakeCache{enabled: true, err: errors.New("timeout")}, "ok", "down", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, ok := NewService(tc.db, tc.cache).Status(context.Background())
			if ok != tc.wantOK || status["db"] != tc.wantDB || status["cache"] != tc.wantC {
				t.Fatalf("got %v ok=%v", status, ok)
			}
		})
	}
}
