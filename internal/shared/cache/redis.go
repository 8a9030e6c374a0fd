package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"edujobs-backend/internal/shared/telemetry"
)

// Redis is a JSON cache over go-redis. A Redis without a client bypasses
// every call, so callers never branch on availability.
type Redis struct {
	client redis.UniversalClient

	warnedUnavailable atomic.Bool
}

// New connects to addr. An empty addr or a failed ping yields a bypassing cache.
func New(ctx context.Context, addr, password string) *Redis {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return &Redis{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		telemetry.Warn("cache.unavailable", map[string]any{"addr": addr, "error": err})
		_ = client.Close()
		return &Redis{}
	}
	return &Redis{client: client}
}

// NewWithClient wraps an existing client.
func NewWithClient(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

// Enabled reports whether a live client backs the cache.
func (r *Redis) Enabled() bool {
	return r != nil && r.client != nil
}

// GetJSON loads key into out. The bool reports a hit.
func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if !r.Enabled() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value under key for ttl.
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !r.Enabled() {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnOnce(err)
		return err
	}
	return nil
}

// Delete removes keys.
func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if !r.Enabled() || len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.warnOnce(err)
		return err
	}
	return nil
}

// Ping checks the server. A bypassing cache has nothing to ping.
func (r *Redis) Ping(ctx context.Context) error {
	if !r.Enabled() {
		return nil
	}
	return r.client.Ping(ctx).Err()
}

// Close releases the client.
func (r *Redis) Close() error {
	if !r.Enabled() {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) warnOnce(err error) {
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		telemetry.Warn("cache.degraded", map[string]any{"error": err})
	}
}
