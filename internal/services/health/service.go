package health

import (
	"context"
	"time"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// CachePinger is satisfied by *cache.Redis.
type CachePinger interface {
	Enabled() bool
	Ping(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	DB      Pinger
	Cache   CachePinger
	Timeout time.Duration
}

// NewService constructs a new health service. db may be nil when the
// in-memory repositories are in use.
func NewService(db Pinger, cache CachePinger) *Service {
	return &Service{DB: db, Cache: cache, Timeout: 2 * time.Second}
}

// Status reports component states and whether the service can take traffic.
// Only the database is required; a disabled or unreachable cache is reported
// but not fatal.
func (s *Service) Status(ctx context.Context) (map[string]string, bool) {
	out := map[string]string{"db": "memory", "cache": "disabled"}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ok := true
	if s.DB != nil {
		if err := s.DB.PingContext(pingCtx); err != nil {
			out["db"] = "down"
			ok = false
		} else {
			out["db"] = "ok"
		}
	}
	if s.Cache != nil && s.Cache.Enabled() {
		out["cache"] = "ok"
		if err := s.Cache.Ping(pingCtx); err != nil {
			out["cache"] = "down"
		}
	}
	return out, ok
}
