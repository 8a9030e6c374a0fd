package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"edujobs-backend/internal/jobs"
	"edujobs-backend/internal/shared/telemetry"
	"edujobs-backend/internal/users"
)

var ErrForbidden = errors.New("company role required")

// Dashboard is the company landing view. Unverified companies get only the
// gate: Verified false and nothing else.
type Dashboard struct {
	Verified   bool            `json:"verified"`
	Stats      Stats           `json:"stats"`
	Jobs       []JobRow        `json:"jobs"`
	Categories []jobs.Category `json:"categories"`
}

type Stats struct {
	JobsPosted int `json:"jobsPosted"`
	Applicants int `json:"applicants"`
	Hired      int `json:"hired"`
}

type JobRow struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Applicants int    `json:"applicants"`
	Draft      bool   `json:"draft"`
}

type UserReader interface {
	GetWithProfile(ctx context.Context, userID string) (users.User, *users.Profile, error)
}

type JobLister interface {
	ListByCompany(ctx context.Context, companyID string) ([]jobs.JobStats, error)
	ListCategories(ctx context.Context) ([]jobs.Category, error)
}

// Cache is satisfied by *cache.Redis.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type Service struct {
	Users UserReader
	Jobs  JobLister
	Cache Cache
	TTL   time.Duration
}

func cacheKey(userID string) string {
	return "dashboard:" + userID
}

// Build assembles the dashboard for a company user.
func (s *Service) Build(ctx context.Context, userID string) (Dashboard, error) {
	user, profile, err := s.Users.GetWithProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return Dashboard{}, ErrForbidden
		}
		return Dashboard{}, err
	}
	if user.Role != users.RoleCompany {
		return Dashboard{}, ErrForbidden
	}
	if !profile.Verified() {
		return Dashboard{Verified: false}, nil
	}

	var cached Dashboard
	if s.Cache != nil {
		hit, err := s.Cache.GetJSON(ctx, cacheKey(userID), &cached)
		if err != nil {
			telemetry.Warn("dashboard.cache_get_failed", map[string]any{"user_id": userID, "error": err})
		}
		if hit {
			return cached, nil
		}
	}

	rows, err := s.Jobs.ListByCompany(ctx, userID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list jobs: %w", err)
	}
	categories, err := s.Jobs.ListCategories(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list categories: %w", err)
	}

	d := Dashboard{
		Verified:   true,
		Jobs:       make([]JobRow, 0, len(rows)),
		Categories: categories,
	}
	for _, r := range rows {
		d.Stats.JobsPosted++
		d.Stats.Applicants += r.Applicants
		d.Stats.Hired += r.Hired
		d.Jobs = append(d.Jobs, JobRow{
			ID:         r.ID,
			Slug:       r.Slug,
			Title:      r.Title,
			Applicants: r.Applicants,
			Draft:      r.Status == jobs.StatusDraft,
		})
	}

	if s.Cache != nil {
		if err := s.Cache.SetJSON(ctx, cacheKey(userID), d, s.TTL); err != nil {
			telemetry.Warn("dashboard.cache_set_failed", map[string]any{"user_id": userID, "error": err})
		}
	}
	return d, nil
}

// Invalidate drops the cached dashboard of a company.
func (s *Service) Invalidate(ctx context.Context, companyID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, cacheKey(companyID)); err != nil {
		telemetry.Warn("dashboard.cache_delete_failed", map[string]any{"company_id": companyID, "error": err})
	}
}

var _ jobs.Invalidator = (*Service)(nil)
