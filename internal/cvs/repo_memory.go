package cvs

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryRepo stores CV records in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]CV
	byUser map[string][]CV
	keys   map[string]struct{}
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]CV),
		byUser: make(map[string][]CV),
		keys:   make(map[string]struct{}),
	}
}

// Create stores the record.
func (r *MemoryRepo) Create(ctx context.Context, cv CV) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[cv.ID]; ok {
		return fmt.Errorf("cv %s already exists", cv.ID)
	}
	r.byID[cv.ID] = cv
	r.byUser[cv.UserID] = append(r.byUser[cv.UserID], cv)
	r.keys[cv.StorageKey] = struct{}{}
	return nil
}

// ListByUser returns CV records for a user, newest first, with limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]CV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	rows := make([]CV, len(r.byUser[userID]))
	copy(rows, r.byUser[userID])
	r.mu.RUnlock()

	if offset >= len(rows) {
		return []CV{}, nil
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	end := len(rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return rows[offset:end], nil
}

// HasStorageKey reports whether a record references key.
func (r *MemoryRepo) HasStorageKey(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.keys[key]
	return ok, nil
}

var _ Repo = (*MemoryRepo)(nil)
