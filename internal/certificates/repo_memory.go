package certificates

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryRepo stores certificates in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byCode map[string]Certificate
	byUser map[string][]Certificate
	keys   map[string]struct{}
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byCode: make(map[string]Certificate),
		byUser: make(map[string][]Certificate),
		keys:   make(map[string]struct{}),
	}
}

// Create stores the certificate. Codes are unique.
func (r *MemoryRepo) Create(ctx context.Context, cert Certificate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byCode[cert.Code]; ok {
		return fmt.Errorf("certificate code %s already issued", cert.Code)
	}
	r.byCode[cert.Code] = cert
	r.byUser[cert.UserID] = append(r.byUser[cert.UserID], cert)
	r.keys[cert.StorageKey] = struct{}{}
	return nil
}

// ListByUser returns certificates for a user, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Certificate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	r.mu.RLock()
	rows := make([]Certificate, len(r.byUser[userID]))
	copy(rows, r.byUser[userID])
	r.mu.RUnlock()

	if offset >= len(rows) {
		return []Certificate{}, nil
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].IssuedAt.After(rows[j].IssuedAt)
	})
	end := len(rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return rows[offset:end], nil
}

// GetByCode returns the certificate with the given code.
func (r *MemoryRepo) GetByCode(ctx context.Context, code string) (Certificate, error) {
	if err := ctx.Err(); err != nil {
		return Certificate{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cert, ok := r.byCode[code]
	if !ok {
		return Certificate{}, ErrNotFound
	}
	return cert, nil
}

// HasStorageKey reports whether a certificate references key.
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
