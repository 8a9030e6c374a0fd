package export

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryLedger keeps ledger rows in memory and is safe for concurrent use.
type MemoryLedger struct {
	mu   sync.RWMutex
	rows map[string]Export
}

// NewMemoryLedger constructs a MemoryLedger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{rows: make(map[string]Export)}
}

// Begin stores a new row.
func (l *MemoryLedger) Begin(ctx context.Context, e Export) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.rows[e.ID]; ok {
		return fmt.Errorf("export %s already recorded", e.ID)
	}
	for _, row := range l.rows {
		if row.StorageKey == e.StorageKey {
			return fmt.Errorf("storage key %s already recorded", e.StorageKey)
		}
	}
	l.rows[e.ID] = e
	return nil
}

// Finish moves a row to its terminal status.
func (l *MemoryLedger) Finish(ctx context.Context, id string, status Status, sizeBytes int64, errMsg string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	row, ok := l.rows[id]
	if !ok {
		return fmt.Errorf("export %s: %w", id, ErrNotFound)
	}
	row.Status = status
	if sizeBytes > 0 {
		row.SizeBytes = sizeBytes
	}
	row.Error = errMsg
	row.UpdatedAt = at
	l.rows[id] = row
	return nil
}

// ListStale returns pending or failed rows older than cutoff.
func (l *MemoryLedger) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]Export, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	var out []Export
	for _, row := range l.rows {
		if row.Status != StatusPending && row.Status != StatusFailed {
			continue
		}
		if !row.UpdatedAt.Before(cutoff) {
			continue
		}
		out = append(out, row)
	}
	l.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.Before(out[j].UpdatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Get returns a row by id.
func (l *MemoryLedger) Get(id string) (Export, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	row, ok := l.rows[id]
	return row, ok
}

var _ Ledger = (*MemoryLedger)(nil)
