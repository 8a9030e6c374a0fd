package export

import (
	"context"
	"fmt"
	"time"

	"edujobs-backend/internal/shared/metrics"
	"edujobs-backend/internal/shared/storage/object"
	"edujobs-backend/internal/shared/telemetry"
)

// ReferenceChecker reports whether a file record points at a storage key.
type ReferenceChecker interface {
	HasStorageKey(ctx context.Context, key string) (bool, error)
}

// SweepResult summarises one sweep.
type SweepResult struct {
	Scanned    int
	Reconciled int
	Deleted    int
	Errors     int
}

// Sweeper removes files whose export never produced a record.
type Sweeper struct {
	Store      object.ObjectStore
	Ledger     Ledger
	References map[Kind]ReferenceChecker
	Grace      time.Duration
	BatchSize  int
	Now        func() time.Time
}

// Sweep reconciles stale pending and failed ledger rows. A row whose key is
// referenced is marked completed; otherwise its file is deleted and the row
// marked swept.
func (s *Sweeper) Sweep(ctx context.Context) (SweepResult, error) {
	var res SweepResult
	cutoff := s.now().Add(-s.Grace)
	rows, err := s.Ledger.ListStale(ctx, cutoff, s.BatchSize)
	if err != nil {
		return res, fmt.Errorf("list stale exports: %w", err)
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Scanned++
		checker, ok := s.References[row.Kind]
		if !ok {
			res.Errors++
			telemetry.Warn("export.sweep_unknown_kind", map[string]any{"export_id": row.ID, "kind": string(row.Kind)})
			continue
		}
		referenced, err := checker.HasStorageKey(ctx, row.StorageKey)
		if err != nil {
			res.Errors++
			telemetry.Warn("export.sweep_check_failed", map[string]any{"export_id": row.ID, "error": err})
			continue
		}
		if referenced {
			if err := s.Ledger.Finish(ctx, row.ID, StatusCompleted, 0, "", s.now()); err != nil {
				res.Errors++
				continue
			}
			res.Reconciled++
			continue
		}
		if err := s.Store.Delete(ctx, row.StorageKey); err != nil {
			res.Errors++
			telemetry.Warn("export.sweep_delete_failed", map[string]any{"export_id": row.ID, "storage_key": row.StorageKey, "error": err})
			continue
		}
		if err := s.Ledger.Finish(ctx, row.ID, StatusSwept, 0, row.Error, s.now()); err != nil {
			res.Errors++
			continue
		}
		res.Deleted++
	}

	metrics.AddSweepDeleted(res.Deleted)
	telemetry.Info("export.sweep", map[string]any{
		"scanned":    res.Scanned,
		"reconciled": res.Reconciled,
		"deleted":    res.Deleted,
		"errors":     res.Errors,
	})
	return res, nil
}

// Run sweeps every interval until ctx is done.
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
			telemetry.Error("export.sweep_failed", map[string]any{"error": err})
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Sweeper) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
