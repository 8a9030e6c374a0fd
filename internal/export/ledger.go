package export

import (
	"context"
	"time"
)

// Ledger records the lifecycle of every export file.
type Ledger interface {
	Begin(ctx context.Context, e Export) error
	Finish(ctx context.Context, id string, status Status, sizeBytes int64, errMsg string, at time.Time) error
	// ListStale returns pending or failed rows last updated before cutoff, oldest first.
	ListStale(ctx context.Context, cutoff time.Time, limit int) ([]Export, error)
}
