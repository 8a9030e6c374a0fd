package cvs

import "context"

// Repo defines persistence operations for CV records.
type Repo interface {
	Create(ctx context.Context, cv CV) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]CV, error)
	HasStorageKey(ctx context.Context, key string) (bool, error)
}
