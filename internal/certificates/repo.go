package certificates

import "context"

// Repo defines persistence operations for certificates.
type Repo interface {
	Create(ctx context.Context, cert Certificate) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Certificate, error)
	GetByCode(ctx context.Context, code string) (Certificate, error)
	HasStorageKey(ctx context.Context, key string) (bool, error)
}
