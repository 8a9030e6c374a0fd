package cvs

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a CV record.
func (r *PGRepo) Create(ctx context.Context, cv CV) error {
	const query = `
INSERT INTO cvs (id, user_id, file_url, storage_key, size_bytes, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		cv.ID,
		cv.UserID,
		cv.FileURL,
		cv.StorageKey,
		cv.SizeBytes,
		cv.CreatedAt,
	)
	return err
}

// ListByUser lists CV records ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]CV, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, file_url, storage_key, size_bytes, created_at
FROM cvs
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CV{}
	for rows.Next() {
		var cv CV
		if err := rows.Scan(
			&cv.ID,
			&cv.UserID,
			&cv.FileURL,
			&cv.StorageKey,
			&cv.SizeBytes,
			&cv.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, cv)
	}
	return out, rows.Err()
}

// HasStorageKey reports whether a record references key.
func (r *PGRepo) HasStorageKey(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM cvs WHERE storage_key = $1)`, key).Scan(&exists)
	return exists, err
}

var _ Repo = (*PGRepo)(nil)
