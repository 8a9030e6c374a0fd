package export

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PGLedger implements Ledger using Postgres.
type PGLedger struct {
	DB *sql.DB
}

// Begin inserts a pending row.
func (l *PGLedger) Begin(ctx context.Context, e Export) error {
	const query = `
INSERT INTO exports (
    id, kind, subject_id, storage_key, status, size_bytes, checksum, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := l.DB.ExecContext(ctx, query,
		e.ID,
		string(e.Kind),
		e.SubjectID,
		e.StorageKey,
		string(e.Status),
		e.SizeBytes,
		e.Checksum,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return err
}

// Finish updates the row status.
func (l *PGLedger) Finish(ctx context.Context, id string, status Status, sizeBytes int64, errMsg string, at time.Time) error {
	const query = `
UPDATE exports
SET status = $2,
    size_bytes = CASE WHEN $3 > 0 THEN $3 ELSE size_bytes END,
    error = NULLIF($4, ''),
    updated_at = $5
WHERE id = $1`
	res, err := l.DB.ExecContext(ctx, query, id, string(status), sizeBytes, errMsg, at)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("export %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListStale lists pending or failed rows last touched before cutoff.
func (l *PGLedger) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]Export, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `
SELECT id, kind, subject_id, storage_key, status, COALESCE(error, ''), size_bytes, checksum, created_at, updated_at
FROM exports
WHERE status IN ('pending', 'failed') AND updated_at < $1
ORDER BY updated_at ASC
LIMIT $2`
	rows, err := l.DB.QueryContext(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Export
	for rows.Next() {
		var (
			e      Export
			kind   string
			status string
		)
		if err := rows.Scan(
			&e.ID,
			&kind,
			&e.SubjectID,
			&e.StorageKey,
			&status,
			&e.Error,
			&e.SizeBytes,
			&e.Checksum,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		e.Kind = Kind(kind)
		e.Status = Status(status)
		out = append(out, e)
	}
	return out, rows.Err()
}

var _ Ledger = (*PGLedger)(nil)
