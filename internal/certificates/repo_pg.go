package certificates

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const certificateColumns = `id, enrollment_id, user_id, code, file_url, storage_key, size_bytes, issued_at`

// Create inserts a certificate.
func (r *PGRepo) Create(ctx context.Context, cert Certificate) error {
	const query = `
INSERT INTO certificates (` + certificateColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		cert.ID,
		cert.EnrollmentID,
		cert.UserID,
		cert.Code,
		cert.FileURL,
		cert.StorageKey,
		cert.SizeBytes,
		cert.IssuedAt,
	)
	return err
}

// ListByUser lists certificates ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Certificate, error) {
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
SELECT ` + certificateColumns + `
FROM certificates
WHERE user_id = $1
ORDER BY issued_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Certificate{}
	for rows.Next() {
		cert, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cert)
	}
	return out, rows.Err()
}

// GetByCode loads a certificate by its public code.
func (r *PGRepo) GetByCode(ctx context.Context, code string) (Certificate, error) {
	const query = `
SELECT ` + certificateColumns + `
FROM certificates
WHERE code = $1`
	cert, err := scanCertificate(r.DB.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Certificate{}, ErrNotFound
		}
		return Certificate{}, err
	}
	return cert, nil
}

// HasStorageKey reports whether a certificate references key.
func (r *PGRepo) HasStorageKey(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM certificates WHERE storage_key = $1)`, key).Scan(&exists)
	return exists, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCertificate(s scanner) (Certificate, error) {
	var cert Certificate
	err := s.Scan(
		&cert.ID,
		&cert.EnrollmentID,
		&cert.UserID,
		&cert.Code,
		&cert.FileURL,
		&cert.StorageKey,
		&cert.SizeBytes,
		&cert.IssuedAt,
	)
	return cert, err
}

var _ Repo = (*PGRepo)(nil)
