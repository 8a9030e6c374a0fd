package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const jobColumns = `j.id, j.company_id, COALESCE(j.category_id, ''), COALESCE(c.name, ''), j.slug, j.title,
       j.description, COALESCE(j.location, ''), COALESCE(j.level, ''), COALESCE(j.type, ''),
       COALESCE(j.work_mode, ''), j.status, j.paycheck_min, j.paycheck_max, j.hired, j.created_at, j.updated_at`

const jobFrom = `
FROM job_postings j
LEFT JOIN job_categories c ON c.id = j.category_id`

func (r *PGRepo) CreateCategory(ctx context.Context, cat Category) error {
	_, err := r.DB.ExecContext(ctx, `INSERT INTO job_categories (id, name) VALUES ($1, $2)`, cat.ID, cat.Name)
	return err
}

func (r *PGRepo) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM job_categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) CreateJob(ctx context.Context, job Job) error {
	const query = `
INSERT INTO job_postings (
    id, company_id, category_id, slug, title, description, location, level, type,
    work_mode, status, paycheck_min, paycheck_max, hired, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.DB.ExecContext(ctx, query,
		job.ID,
		job.CompanyID,
		nullString(job.CategoryID),
		job.Slug,
		job.Title,
		job.Description,
		nullString(job.Location),
		nullString(job.Level),
		nullString(job.Type),
		nullString(job.WorkMode),
		string(job.Status),
		nullInt(job.PaycheckMin),
		nullInt(job.PaycheckMax),
		job.Hired,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("slug %q taken: %w", job.Slug, ErrInvalidInput)
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	return r.getOne(ctx, `SELECT `+jobColumns+jobFrom+` WHERE j.id = $1`, jobID)
}

func (r *PGRepo) GetBySlug(ctx context.Context, slug string) (Job, error) {
	return r.getOne(ctx, `SELECT `+jobColumns+jobFrom+` WHERE j.slug = $1`, slug)
}

func (r *PGRepo) getOne(ctx context.Context, query, arg string) (Job, error) {
	job, err := scanJob(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

func (r *PGRepo) ListByCompany(ctx context.Context, companyID string) ([]JobStats, error) {
	query := `
SELECT ` + jobColumns + `, COUNT(a.id)` + jobFrom + `
LEFT JOIN applications a ON a.job_id = j.id
WHERE j.company_id = $1
GROUP BY j.id, c.name
ORDER BY COUNT(a.id) DESC, j.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []JobStats{}
	for rows.Next() {
		var (
			st       JobStats
			lo, hi sql.NullInt64
			status   string
		)
		err := rows.Scan(
			&st.ID, &st.CompanyID, &st.CategoryID, &st.Category, &st.Slug, &st.Title,
			&st.Description, &st.Location, &st.Level, &st.Type,
			&st.WorkMode, &status, &lo, &hi, &st.Hired, &st.CreatedAt, &st.UpdatedAt,
			&st.Applicants,
		)
		if err != nil {
			return nil, err
		}
		st.Status = Status(status)
		st.PaycheckMin = lo.Int64
		st.PaycheckMax = hi.Int64
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *PGRepo) CountApplications(ctx context.Context, jobID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications WHERE job_id = $1`, jobID).Scan(&n)
	return n, err
}

func (r *PGRepo) GetApplication(ctx context.Context, jobID, userID string) (Application, error) {
	const query = `
SELECT id, job_id, user_id, status, created_at
FROM applications
WHERE job_id = $1 AND user_id = $2`
	var (
		app    Application
		status string
	)
	err := r.DB.QueryRowContext(ctx, query, jobID, userID).Scan(&app.ID, &app.JobID, &app.UserID, &status, &app.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	app.Status = ApplicationStatus(status)
	return app, nil
}

func (r *PGRepo) CreateApplication(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (id, job_id, user_id, status, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query, app.ID, app.JobID, app.UserID, string(app.Status), app.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrAlreadyApplied
			case "23503":
				return ErrNotFound
			}
		}
		return err
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, jobID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM applications WHERE job_id = $1`, jobID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM job_postings WHERE id = $1`, jobID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(s scanner) (Job, error) {
	var (
		job      Job
		lo, hi sql.NullInt64
		status   string
	)
	err := s.Scan(
		&job.ID, &job.CompanyID, &job.CategoryID, &job.Category, &job.Slug, &job.Title,
		&job.Description, &job.Location, &job.Level, &job.Type,
		&job.WorkMode, &status, &lo, &hi, &job.Hired, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return Job{}, err
	}
	job.Status = Status(status)
	job.PaycheckMin = lo.Int64
	job.PaycheckMax = hi.Int64
	return job, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}

var _ Repo = (*PGRepo)(nil)
