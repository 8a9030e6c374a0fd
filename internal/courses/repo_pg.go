package courses

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) CreateCourse(ctx context.Context, course Course) error {
	_, err := r.DB.ExecContext(ctx, `INSERT INTO courses (id, title) VALUES ($1, $2)`, course.ID, course.Title)
	return err
}

func (r *PGRepo) GetCourse(ctx context.Context, courseID string) (Course, error) {
	var c Course
	err := r.DB.QueryRowContext(ctx, `SELECT id, title FROM courses WHERE id = $1`, courseID).Scan(&c.ID, &c.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return Course{}, ErrNotFound
	}
	return c, err
}

func (r *PGRepo) CreateEnrollment(ctx context.Context, e Enrollment) error {
	const query = `
INSERT INTO enrollments (id, user_id, course_id, status, created_at)
SELECT $1, $2, $3, $4, $5
WHERE NOT EXISTS (
    SELECT 1 FROM enrollments
    WHERE user_id = $2 AND course_id = $3 AND status = 'IN_PROGRESS'
)`
	res, err := r.DB.ExecContext(ctx, query, e.ID, e.UserID, e.CourseID, string(e.Status), e.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrNotFound
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyEnrolled
	}
	return nil
}

func (r *PGRepo) GetEnrollment(ctx context.Context, enrollmentID string) (Enrollment, error) {
	const query = `
SELECT id, user_id, course_id, status, created_at
FROM enrollments
WHERE id = $1`
	var (
		e      Enrollment
		status string
	)
	err := r.DB.QueryRowContext(ctx, query, enrollmentID).Scan(&e.ID, &e.UserID, &e.CourseID, &status, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Enrollment{}, ErrNotFound
		}
		return Enrollment{}, err
	}
	e.Status = EnrollmentStatus(status)
	return e, nil
}

func (r *PGRepo) UpdateStatus(ctx context.Context, enrollmentID string, status EnrollmentStatus) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE enrollments SET status = $2 WHERE id = $1`, enrollmentID, string(status))
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
	return nil
}

func (r *PGRepo) GetEnrollmentDetail(ctx context.Context, enrollmentID string) (EnrollmentDetail, error) {
	const query = `
SELECT e.id, e.user_id, e.course_id, e.status, e.created_at, u.email, COALESCE(p.name, ''), c.title
FROM enrollments e
JOIN users u ON u.id = e.user_id
JOIN courses c ON c.id = e.course_id
LEFT JOIN profiles p ON p.user_id = e.user_id
WHERE e.id = $1`
	var (
		d      EnrollmentDetail
		status string
	)
	err := r.DB.QueryRowContext(ctx, query, enrollmentID).Scan(
		&d.ID,
		&d.UserID,
		&d.CourseID,
		&status,
		&d.CreatedAt,
		&d.UserEmail,
		&d.ProfileName,
		&d.CourseTitle,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return EnrollmentDetail{}, ErrNotFound
		}
		return EnrollmentDetail{}, err
	}
	d.Status = EnrollmentStatus(status)
	return d, nil
}

var _ Repo = (*PGRepo)(nil)
