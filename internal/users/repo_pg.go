package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, role, created_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  role = EXCLUDED.role`
	_, err := r.DB.ExecContext(ctx, query, user.ID, user.Email, string(user.Role))
	return err
}

func (r *PGRepo) SaveProfile(ctx context.Context, userID string, p Profile) error {
	const query = `
INSERT INTO profiles (user_id, name, bio, gender, dob, company_address, company_website, picture_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (user_id) DO UPDATE SET
  name = EXCLUDED.name,
  bio = EXCLUDED.bio,
  gender = EXCLUDED.gender,
  dob = EXCLUDED.dob,
  company_address = EXCLUDED.company_address,
  company_website = EXCLUDED.company_website,
  picture_url = EXCLUDED.picture_url`
	_, err := r.DB.ExecContext(ctx, query,
		userID,
		nullableString(p.Name),
		nullableString(p.Bio),
		nullableString(p.Gender),
		p.DOB,
		nullableString(p.CompanyAddress),
		nullableString(p.CompanyWebsite),
		nullableString(p.PictureURL),
	)
	return err
}

func (r *PGRepo) AddSkill(ctx context.Context, userID string, skill Skill) error {
	const query = `
INSERT INTO skills (id, user_id, name, position)
VALUES ($1, $2, $3, (SELECT COALESCE(MAX(position), 0) + 1 FROM skills WHERE user_id = $2))`
	_, err := r.DB.ExecContext(ctx, query, skill.ID, userID, skill.Name)
	return err
}

func (r *PGRepo) AddExperience(ctx context.Context, userID string, exp Experience) error {
	const query = `
INSERT INTO experiences (id, user_id, title, company, start_date, end_date)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query, exp.ID, userID, exp.Title, exp.Company, exp.StartDate, exp.EndDate)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	return getUser(ctx, r.DB, userID)
}

func (r *PGRepo) GetWithProfile(ctx context.Context, userID string) (User, *Profile, error) {
	user, err := getUser(ctx, r.DB, userID)
	if err != nil {
		return User{}, nil, err
	}
	profile, err := getProfile(ctx, r.DB, userID)
	if err != nil {
		return User{}, nil, err
	}
	return user, profile, nil
}

// GetAggregate reads the user, profile, skills and experiences from one
// read-only snapshot.
func (r *PGRepo) GetAggregate(ctx context.Context, userID string) (Aggregate, error) {
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return Aggregate{}, err
	}
	defer tx.Rollback()

	user, err := getUser(ctx, tx, userID)
	if err != nil {
		return Aggregate{}, err
	}
	agg := Aggregate{User: user}
	if agg.Profile, err = getProfile(ctx, tx, userID); err != nil {
		return Aggregate{}, err
	}
	if agg.Skills, err = listSkills(ctx, tx, userID); err != nil {
		return Aggregate{}, err
	}
	if agg.Experiences, err = listExperiences(ctx, tx, userID); err != nil {
		return Aggregate{}, err
	}
	if err := tx.Commit(); err != nil {
		return Aggregate{}, err
	}
	return agg, nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getUser(ctx context.Context, q queryer, userID string) (User, error) {
	const query = `
SELECT id, email, role, created_at
FROM users
WHERE id = $1
LIMIT 1`
	var (
		user User
		role string
	)
	err := q.QueryRowContext(ctx, query, userID).Scan(&user.ID, &user.Email, &role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.Role = Role(role)
	return user, nil
}

func getProfile(ctx context.Context, q queryer, userID string) (*Profile, error) {
	const query = `
SELECT p.name, p.bio, p.gender, p.dob, p.company_address, p.company_website, p.picture_url,
       p.total_jobs, p.total_hired, p.total_applicants, v.status
FROM profiles p
LEFT JOIN verifications v ON v.user_id = p.user_id
WHERE p.user_id = $1`
	var (
		p                                         Profile
		name, bio, gender, address, site, picture sql.NullString
		verification                              sql.NullString
		dob                                       sql.NullTime
	)
	err := q.QueryRowContext(ctx, query, userID).Scan(
		&name, &bio, &gender, &dob, &address, &site, &picture,
		&p.TotalJobs, &p.TotalHired, &p.TotalApplicants, &verification,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	p.Name = name.String
	p.Bio = bio.String
	p.Gender = gender.String
	p.CompanyAddress = address.String
	p.CompanyWebsite = site.String
	p.PictureURL = picture.String
	p.Verification = verification.String
	if dob.Valid {
		d := dob.Time
		p.DOB = &d
	}
	return &p, nil
}

func listSkills(ctx context.Context, q queryer, userID string) ([]Skill, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name FROM skills WHERE user_id = $1 ORDER BY position ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Skill
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func listExperiences(ctx context.Context, q queryer, userID string) ([]Experience, error) {
	const query = `
SELECT id, title, company, start_date, end_date
FROM experiences
WHERE user_id = $1
ORDER BY start_date DESC NULLS LAST`
	rows, err := q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Experience
	for rows.Next() {
		var (
			e          Experience
			start, end sql.NullTime
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.Company, &start, &end); err != nil {
			return nil, err
		}
		if start.Valid {
			t := start.Time
			e.StartDate = &t
		}
		if end.Valid {
			t := end.Time
			e.EndDate = &t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
