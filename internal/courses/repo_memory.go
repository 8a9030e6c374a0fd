package courses

import (
	"context"
	"sync"
)

// UserLookup resolves enrollee display fields for the in-memory repo.
type UserLookup func(ctx context.Context, userID string) (email, name string, err error)

// MemoryRepo stores courses and enrollments in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu          sync.RWMutex
	courses     map[string]Course
	enrollments map[string]Enrollment
	users       UserLookup
}

// NewMemoryRepo constructs a MemoryRepo. users may be nil.
func NewMemoryRepo(users UserLookup) *MemoryRepo {
	return &MemoryRepo{
		courses:     make(map[string]Course),
		enrollments: make(map[string]Enrollment),
		users:       users,
	}
}

func (r *MemoryRepo) CreateCourse(ctx context.Context, course Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses[course.ID] = course
	return nil
}

func (r *MemoryRepo) GetCourse(ctx context.Context, courseID string) (Course, error) {
	if err := ctx.Err(); err != nil {
		return Course{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	course, ok := r.courses[courseID]
	if !ok {
		return Course{}, ErrNotFound
	}
	return course, nil
}

func (r *MemoryRepo) CreateEnrollment(ctx context.Context, e Enrollment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.enrollments {
		if existing.UserID == e.UserID && existing.CourseID == e.CourseID && !existing.Status.Terminal() {
			return ErrAlreadyEnrolled
		}
	}
	r.enrollments[e.ID] = e
	return nil
}

func (r *MemoryRepo) GetEnrollment(ctx context.Context, enrollmentID string) (Enrollment, error) {
	if err := ctx.Err(); err != nil {
		return Enrollment{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.enrollments[enrollmentID]
	if !ok {
		return Enrollment{}, ErrNotFound
	}
	return e, nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, enrollmentID string, status EnrollmentStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.enrollments[enrollmentID]
	if !ok {
		return ErrNotFound
	}
	e.Status = status
	r.enrollments[enrollmentID] = e
	return nil
}

func (r *MemoryRepo) GetEnrollmentDetail(ctx context.Context, enrollmentID string) (EnrollmentDetail, error) {
	e, err := r.GetEnrollment(ctx, enrollmentID)
	if err != nil {
		return EnrollmentDetail{}, err
	}
	course, err := r.GetCourse(ctx, e.CourseID)
	if err != nil {
		return EnrollmentDetail{}, err
	}
	detail := EnrollmentDetail{Enrollment: e, CourseTitle: course.Title}
	if r.users != nil {
		email, name, err := r.users(ctx, e.UserID)
		if err != nil {
			return EnrollmentDetail{}, err
		}
		detail.UserEmail = email
		detail.ProfileName = name
	}
	return detail, nil
}

var _ Repo = (*MemoryRepo)(nil)
