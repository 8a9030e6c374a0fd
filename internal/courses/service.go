package courses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service manages course enrollment.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// Enroll starts an enrollment for userID in courseID.
func (s *Service) Enroll(ctx context.Context, userID, courseID string) (Enrollment, error) {
	if _, err := s.Repo.GetCourse(ctx, courseID); err != nil {
		return Enrollment{}, err
	}
	e := Enrollment{
		ID:        uuid.NewString(),
		UserID:    userID,
		CourseID:  courseID,
		Status:    StatusInProgress,
		CreatedAt: s.now(),
	}
	if err := s.Repo.CreateEnrollment(ctx, e); err != nil {
		return Enrollment{}, err
	}
	return e, nil
}

// Finish moves an in-progress enrollment owned by userID to COMPLETED or FAILED.
func (s *Service) Finish(ctx context.Context, userID, enrollmentID string, status EnrollmentStatus) (Enrollment, error) {
	status = EnrollmentStatus(strings.ToUpper(strings.TrimSpace(string(status))))
	if !status.Terminal() {
		return Enrollment{}, fmt.Errorf("status %q: %w", status, ErrInvalidTransition)
	}
	e, err := s.Repo.GetEnrollment(ctx, enrollmentID)
	if err != nil {
		return Enrollment{}, err
	}
	if e.UserID != userID {
		return Enrollment{}, ErrNotFound
	}
	if e.Status != StatusInProgress {
		return Enrollment{}, fmt.Errorf("%s -> %s: %w", e.Status, status, ErrInvalidTransition)
	}
	if err := s.Repo.UpdateStatus(ctx, enrollmentID, status); err != nil {
		return Enrollment{}, err
	}
	e.Status = status
	return e, nil
}

// CreateCourse registers a course.
func (s *Service) CreateCourse(ctx context.Context, title string) (Course, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Course{}, fmt.Errorf("course title is required")
	}
	c := Course{ID: uuid.NewString(), Title: title}
	if err := s.Repo.CreateCourse(ctx, c); err != nil {
		return Course{}, err
	}
	return c, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
