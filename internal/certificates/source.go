package certificates

import (
	"context"
	"errors"
	"fmt"

	"edujobs-backend/internal/courses"
	"edujobs-backend/internal/export"
)

// EnrollmentReader loads the enrollment a certificate is issued for. A
// missing enrollment yields export.ErrNotFound.
type EnrollmentReader interface {
	GetEnrollment(ctx context.Context, enrollmentID string) (EnrollmentRecord, error)
}

// DetailReader is the courses capability the enrollment source needs.
type DetailReader interface {
	GetEnrollmentDetail(ctx context.Context, enrollmentID string) (courses.EnrollmentDetail, error)
}

// CourseSource reads enrollments from the courses repository.
type CourseSource struct {
	Courses DetailReader
}

func (s CourseSource) GetEnrollment(ctx context.Context, enrollmentID string) (EnrollmentRecord, error) {
	d, err := s.Courses.GetEnrollmentDetail(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, courses.ErrNotFound) {
			return EnrollmentRecord{}, fmt.Errorf("enrollment %s: %w", enrollmentID, export.ErrNotFound)
		}
		return EnrollmentRecord{}, fmt.Errorf("load enrollment %s: %w", enrollmentID, err)
	}
	return EnrollmentRecord{
		ID:             d.ID,
		UserID:         d.UserID,
		Status:         string(d.Status),
		RecipientName:  d.ProfileName,
		RecipientEmail: d.UserEmail,
		CourseTitle:    d.CourseTitle,
	}, nil
}
