package courses

import "context"

// Repo defines persistence operations for courses and enrollments.
type Repo interface {
	CreateCourse(ctx context.Context, course Course) error
	GetCourse(ctx context.Context, courseID string) (Course, error)
	CreateEnrollment(ctx context.Context, e Enrollment) error
	GetEnrollment(ctx context.Context, enrollmentID string) (Enrollment, error)
	UpdateStatus(ctx context.Context, enrollmentID string, status EnrollmentStatus) error
	// GetEnrollmentDetail reads enrollment, enrollee and course together.
	GetEnrollmentDetail(ctx context.Context, enrollmentID string) (EnrollmentDetail, error)
}
