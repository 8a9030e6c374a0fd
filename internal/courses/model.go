package courses

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid enrollment transition")
	ErrAlreadyEnrolled   = errors.New("already enrolled")
)

type EnrollmentStatus string

const (
	StatusInProgress EnrollmentStatus = "IN_PROGRESS"
	StatusCompleted  EnrollmentStatus = "COMPLETED"
	StatusFailed     EnrollmentStatus = "FAILED"
)

// Terminal reports whether no further transition is allowed.
func (s EnrollmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

type Course struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type Enrollment struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	CourseID  string           `json:"courseId"`
	Status    EnrollmentStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
}

// EnrollmentDetail joins an enrollment with the enrollee and the course.
type EnrollmentDetail struct {
	Enrollment
	UserEmail   string
	ProfileName string
	CourseTitle string
}
