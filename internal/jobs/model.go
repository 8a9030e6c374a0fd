package jobs

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("job not found")
	ErrForbidden         = errors.New("forbidden")
	ErrAlreadyApplied    = errors.New("already applied")
	ErrProfileIncomplete = errors.New("profile incomplete")
	ErrInvalidInput      = errors.New("invalid input")
)

type Status string

const (
	StatusPublished Status = "PUBLISHED"
	StatusDraft     Status = "DRAFT"
)

type ApplicationStatus string

const (
	ApplicationApplied  ApplicationStatus = "APPLIED"
	ApplicationReviewed ApplicationStatus = "REVIEWED"
	ApplicationAccepted ApplicationStatus = "ACCEPTED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Job is a posting. Empty Location and Level mean unset; PaycheckMin and
// PaycheckMax of zero mean undisclosed.
type Job struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	CategoryID  string    `json:"categoryId,omitempty"`
	Category    string    `json:"category,omitempty"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	Level       string    `json:"level,omitempty"`
	Type        string    `json:"type"`
	WorkMode    string    `json:"workMode"`
	Status      Status    `json:"status"`
	PaycheckMin int64     `json:"paycheckMin,omitempty"`
	PaycheckMax int64     `json:"paycheckMax,omitempty"`
	Hired       int       `json:"hired"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Application struct {
	ID        string            `json:"id"`
	JobID     string            `json:"jobId"`
	UserID    string            `json:"userId"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

// JobStats is a job with its application count.
type JobStats struct {
	Job
	Applicants int `json:"applicants"`
}
