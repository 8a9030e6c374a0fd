package certificates

import (
	"errors"
	"time"
)

// ErrNotFound is returned by lookups for unknown certificates.
var ErrNotFound = errors.New("certificate not found")

// StatusCompleted is the only enrollment status a certificate is issued for.
const StatusCompleted = "COMPLETED"

// Certificate is the record of one issued certificate file.
type Certificate struct {
	ID           string    `json:"id"`
	EnrollmentID string    `json:"enrollmentId"`
	UserID       string    `json:"userId"`
	Code         string    `json:"certificateCode"`
	FileURL      string    `json:"fileUrl"`
	StorageKey   string    `json:"-"`
	SizeBytes    int64     `json:"sizeBytes"`
	IssuedAt     time.Time `json:"issuedAt"`
}

// EnrollmentRecord is the snapshot a certificate is rendered from.
type EnrollmentRecord struct {
	ID             string
	UserID         string
	Status         string
	RecipientName  string
	RecipientEmail string
	CourseTitle    string
}
