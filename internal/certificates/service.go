package certificates

import (
	"context"
	"fmt"
	"io"
	"time"

	"edujobs-backend/internal/export"
	"edujobs-backend/internal/render"
)

// Service issues completion certificates.
type Service struct {
	Enrollments EnrollmentReader
	Repo        Repo
	Runner      *export.Runner
	PDF         render.PDF
	// Rand feeds certificate tokens. Nil means crypto/rand.
	Rand io.Reader
	Now  func() time.Time
}

// Issue renders, stores and records a certificate for a completed enrollment.
func (s *Service) Issue(ctx context.Context, enrollmentID string) (Certificate, error) {
	rec, err := s.Enrollments.GetEnrollment(ctx, enrollmentID)
	if err != nil {
		return Certificate{}, err
	}
	return s.issue(ctx, rec)
}

// IssueForUser is Issue restricted to the enrollee. Other callers see the
// enrollment as missing.
func (s *Service) IssueForUser(ctx context.Context, userID, enrollmentID string) (Certificate, error) {
	rec, err := s.Enrollments.GetEnrollment(ctx, enrollmentID)
	if err != nil {
		return Certificate{}, err
	}
	if rec.UserID != userID {
		return Certificate{}, fmt.Errorf("enrollment %s: %w", enrollmentID, export.ErrNotFound)
	}
	return s.issue(ctx, rec)
}

func (s *Service) issue(ctx context.Context, rec EnrollmentRecord) (Certificate, error) {
	if rec.Status != StatusCompleted {
		return Certificate{}, fmt.Errorf("enrollment %s is %s: %w", rec.ID, rec.Status, export.ErrInvalidState)
	}
	token, err := export.NewToken(s.Rand)
	if err != nil {
		return Certificate{}, err
	}
	issuedAt := s.now()
	code := export.CertificateCode(token)
	doc := render.CertificateDocument(render.CertificateSource{
		RecipientName:  rec.RecipientName,
		RecipientEmail: rec.RecipientEmail,
		CourseTitle:    rec.CourseTitle,
		Code:           code,
		IssuedAt:       issuedAt,
	})

	var cert Certificate
	_, err = s.Runner.Run(ctx, export.Request{
		Kind:      export.KindCertificate,
		SubjectID: rec.ID,
		FileName:  export.FileName("certificate", token),
		Render: func(w io.Writer) error {
			return s.PDF.Write(w, doc, render.Info{
				Title:   "Certificate of Completion",
				Subject: rec.CourseTitle,
				Author:  code,
			})
		},
		Persist: func(ctx context.Context, f export.StoredFile) error {
			cert = Certificate{
				ID:           token.String(),
				EnrollmentID: rec.ID,
				UserID:       rec.UserID,
				Code:         code,
				FileURL:      f.URL,
				StorageKey:   f.Key,
				SizeBytes:    f.SizeBytes,
				IssuedAt:     issuedAt,
			}
			return s.Repo.Create(ctx, cert)
		},
	})
	if err != nil {
		return Certificate{}, err
	}
	return cert, nil
}

// List returns the user's certificates, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Certificate, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Verify looks a certificate up by its public code.
func (s *Service) Verify(ctx context.Context, code string) (Certificate, error) {
	return s.Repo.GetByCode(ctx, code)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
