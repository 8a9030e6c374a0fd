package cvs

import (
	"context"
	"io"
	"time"

	"edujobs-backend/internal/export"
	"edujobs-backend/internal/render"
)

// Service exports CVs.
type Service struct {
	Source SourceReader
	Repo   Repo
	Runner *export.Runner
	PDF    render.PDF
	// Rand feeds file tokens. Nil means crypto/rand.
	Rand io.Reader
	Now  func() time.Time
}

// Export renders the user's CV, stores it and records it. It returns the
// relative URL of the new file.
func (s *Service) Export(ctx context.Context, userID string) (string, error) {
	src, err := s.Source.GetCVSource(ctx, userID)
	if err != nil {
		return "", err
	}
	token, err := export.NewToken(s.Rand)
	if err != nil {
		return "", err
	}

	doc := render.CVDocument(src)
	file, err := s.Runner.Run(ctx, export.Request{
		Kind:      export.KindCV,
		SubjectID: userID,
		FileName:  export.FileName("cv", token),
		Render: func(w io.Writer) error {
			return s.PDF.Write(w, doc, render.Info{
				Title:   doc.Lines()[0],
				Subject: "Curriculum Vitae",
				Author:  src.Email,
			})
		},
		Persist: func(ctx context.Context, f export.StoredFile) error {
			return s.Repo.Create(ctx, CV{
				ID:         token.String(),
				UserID:     userID,
				FileURL:    f.URL,
				StorageKey: f.Key,
				SizeBytes:  f.SizeBytes,
				CreatedAt:  s.now(),
			})
		},
	})
	if err != nil {
		return "", err
	}
	return file.URL, nil
}

// List returns the user's export history, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]CV, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
