package certificates

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"edujobs-backend/internal/courses"
	"edujobs-backend/internal/export"
	"edujobs-backend/internal/render"
	"edujobs-backend/internal/shared/storage/object/local"
)

var fixedNow = time.Date(2024, time.March, 9, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc     *Service
	repo    *MemoryRepo
	courses *courses.MemoryRepo
	ledger  *export.MemoryLedger
	dir     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	lookup := func(ctx context.Context, userID string) (string, string, error) {
		switch userID {
		case "ada":
			return "ada@x.com", "Ada Lovelace", nil
		case "bob":
			return "bob@x.com", "", nil
		}
		return "", "", courses.ErrNotFound
	}
	courseRepo := courses.NewMemoryRepo(lookup)
	repo := NewMemoryRepo()
	ledger := export.NewMemoryLedger()
	clock := func() time.Time { return fixedNow }
	svc := &Service{
		Enrollments: CourseSource{Courses: courseRepo},
		Repo:        repo,
		Runner:      &export.Runner{Store: local.New(dir), Ledger: ledger, WriteTimeout: time.Second, Now: clock},
		PDF:         render.PDF{Now: clock},
		Now:         clock,
	}
	return &fixture{svc: svc, repo: repo, courses: courseRepo, ledger: ledger, dir: dir}
}

func (f *fixture) enroll(t *testing.T, id, userID string, status courses.EnrollmentStatus) {
	t.Helper()
	ctx := context.Background()
	if err := f.courses.CreateCourse(ctx, courses.Course{ID: "go101", Title: "Go Basics"}); err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	if err := f.courses.CreateEnrollment(ctx, courses.Enrollment{ID: id, UserID: userID, CourseID: "go101", Status: courses.StatusInProgress, CreatedAt: fixedNow}); err != nil {
		t.Fatalf("CreateEnrollment: %v", err)
	}
	if status != courses.StatusInProgress {
		if err := f.courses.UpdateStatus(ctx, id, status); err != nil {
			t.Fatalf("UpdateStatus: %v", err)
		}
	}
}

func TestIssueCompletedEnrollment(t *testing.T) {
	f := newFixture(t)
	f.enroll(t, "e1", "ada", courses.StatusCompleted)

	cert, err := f.svc.Issue(context.Background(), "e1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !strings.HasPrefix(cert.Code, "CERT-") || len(cert.Code) != len("CERT-")+8 || cert.Code != strings.ToUpper(cert.Code) {
		t.Fatalf("unexpected code %q", cert.Code)
	}
	if !strings.HasPrefix(cert.FileURL, "/uploads/certificates/certificate-") {
		t.Fatalf("unexpected url %q", cert.FileURL)
	}
	if cert.EnrollmentID != "e1" || cert.UserID != "ada" || !cert.IssuedAt.Equal(fixedNow) {
		t.Fatalf("unexpected record %+v", cert)
	}

	body, err := os.ReadFile(filepath.Join(f.dir, filepath.FromSlash(cert.StorageKey)))
	if err != nil {
		t.Fatalf("expected file: %v", err)
	}
	if cert.SizeBytes != int64(len(body)) {
		t.Fatalf("size mismatch: record %d file %d", cert.SizeBytes, len(body))
	}
	if pages, err := render.PageCount(body); err != nil || pages != 1 {
		t.Fatalf("expected single page pdf, got %d (%v)", pages, err)
	}

	got, err := f.repo.GetByCode(context.Background(), cert.Code)
	if err != nil || got.ID != cert.ID {
		t.Fatalf("GetByCode: %+v %v", got, err)
	}
}

func TestCourseSourceMapsDetail(t *testing.T) {
	f := newFixture(t)
	f.enroll(t, "e2", "bob", courses.StatusCompleted)

	rec, err := f.svc.Enrollments.GetEnrollment(context.Background(), "e2")
	if err != nil {
		t.Fatalf("GetEnrollment: %v", err)
	}
	want := EnrollmentRecord{ID: "e2", UserID: "bob", Status: StatusCompleted, RecipientEmail: "bob@x.com", CourseTitle: "Go Basics"}
	if rec != want {
		t.Fatalf("expected %+v, got %+v", want, rec)
	}
}

func TestIssueRejectsIncompleteEnrollment(t *testing.T) {
	for _, status := range []courses.EnrollmentStatus{courses.StatusInProgress, courses.StatusFailed} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(t)
			f.enroll(t, "e1", "ada", status)

			_, err := f.svc.Issue(context.Background(), "e1")
			if !errors.Is(err, export.ErrInvalidState) {
				t.Fatalf("expected ErrInvalidState, got %v", err)
			}
			assertNothingWritten(t, f)
		})
	}
}

func TestIssueUnknownEnrollment(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Issue(context.Background(), "missing")
	if !errors.Is(err, export.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	assertNothingWritten(t, f)
}

func TestIssueForUserHidesForeignEnrollment(t *testing.T) {
	f := newFixture(t)
	f.enroll(t, "e1", "ada", courses.StatusCompleted)

	_, err := f.svc.IssueForUser(context.Background(), "bob", "e1")
	if !errors.Is(err, export.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	assertNothingWritten(t, f)

	if _, err := f.svc.IssueForUser(context.Background(), "ada", "e1"); err != nil {
		t.Fatalf("IssueForUser owner: %v", err)
	}
}

func TestReissueCreatesSecondCertificate(t *testing.T) {
	f := newFixture(t)
	f.enroll(t, "e1", "ada", courses.StatusCompleted)

	first, err := f.svc.Issue(context.Background(), "e1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	second, err := f.svc.Issue(context.Background(), "e1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if first.Code == second.Code || first.FileURL == second.FileURL {
		t.Fatalf("expected distinct certificates, got %+v and %+v", first, second)
	}
	rows, err := f.svc.List(context.Background(), "ada", 0, 0)
	if err != nil || len(rows) != 2 {
		t.Fatalf("expected 2 certificates, got %d (%v)", len(rows), err)
	}
}

func TestIssueIsDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{0x5a}, 16)
	var outputs [][]byte
	for i := 0; i < 2; i++ {
		f := newFixture(t)
		f.enroll(t, "e1", "ada", courses.StatusCompleted)
		f.svc.Rand = bytes.NewReader(seed)

		cert, err := f.svc.Issue(context.Background(), "e1")
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}
		body, err := os.ReadFile(filepath.Join(f.dir, filepath.FromSlash(cert.StorageKey)))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		outputs = append(outputs, body)
	}
	if !bytes.Equal(outputs[0], outputs[1]) {
		t.Fatal("expected identical bytes for identical inputs")
	}
}

type failingRepo struct {
	*MemoryRepo
}

func (failingRepo) Create(ctx context.Context, cert Certificate) error {
	return errors.New("insert failed")
}

func TestIssuePersistFailureRemovesFile(t *testing.T) {
	f := newFixture(t)
	f.enroll(t, "e1", "ada", courses.StatusCompleted)
	f.svc.Repo = failingRepo{f.repo}

	_, err := f.svc.Issue(context.Background(), "e1")
	if !errors.Is(err, export.ErrPersistenceFailure) {
		t.Fatalf("expected ErrPersistenceFailure, got %v", err)
	}
	assertNothingWritten(t, f)
}

func assertNothingWritten(t *testing.T, f *fixture) {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(f.dir, "certificates"))
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".pdf") {
			t.Fatalf("unexpected file %s", e.Name())
		}
	}
	rows, err := f.repo.ListByUser(context.Background(), "ada", 0, 0)
	if err != nil || len(rows) != 0 {
		t.Fatalf("expected no records, got %d (%v)", len(rows), err)
	}
}
