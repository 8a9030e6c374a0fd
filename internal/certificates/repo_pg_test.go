package certificates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cert := Certificate{
		ID:           "c1",
		EnrollmentID: "e1",
		UserID:       "u1",
		Code:         "CERT-ABCDEF12",
		FileURL:      "/uploads/certificates/certificate-c1.pdf",
		StorageKey:   "certificates/certificate-c1.pdf",
		SizeBytes:    2048,
		IssuedAt:     time.Now().UTC(),
	}
	mock.ExpectExec("INSERT INTO certificates").
		WithArgs(cert.ID, cert.EnrollmentID, cert.UserID, cert.Code, cert.FileURL, cert.StorageKey, cert.SizeBytes, cert.IssuedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := (&PGRepo{DB: db}).Create(context.Background(), cert); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByCodeNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("FROM certificates").
		WithArgs("CERT-00000000").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = (&PGRepo{DB: db}).GetByCode(context.Background(), "CERT-00000000")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	issued := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "enrollment_id", "user_id", "code", "file_url", "storage_key", "size_bytes", "issued_at"}).
		AddRow("c1", "e1", "u1", "CERT-AAAAAAAA", "/uploads/certificates/a.pdf", "certificates/a.pdf", int64(10), issued)
	mock.ExpectQuery("FROM certificates").
		WithArgs("u1", 20, 0).
		WillReturnRows(rows)

	got, err := (&PGRepo{DB: db}).ListByUser(context.Background(), "u1", 0, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 1 || got[0].Code != "CERT-AAAAAAAA" || !got[0].IssuedAt.Equal(issued) {
		t.Fatalf("unexpected rows %+v", got)
	}
}
