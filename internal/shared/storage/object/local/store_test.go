package local

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"edujobs-backend/internal/shared/storage/object"
)

func TestPutWritesFileAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	n, err := store.Put(context.Background(), "cv/cv-1.pdf", "application/pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if n != 8 {
		t.Fatalf("expected 8 bytes, got %d", n)
	}
	got, err := os.ReadFile(filepath.Join(dir, "cv", "cv-1.pdf"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "%PDF-1.4" {
		t.Fatalf("unexpected content %q", got)
	}
	entries, _ := os.ReadDir(filepath.Join(dir, "cv"))
	if len(entries) != 1 {
		t.Fatalf("expected only the final file, got %d entries", len(entries))
	}
}

func TestPutIsWriteOnce(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	if _, err := store.Put(ctx, "cv/a.pdf", "application/pdf", strings.NewReader("first")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	_, err := store.Put(ctx, "cv/a.pdf", "application/pdf", strings.NewReader("second"))
	if !errors.Is(err, object.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}

	rc, err := store.Open(ctx, "cv/a.pdf")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != "first" {
		t.Fatalf("expected original content, got %q", body)
	}
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestPutFailureLeavesNothingVisible(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	body := io.MultiReader(strings.NewReader("partial"), failingReader{})
	if _, err := store.Put(context.Background(), "certificates/c.pdf", "application/pdf", body); err == nil {
		t.Fatalf("expected error")
	}
	entries, err := os.ReadDir(filepath.Join(dir, "certificates"))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty directory, got %d entries", len(entries))
	}
}

func TestPutHonoursCancelledContext(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Put(ctx, "cv/x.pdf", "application/pdf", strings.NewReader("data"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "cv", "x.pdf")); !os.IsNotExist(err) {
		t.Fatalf("expected no file, got %v", err)
	}
}

func TestPutRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	for _, key := range []string{"../x.pdf", "/etc/passwd", "cv/../../x.pdf"} {
		if _, err := store.Put(context.Background(), key, "application/pdf", strings.NewReader("x")); err == nil {
			t.Fatalf("%q: expected error", key)
		}
	}
}

func TestOpenMissingReturnsNotFound(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "cv/none.pdf"); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	ctx := context.Background()

	if _, err := store.Put(ctx, "cv/d.pdf", "application/pdf", bytes.NewReader([]byte("x"))); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete(ctx, "cv/d.pdf"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, "cv/d.pdf"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "cv", "d.pdf")); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, got %v", err)
	}
}

func TestConcurrentPutsToDistinctKeys(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := "cv/cv-" + string(rune('a'+i)) + ".pdf"
			if _, err := store.Put(context.Background(), key, "application/pdf", strings.NewReader(key)); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("Put: %v", err)
	}
	entries, _ := os.ReadDir(filepath.Join(dir, "cv"))
	if len(entries) != 16 {
		t.Fatalf("expected 16 files, got %d", len(entries))
	}
}
