package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"edujobs-backend/internal/shared/storage/object/local"
)

type refSet map[string]bool

func (r refSet) HasStorageKey(ctx context.Context, key string) (bool, error) {
	if key == "cv/broken.pdf" {
		return false, errors.New("db down")
	}
	return r[key], nil
}

func TestSweepReconcilesAndDeletes(t *testing.T) {
	dir := t.TempDir()
	store := local.New(dir)
	ledger := NewMemoryLedger()
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	old := now.Add(-time.Hour)

	for _, key := range []string{"cv/orphan.pdf", "cv/kept.pdf", "cv/fresh.pdf"} {
		if _, err := store.Put(ctx, key, "application/pdf", strings.NewReader("x")); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
	rows := []Export{
		{ID: "orphan", Kind: KindCV, StorageKey: "cv/orphan.pdf", Status: StatusFailed, UpdatedAt: old},
		{ID: "kept", Kind: KindCV, StorageKey: "cv/kept.pdf", Status: StatusPending, UpdatedAt: old},
		{ID: "fresh", Kind: KindCV, StorageKey: "cv/fresh.pdf", Status: StatusPending, UpdatedAt: now},
		{ID: "done", Kind: KindCV, StorageKey: "cv/done.pdf", Status: StatusCompleted, UpdatedAt: old},
		{ID: "missing", Kind: KindCertificate, StorageKey: "certificates/missing.pdf", Status: StatusPending, UpdatedAt: old},
		{ID: "broken", Kind: KindCV, StorageKey: "cv/broken.pdf", Status: StatusPending, UpdatedAt: old},
	}
	for _, row := range rows {
		if err := ledger.Begin(ctx, row); err != nil {
			t.Fatalf("Begin: %v", err)
		}
	}

	sweeper := &Sweeper{
		Store:  store,
		Ledger: ledger,
		References: map[Kind]ReferenceChecker{
			KindCV:          refSet{"cv/kept.pdf": true},
			KindCertificate: refSet{},
		},
		Grace: 15 * time.Minute,
		Now:   func() time.Time { return now },
	}
	res, err := sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if res.Scanned != 4 || res.Reconciled != 1 || res.Deleted != 2 || res.Errors != 1 {
		t.Fatalf("unexpected result %+v", res)
	}

	if _, err := os.Stat(filepath.Join(dir, "cv", "orphan.pdf")); !os.IsNotExist(err) {
		t.Fatalf("expected orphan deleted, got %v", err)
	}
	for _, name := range []string{"kept.pdf", "fresh.pdf"} {
		if _, err := os.Stat(filepath.Join(dir, "cv", name)); err != nil {
			t.Fatalf("expected %s kept: %v", name, err)
		}
	}

	want := map[string]Status{
		"orphan":  StatusSwept,
		"kept":    StatusCompleted,
		"fresh":   StatusPending,
		"done":    StatusCompleted,
		"missing": StatusSwept,
		"broken":  StatusPending,
	}
	for id, status := range want {
		row, _ := ledger.Get(id)
		if row.Status != status {
			t.Fatalf("%s: expected %s, got %s", id, status, row.Status)
		}
	}
}

func TestSweepSkipsUnknownKind(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()
	_ = ledger.Begin(ctx, Export{ID: "x", Kind: Kind("letters"), StorageKey: "letters/x.pdf", Status: StatusPending})

	sweeper := &Sweeper{
		Store:      local.New(t.TempDir()),
		Ledger:     ledger,
		References: map[Kind]ReferenceChecker{},
		Now:        time.Now,
	}
	res, err := sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if res.Errors != 1 || res.Deleted != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	sweeper := &Sweeper{
		Store:      local.New(t.TempDir()),
		Ledger:     NewMemoryLedger(),
		References: map[Kind]ReferenceChecker{},
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sweeper.Run(ctx, time.Hour) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("sweeper did not stop")
	}
}
