package db

import (
	"context"
	"io/fs"
	"strings"
	"testing"
)

func TestEmbeddedMigrationsHaveGooseMarkers(t *testing.T) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("expected embedded migrations")
	}
	for _, entry := range entries {
		body, err := fs.ReadFile(migrationFiles, "migrations/"+entry.Name())
		if err != nil {
			t.Fatalf("read %s: %v", entry.Name(), err)
		}
		text := string(body)
		if !strings.Contains(text, "-- +goose Up") || !strings.Contains(text, "-- +goose Down") {
			t.Fatalf("%s missing goose markers", entry.Name())
		}
	}
}

func TestInitMigrationDeclaresExportTables(t *testing.T) {
	body, err := fs.ReadFile(migrationFiles, "migrations/00001_init.sql")
	if err != nil {
		t.Fatalf("read init: %v", err)
	}
	for _, table := range []string{"cvs", "certificates", "exports", "applications"} {
		if !strings.Contains(string(body), "CREATE TABLE "+table+" (") {
			t.Fatalf("expected table %s", table)
		}
	}
	if !strings.Contains(string(body), "UNIQUE (job_id, user_id)") {
		t.Fatalf("expected one application per job and user")
	}
}

func TestRunMigrationsNilIsNoop(t *testing.T) {
	if err := RunMigrations(context.Background(), nil); err != nil {
		t.Fatalf("expected nil db to be a no-op, got %v", err)
	}
}
