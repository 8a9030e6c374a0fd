package main

// Run database migrations:
//   go run ./cmd/migrate [up|down|status]

import (
	"context"
	"flag"
	"log"
	"os"

	"edujobs-backend/internal/shared/config"
	"edujobs-backend/internal/shared/storage/db"
)

func main() {
	flag.Parse()
	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "up"
	}

	cfg := config.Load()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	database, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := run(ctx, cmd, database); err != nil {
		log.Printf("migrate %s failed: %v", cmd, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, database *db.DB) error {
	switch cmd {
	case "up":
		return db.RunMigrations(ctx, database.DB)
	case "down":
		return db.Rollback(ctx, database.DB)
	case "status":
		return db.Status(ctx, database.DB)
	default:
		log.Printf("unknown command %q, expected up, down or status", cmd)
		os.Exit(2)
		return nil
	}
}
