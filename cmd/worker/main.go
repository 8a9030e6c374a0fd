package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edujobs-backend/internal/bootstrap"
	"edujobs-backend/internal/export"
	"edujobs-backend/internal/shared/config"
	"edujobs-backend/internal/shared/telemetry"
)

// sweeper is the part of export.Sweeper the worker drives.
type sweeper interface {
	Sweep(ctx context.Context) (export.SweepResult, error)
	Run(ctx context.Context, interval time.Duration) error
}

func main() {
	once := len(os.Args) > 1 && os.Args[1] == "once"
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}
	defer app.Close()

	if err := run(ctx, app.Sweeper, cfg.SweepInterval, once); err != nil {
		log.Fatalf("worker: %v", err)
	}
}

func run(ctx context.Context, s sweeper, interval time.Duration, once bool) error {
	if once {
		res, err := s.Sweep(ctx)
		if err != nil {
			return err
		}
		telemetry.Info("worker.sweep.done", map[string]any{"scanned": res.Scanned, "reconciled": res.Reconciled, "deleted": res.Deleted, "errors": res.Errors})
		return nil
	}

	telemetry.Info("worker.started", map[string]any{"interval": interval.String()})
	err := s.Run(ctx, interval)
	if errors.Is(err, context.Canceled) {
		telemetry.Info("worker.stopped", nil)
		return nil
	}
	return err
}
