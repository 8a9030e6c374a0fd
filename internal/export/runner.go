package export

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"edujobs-backend/internal/shared/metrics"
	"edujobs-backend/internal/shared/storage/object"
	"edujobs-backend/internal/shared/telemetry"
	"edujobs-backend/internal/shared/util"
)

const contentTypePDF = "application/pdf"

// Runner drives one export through render, write and persist, in that order.
type Runner struct {
	Store        object.ObjectStore
	Ledger       Ledger
	WriteTimeout time.Duration
	Now          func() time.Time
	NewID        func() string
}

// Run executes req. On success the file is durable, exactly one record
// references it and the ledger row is completed. A failed persist deletes
// the file again.
func (r *Runner) Run(ctx context.Context, req Request) (StoredFile, error) {
	start := r.now()
	kind := string(req.Kind)
	metrics.IncExportStarted(kind)

	file, stage, err := r.run(ctx, req)
	fields := map[string]any{
		"kind":        kind,
		"subject_id":  req.SubjectID,
		"duration_ms": r.now().Sub(start).Milliseconds(),
	}
	if err != nil {
		metrics.IncExportFailed(kind, stage)
		fields["stage"] = stage
		fields["error"] = err
		telemetry.Error("export.failed", fields)
		return StoredFile{}, err
	}

	metrics.IncExportCompleted(kind)
	metrics.ObserveExportDurationMs(float64(r.now().Sub(start).Milliseconds()))
	fields["export_id"] = file.ExportID
	fields["storage_key"] = file.Key
	fields["size_bytes"] = file.SizeBytes
	telemetry.Info("export.completed", fields)
	return file, nil
}

func (r *Runner) run(ctx context.Context, req Request) (StoredFile, string, error) {
	name, err := util.SanitizeFileName(req.FileName)
	if err != nil {
		return StoredFile{}, "render", fmt.Errorf("file name %q: %w: %w", req.FileName, ErrIOFailure, err)
	}
	if req.Render == nil || req.Persist == nil {
		return StoredFile{}, "render", fmt.Errorf("export %s: incomplete request: %w", req.Kind, ErrIOFailure)
	}

	var buf bytes.Buffer
	if err := req.Render(&buf); err != nil {
		return StoredFile{}, "render", fmt.Errorf("render %s: %w: %w", req.Kind, ErrIOFailure, err)
	}

	key := path.Join(string(req.Kind), name)
	now := r.now()
	row := Export{
		ID:         r.newID(),
		Kind:       req.Kind,
		SubjectID:  req.SubjectID,
		StorageKey: key,
		Status:     StatusPending,
		SizeBytes:  int64(buf.Len()),
		Checksum:   util.Checksum(buf.Bytes()),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := r.Ledger.Begin(ctx, row); err != nil {
		return StoredFile{}, "ledger", fmt.Errorf("record pending export: %w: %w", ErrPersistenceFailure, err)
	}

	size, err := r.write(ctx, key, &buf)
	if err != nil {
		r.finish(ctx, row.ID, StatusFailed, 0, err)
		return StoredFile{}, "write", fmt.Errorf("write %s: %w: %w", key, ErrIOFailure, err)
	}

	file := StoredFile{
		ExportID:  row.ID,
		Key:       key,
		URL:       URLFor(key),
		SizeBytes: size,
		Checksum:  row.Checksum,
	}
	if err := req.Persist(ctx, file); err != nil {
		if delErr := r.Store.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			telemetry.Warn("export.compensate_failed", map[string]any{
				"export_id":   row.ID,
				"storage_key": key,
				"error":       delErr,
			})
		}
		r.finish(ctx, row.ID, StatusFailed, size, err)
		return StoredFile{}, "persist", fmt.Errorf("persist %s: %w: %w", key, ErrPersistenceFailure, err)
	}

	r.finish(ctx, row.ID, StatusCompleted, size, nil)
	return file, "", nil
}

func (r *Runner) write(ctx context.Context, key string, buf *bytes.Buffer) (int64, error) {
	writeCtx := ctx
	if r.WriteTimeout > 0 {
		var cancel context.CancelFunc
		writeCtx, cancel = context.WithTimeout(ctx, r.WriteTimeout)
		defer cancel()
	}
	return r.Store.Put(writeCtx, key, contentTypePDF, buf)
}

// finish is best effort: a row left pending is reconciled by the sweeper.
func (r *Runner) finish(ctx context.Context, id string, status Status, size int64, cause error) {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	if err := r.Ledger.Finish(context.WithoutCancel(ctx), id, status, size, msg, r.now()); err != nil {
		telemetry.Warn("export.ledger_update_failed", map[string]any{
			"export_id": id,
			"status":    string(status),
			"error":     err,
		})
	}
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now().UTC()
	}
	return time.Now().UTC()
}

func (r *Runner) newID() string {
	if r.NewID != nil {
		return r.NewID()
	}
	return uuid.NewString()
}
