package object

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrExists is returned by Put when the key is already taken. Objects are write-once.
	ErrExists = errors.New("object already exists")
	// ErrNotFound is returned by Open for unknown keys.
	ErrNotFound = errors.New("object not found")
)

// ObjectStore defines the contract for saving and retrieving binary objects.
// Put must never expose a partially written object under key.
type ObjectStore interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// ContextReader fails reads once ctx is done so a stalled copy honours deadlines.
type ContextReader struct {
	Ctx context.Context
	R   io.Reader
}

func (c ContextReader) Read(p []byte) (int, error) {
	if err := c.Ctx.Err(); err != nil {
		return 0, err
	}
	return c.R.Read(p)
}
