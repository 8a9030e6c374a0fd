package export

import (
	"context"
	"io"
	"time"
)

// Kind names an export pipeline. It doubles as the upload sub-directory.
type Kind string

const (
	KindCV          Kind = "cv"
	KindCertificate Kind = "certificates"
)

// Status is the ledger state of an export file.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusSwept     Status = "swept"
)

// Export is a ledger row. It is written before the file so an interrupted
// export always leaves a trace the sweeper can reconcile.
type Export struct {
	ID         string
	Kind       Kind
	SubjectID  string
	StorageKey string
	Status     Status
	Error      string
	SizeBytes  int64
	Checksum   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StoredFile describes a fully written export file.
type StoredFile struct {
	ExportID  string
	Key       string
	URL       string
	SizeBytes int64
	Checksum  string
}

// Request is one export invocation.
type Request struct {
	Kind      Kind
	SubjectID string
	FileName  string
	// Render writes the document. It runs before any file exists.
	Render func(w io.Writer) error
	// Persist inserts the file record. It runs only after the file is durable.
	Persist func(ctx context.Context, file StoredFile) error
}

// URLFor returns the public relative URL of a storage key.
func URLFor(key string) string {
	return "/uploads/" + key
}
