package export

import "errors"

// Export failures. All are terminal; the runner never retries.
var (
	// ErrNotFound indicates the export subject does not exist.
	ErrNotFound = errors.New("export subject not found")

	// ErrInvalidState indicates the subject is not eligible for export.
	ErrInvalidState = errors.New("export subject in invalid state")

	// ErrIOFailure indicates rendering or writing the file failed.
	ErrIOFailure = errors.New("export io failure")

	// ErrPersistenceFailure indicates recording the export failed.
	ErrPersistenceFailure = errors.New("export persistence failure")
)
