package export

import (
	"errors"
	"net/http"
)

// HTTPError maps an export failure to a status, an error code and a message.
func HTTPError(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found", "export subject not found"
	case errors.Is(err, ErrInvalidState):
		return http.StatusConflict, "invalid_state", "export subject is not eligible"
	case errors.Is(err, ErrIOFailure):
		return http.StatusInternalServerError, "export_failed", "failed to write document"
	case errors.Is(err, ErrPersistenceFailure):
		return http.StatusInternalServerError, "export_failed", "failed to record document"
	default:
		return http.StatusInternalServerError, "internal_error", "export failed"
	}
}
