package uploads

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"edujobs-backend/internal/shared/server/respond"
	"edujobs-backend/internal/shared/storage/object"
	"edujobs-backend/internal/shared/telemetry"
	"edujobs-backend/internal/shared/util"
)

const presignExpires = 15 * time.Minute

// Presigner issues short-lived direct download URLs. *s3.Store implements it.
type Presigner interface {
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
}

// Handler serves exported files under /uploads/<key>, the URLs stored on
// CV and certificate records.
type Handler struct {
	Store     object.ObjectStore
	Presigner Presigner
}

func NewHandler(store object.ObjectStore, presigner Presigner) *Handler {
	return &Handler{Store: store, Presigner: presigner}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/uploads/*key", h.download)
	r.HEAD("/uploads/*key", h.download)
}

func (h *Handler) download(c *gin.Context) {
	key, err := util.CleanKey(strings.TrimPrefix(c.Param("key"), "/"))
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
		return
	}

	if h.Presigner != nil {
		url, err := h.Presigner.PresignGet(c.Request.Context(), key, presignExpires)
		if err != nil {
			telemetry.Error("uploads.presign.failed", map[string]any{
				"key":        key,
				"error":      err.Error(),
				"request_id": c.GetString("requestId"),
			})
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate download url", nil)
			return
		}
		c.Redirect(http.StatusFound, url)
		return
	}

	rc, err := h.Store.Open(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
			return
		}
		telemetry.Error("uploads.open.failed", map[string]any{
			"key":        key,
			"error":      err.Error(),
			"request_id": c.GetString("requestId"),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read file", nil)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", contentType(key))
	c.Header("Content-Disposition", `inline; filename="`+path.Base(key)+`"`)
	c.Header("Cache-Control", "private, max-age=300")
	c.Status(http.StatusOK)
	if c.Request.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(c.Writer, rc); err != nil {
		telemetry.Warn("uploads.stream.interrupted", map[string]any{"key": key, "error": err.Error()})
	}
}

func contentType(key string) string {
	if strings.EqualFold(path.Ext(key), ".pdf") {
		return "application/pdf"
	}
	return "application/octet-stream"
}
