package certificates

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"edujobs-backend/internal/export"
	"edujobs-backend/internal/shared/server/middleware"
	"edujobs-backend/internal/shared/server/respond"
)

// Handler exposes certificate endpoints.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches certificate routes. limit guards the issue endpoint.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, limit gin.HandlerFunc) {
	rg.POST("/enrollments/:enrollmentId/certificate", middleware.RequireAuth(), limit, h.issue)
	rg.GET("/me/certificates", middleware.RequireAuth(), h.list)
	rg.GET("/certificates/:code", h.verify)
}

func (h *Handler) issue(c *gin.Context) {
	enrollmentID := c.Param("enrollmentId")
	c.Set("subjectId", enrollmentID)
	cert, err := h.Svc.IssueForUser(c.Request.Context(), middleware.UserIDFromContext(c), enrollmentID)
	if err != nil {
		status, code, msg := export.HTTPError(err)
		respond.Error(c, status, code, msg, nil)
		return
	}
	c.Set("exportId", cert.ID)
	respond.Created(c, cert)
}

func (h *Handler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list certificates", nil)
		return
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) verify(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	cert, err := h.Svc.Verify(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "certificate not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to verify certificate", nil)
		return
	}
	respond.OK(c, gin.H{
		"certificateCode": cert.Code,
		"enrollmentId":    cert.EnrollmentID,
		"issuedAt":        cert.IssuedAt,
		"fileUrl":         cert.FileURL,
	})
}
