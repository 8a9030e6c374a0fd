package courses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"edujobs-backend/internal/shared/server/middleware"
	"edujobs-backend/internal/shared/server/respond"
)

// Handler exposes enrollment endpoints.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/courses/:courseId/enrollments", middleware.RequireAuth(), h.enroll)
	rg.POST("/enrollments/:enrollmentId/status", middleware.RequireAuth(), h.finish)
}

func (h *Handler) enroll(c *gin.Context) {
	e, err := h.Svc.Enroll(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("courseId"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.Created(c, e)
}

func (h *Handler) finish(c *gin.Context) {
	var req struct {
		Status EnrollmentStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid status payload", nil)
		return
	}
	e, err := h.Svc.Finish(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("enrollmentId"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, e)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "enrollment not found", nil)
	case errors.Is(err, ErrAlreadyEnrolled):
		respond.Error(c, http.StatusConflict, "already_enrolled", "already enrolled in course", nil)
	case errors.Is(err, ErrInvalidTransition):
		respond.Error(c, http.StatusConflict, "invalid_state", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "enrollment failed", nil)
	}
}
