package jobs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"edujobs-backend/internal/shared/server/middleware"
	"edujobs-backend/internal/shared/server/respond"
)

// Handler exposes job endpoints.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job routes. gin needs one wildcard name per
// segment, so :job carries the slug on GET and the id elsewhere.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs/:job", h.detail)
	rg.POST("/jobs", middleware.RequireAuth(), h.create)
	rg.POST("/jobs/:job/apply", middleware.RequireAuth(), h.apply)
	rg.DELETE("/jobs/:job", middleware.RequireAuth(), h.delete)
}

func (h *Handler) detail(c *gin.Context) {
	view, err := h.Svc.Detail(c.Request.Context(), c.Param("job"), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, view)
}

func (h *Handler) create(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid job payload", nil)
		return
	}
	job, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.Created(c, job)
}

func (h *Handler) apply(c *gin.Context) {
	app, err := h.Svc.Apply(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("job"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.Created(c, app)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("job")); err != nil {
		writeError(c, err)
		return
	}
	respond.NoContent(c)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "not allowed", nil)
	case errors.Is(err, ErrAlreadyApplied):
		respond.Error(c, http.StatusConflict, "already_applied", "already applied to this job", nil)
	case errors.Is(err, ErrProfileIncomplete):
		respond.Error(c, http.StatusUnprocessableEntity, "profile_incomplete", "complete your profile before applying", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "job request failed", nil)
	}
}
