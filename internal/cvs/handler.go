package cvs

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"edujobs-backend/internal/export"
	"edujobs-backend/internal/shared/server/middleware"
	"edujobs-backend/internal/shared/server/respond"
)

// Handler exposes CV export endpoints.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches CV routes. limit guards the export endpoint.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, limit gin.HandlerFunc) {
	me := rg.Group("/me", middleware.RequireAuth())
	me.POST("/cv", limit, h.export)
	me.GET("/cvs", h.list)
}

func (h *Handler) export(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Set("subjectId", userID)
	url, err := h.Svc.Export(c.Request.Context(), userID)
	if err != nil {
		status, code, msg := export.HTTPError(err)
		respond.Error(c, status, code, msg, nil)
		return
	}
	respond.Created(c, gin.H{"url": url})
}

func (h *Handler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list cvs", nil)
		return
	}
	respond.OK(c, gin.H{"items": items})
}
