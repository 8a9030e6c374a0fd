package dashboard

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"edujobs-backend/internal/shared/server/middleware"
	"edujobs-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/company/dashboard", middleware.RequireAuth(), h.get)
}

func (h *Handler) get(c *gin.Context) {
	d, err := h.Svc.Build(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			respond.Error(c, http.StatusForbidden, "forbidden", "company role required", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load dashboard", nil)
		return
	}
	respond.OK(c, d)
}
