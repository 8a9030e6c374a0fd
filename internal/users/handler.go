package users

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
	me := rg.Group("/me", middleware.RequireAuth())
	me.GET("", h.me)
	me.PUT("/profile", h.updateProfile)
	me.POST("/skills", h.addSkill)
	me.POST("/experiences", h.addExperience)
}

// EnsureIdentity upserts the caller once per request so downstream features
// can rely on a users row.
func (h *Handler) EnsureIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserIDFromContext(c)
		email := middleware.UserEmailFromContext(c)
		if userID == "" || email == "" {
			c.Next()
			return
		}
		user := User{ID: userID, Email: email, Role: Role(middleware.UserRoleFromContext(c))}
		if err := h.Svc.EnsureFromIdentity(c.Request.Context(), user); err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to register user", nil)
			return
		}
		c.Next()
	}
}

func (h *Handler) me(c *gin.Context) {
	user, profile, err := h.Svc.Me(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to load user")
		return
	}
	respond.OK(c, gin.H{
		"id":      user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"profile": profile,
	})
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid profile payload", nil)
		return
	}
	profile, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "failed to update profile")
		return
	}
	respond.OK(c, profile)
}

func (h *Handler) addSkill(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid skill payload", nil)
		return
	}
	skill, err := h.Svc.AddSkill(c.Request.Context(), middleware.UserIDFromContext(c), req.Name)
	if err != nil {
		writeError(c, err, "failed to add skill")
		return
	}
	respond.Created(c, skill)
}

func (h *Handler) addExperience(c *gin.Context) {
	var req Experience
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid experience payload", nil)
		return
	}
	exp, err := h.Svc.AddExperience(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "failed to add experience")
		return
	}
	respond.Created(c, exp)
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
