package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edujobs-backend/internal/certificates"
	"edujobs-backend/internal/courses"
	"edujobs-backend/internal/cvs"
	"edujobs-backend/internal/dashboard"
	"edujobs-backend/internal/jobs"
	"edujobs-backend/internal/services/health"
	"edujobs-backend/internal/shared/config"
	"edujobs-backend/internal/shared/metrics"
	"edujobs-backend/internal/shared/server/middleware"
	"edujobs-backend/internal/shared/server/respond"
	"edujobs-backend/internal/uploads"
	"edujobs-backend/internal/users"
)

const exportRateGroup = "EXPORT"

// RouterDeps carries the handlers the router mounts. Nil handlers are skipped.
type RouterDeps struct {
	Config        config.Config
	Health        *health.Service
	Users         *users.Handler
	Courses       *courses.Handler
	CVs           *cvs.Handler
	Certificates  *certificates.Handler
	Jobs          *jobs.Handler
	Dashboard     *dashboard.Handler
	Uploads       *uploads.Handler
	ExportLimiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
	)
	if deps.Users != nil {
		r.Use(deps.Users.EnsureIdentity())
	}

	r.GET("/metrics", metrics.Handler())
	if deps.Uploads != nil {
		deps.Uploads.RegisterRoutes(r)
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		status, ok := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !ok {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, gin.H{"ok": ok, "components": status})
	})

	exportLimit := ExportRateLimit(deps.ExportLimiter)
	if deps.Users != nil {
		deps.Users.RegisterRoutes(api)
	}
	if deps.Courses != nil {
		deps.Courses.RegisterRoutes(api)
	}
	if deps.CVs != nil {
		deps.CVs.RegisterRoutes(api, exportLimit)
	}
	if deps.Certificates != nil {
		deps.Certificates.RegisterRoutes(api, exportLimit)
	}
	if deps.Jobs != nil {
		deps.Jobs.RegisterRoutes(api)
	}
	if deps.Dashboard != nil {
		deps.Dashboard.RegisterRoutes(api)
	}

	return r
}

// ExportRateLimit allows each caller a burst of 5 exports refilled at one
// every 5 seconds.
func ExportRateLimit(limiter *middleware.RateLimiter) gin.HandlerFunc {
	return middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: exportRateGroup,
		Limiter:      limiter,
		Rules: map[string]middleware.RateLimitRule{
			exportRateGroup: {Rate: 0.2, Burst: 5},
		},
	})
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
