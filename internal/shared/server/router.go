package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/analyses"
	googleauth "resume-optimizer/internal/auth"
	"resume-optimizer/internal/exports"
	"resume-optimizer/internal/resumes"
	"resume-optimizer/internal/services/health"
	"resume-optimizer/internal/shared/config"
	"resume-optimizer/internal/shared/metrics"
	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/server/respond"
	"resume-optimizer/internal/uploads"
	"resume-optimizer/internal/users"
)

// RouterDeps carries the handlers the router mounts. Optional handlers may
// be nil and their routes are simply not registered.
type RouterDeps struct {
	Config          config.Config
	ResumeHandler   *resumes.Handler
	ExportHandler   *exports.Handler
	AnalysisHandler *analyses.Handler
	UserHandler     *users.Handler
	GoogleAuth      *googleauth.GoogleService
	Health          *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"UPLOAD":  {Rate: 1, Burst: 5},
				"DEFAULT": {Rate: 20, Burst: 40},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && strings.HasPrefix(c.Request.URL.Path, "/api/v1/resumes") {
					return "UPLOAD"
				}
				return "DEFAULT"
			},
		}),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	api.GET("/metrics", metrics.Handler())

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api)
	}
	if deps.ExportHandler != nil {
		deps.ExportHandler.RegisterRoutes(api)
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api)
	}
	uploads.RegisterRoutes(api)

	return r
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
