// Package http - router configuration for the REST API.
//
// The router is the composition root: it assembles middleware and
// handlers into a single entry point.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Haleralex/orghub/internal/adapters/http/handlers"
	"github.com/Haleralex/orghub/internal/adapters/http/middleware"
	"github.com/Haleralex/orghub/internal/pkg/apiresp"
)

// RouterConfig configures the router.
type RouterConfig struct {
	// Logger used by the middleware chain
	Logger *slog.Logger
	// Pool is the database pool for health checks
	Pool *pgxpool.Pool
	// Version of the application
	Version string
	// BuildTime of the binary
	BuildTime string
	// Environment (development, staging, production)
	Environment string
	// AllowedOrigins for CORS in production
	AllowedOrigins []string
	// RateLimit is the global requests-per-window limit
	RateLimit int
	// RateLimitWindow is the rate limit window
	RateLimitWindow time.Duration
}

// DefaultRouterConfig returns a development configuration.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		Logger:          slog.Default(),
		Version:         "dev",
		BuildTime:       "unknown",
		Environment:     "development",
		AllowedOrigins:  []string{"*"},
		RateLimit:       100,
		RateLimitWindow: time.Minute,
	}
}

// NewRouter builds the Gin engine with the full middleware chain and all
// routes. The directory may be nil, in which case only health, metrics
// and the 404 handler are mounted.
func NewRouter(config *RouterConfig, directory handlers.DepartmentDirectory) *gin.Engine {
	if config == nil {
		config = DefaultRouterConfig()
	}

	if config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	handlers.SetupValidator()

	// Recovery must run first
	router.Use(middleware.Recovery(&middleware.RecoveryConfig{
		Logger:           config.Logger,
		EnableStackTrace: config.Environment != "production",
	}))

	router.Use(middleware.RequestID())

	if config.Environment == "production" {
		router.Use(middleware.CORS(middleware.ProductionCORSConfig(config.AllowedOrigins)))
	} else {
		router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	}

	router.Use(middleware.Logging(&middleware.LoggingConfig{
		Logger:    config.Logger,
		SkipPaths: []string{"/health", "/live", "/ready", "/metrics"},
	}))

	rateLimit := middleware.DefaultRateLimitConfig()
	if config.RateLimit > 0 {
		rateLimit.Limit = config.RateLimit
	}
	if config.RateLimitWindow > 0 {
		rateLimit.Window = config.RateLimitWindow
	}
	router.Use(middleware.RateLimit(rateLimit))

	router.Use(middleware.Metrics())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	healthHandler := handlers.NewHealthHandler(config.Pool, config.Version, config.BuildTime)
	healthHandler.RegisterRoutes(router)

	v1 := router.Group("/api/v1")

	if directory != nil {
		departmentHandler := handlers.NewDepartmentHandler(directory)

		departments := v1.Group("/departments")
		{
			departments.GET("", departmentHandler.ListDepartments)
			departments.GET("/:id", departmentHandler.GetDepartment)

			// Write endpoints carry a stricter per-path limit
			mutations := departments.Group("")
			mutations.Use(middleware.MutationRateLimit())
			{
				mutations.POST("", departmentHandler.CreateDepartment)
				mutations.POST("/:id/rename", departmentHandler.RenameDepartment)
				mutations.POST("/:id/move", departmentHandler.MoveDepartment)
				mutations.DELETE("/:id", departmentHandler.DeleteDepartment)
			}
		}
	}

	router.NoRoute(func(c *gin.Context) {
		body := apiresp.Error(-1, "endpoint not found").ToJSON()
		c.Data(http.StatusNotFound, "application/json; charset=utf-8", []byte(body))
	})

	return router
}
