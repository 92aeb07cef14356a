package http

import (
	"time"

	"task_manager_api/internal/http/handlers"
	"task_manager_api/internal/http/middleware"
	"task_manager_api/internal/repository"
	"task_manager_api/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Deps are the process-wide collaborators handed to every request.
type Deps struct {
	Store    repository.TaskStore
	Verifier *service.Verifier
	Logger   zerolog.Logger
	Version  string

	// StrictOwnership adds middleware.RequireSameUser to the task routes.
	StrictOwnership    bool
	CORSAllowedOrigins []string
}

// NewEngine builds a gin engine with the shared middleware chain and all routes.
func NewEngine(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(d.Logger))
	r.Use(middleware.Metrics())

	if len(d.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	h := handlers.NewHandler(d.Store, d.Logger)
	healthHandler := handlers.NewHealthHandler(d.Store, d.Version)

	// Health checks
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// The owner guard runs before the token check so that an invalid path
	// owner is refused whatever credential comes with it.
	tasks := r.Group("/api/tasks/:user_id")
	tasks.Use(middleware.OwnerGuard(), middleware.JWT(d.Verifier, d.Logger))
	if d.StrictOwnership {
		tasks.Use(middleware.RequireSameUser())
	}

	tasks.POST("", h.CreateTask)
	tasks.GET("", h.ListTasks)
	tasks.GET("/:task_id", h.GetTask)
	tasks.PUT("/:task_id", h.UpdateTask)
	tasks.DELETE("/:task_id", h.DeleteTask)
}
