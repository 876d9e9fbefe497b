package router

import (
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	apierrors "github.com/yukikurage/who-owns-this/internal/errors"
	"github.com/yukikurage/who-owns-this/internal/handlers"
	"github.com/yukikurage/who-owns-this/internal/middleware"
	"github.com/yukikurage/who-owns-this/internal/repository"
	"github.com/yukikurage/who-owns-this/internal/services"
	"gorm.io/gorm"
)

// Deps are the process-wide dependencies shared by every request.
type Deps struct {
	DB             *gorm.DB
	SessionStore   sessions.Store
	AllowedOrigins []string
}

// Setup wires repositories, services and handlers onto a new engine.
func Setup(deps Deps) (*gin.Engine, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := middleware.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	teamRepo := repository.NewTeamRepository(deps.DB)
	memberRepo := repository.NewMemberRepository(deps.DB)
	taskRepo := repository.NewTaskRepository(deps.DB)

	validate := services.NewValidator()
	teamService := services.NewTeamService(teamRepo, memberRepo, validate)
	taskService := services.NewTaskService(taskRepo, teamRepo, memberRepo, validate)

	teamHandler := handlers.NewTeamHandler(teamService)
	taskHandler := handlers.NewTaskHandler(taskService)
	sessionHandler := handlers.NewSessionHandler()
	healthHandler := handlers.NewHealthHandler(deps.DB)

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(),
		middleware.CORS(deps.AllowedOrigins),
		metrics.Handler(),
		middleware.Sessions(deps.SessionStore),
	)

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	team := r.Group("/team")
	{
		team.POST("/create", teamHandler.CreateTeam)
		team.POST("/join", teamHandler.JoinTeam)
	}

	r.GET("/members/:teamId", teamHandler.ListMembers)

	tasks := r.Group("/tasks")
	{
		tasks.GET("/:teamId", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.PATCH("/:id", taskHandler.UpdateTaskStatus)
	}

	session := r.Group("/session")
	{
		session.GET("", sessionHandler.GetSession)
		session.DELETE("", sessionHandler.DeleteSession)
	}

	r.NoRoute(func(c *gin.Context) {
		apierrors.NotFound(c, "Endpoint not found")
	})

	return r, nil
}
