package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/edumentor/edumentor-go-api/internal/config"
	"github.com/edumentor/edumentor-go-api/internal/handler"
	"github.com/edumentor/edumentor-go-api/internal/middleware"
	"github.com/edumentor/edumentor-go-api/internal/models"
	"github.com/edumentor/edumentor-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler         *handler.AuthHandler
	StudyLogHandler     *handler.StudyLogHandler
	GoalHandler         *handler.GoalHandler
	ProgressHandler     *handler.ProgressHandler
	MessageHandler      *handler.MessageHandler
	FeedbackHandler     *handler.FeedbackHandler
	DashboardHandler    *handler.DashboardHandler
	AdminSubjectHandler *handler.AdminSubjectHandler
	AdminMentorHandler  *handler.AdminMentorHandler
	AdminSystemHandler  *handler.AdminSystemHandler
	JWTMiddleware       fiber.Handler
	SysAccessMiddleware fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	sysAccess := deps.SysAccessMiddleware
	if sysAccess == nil {
		sysAccess = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("auth", 20, time.Minute))
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterProtected(auth.Group("", jwtMiddleware))
	}

	if deps.StudyLogHandler != nil {
		deps.StudyLogHandler.Register(api.Group("/study-logs", jwtMiddleware))
	}

	if deps.GoalHandler != nil {
		goals := api.Group("/goals", jwtMiddleware)
		deps.GoalHandler.Register(goals)
		deps.GoalHandler.RegisterSysAccess(goals.Group("", sysAccess))
	}

	if deps.ProgressHandler != nil {
		deps.ProgressHandler.Register(api.Group("/progress", jwtMiddleware))
	}

	if deps.MessageHandler != nil {
		deps.MessageHandler.Register(api.Group("/messages", jwtMiddleware))
	}

	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.Register(api.Group("/feedback", jwtMiddleware))
	}

	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(api.Group("/dashboard", jwtMiddleware))
	}

	// System view: mentor session plus a scoped capability token.
	admin := api.Group("/admin", jwtMiddleware, middleware.RequireRole(models.RoleMentor), sysAccess)
	if deps.AdminSubjectHandler != nil {
		deps.AdminSubjectHandler.Register(admin.Group("/subjects"))
	}
	if deps.AdminMentorHandler != nil {
		deps.AdminMentorHandler.Register(admin.Group("/mentors"))
	}
	if deps.AdminSystemHandler != nil {
		deps.AdminSystemHandler.Register(admin)
	}
}
