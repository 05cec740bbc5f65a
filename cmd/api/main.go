package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edumentor/edumentor-go-api/internal/config"
	"github.com/edumentor/edumentor-go-api/internal/database"
	"github.com/edumentor/edumentor-go-api/internal/handler"
	"github.com/edumentor/edumentor-go-api/internal/middleware"
	"github.com/edumentor/edumentor-go-api/internal/repository"
	"github.com/edumentor/edumentor-go-api/internal/router"
	"github.com/edumentor/edumentor-go-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentRepository(db)
	mentorRepo := repository.NewMentorRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	studyLogRepo := repository.NewStudyLogRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	notificationService := service.NewNotificationService(messageRepo, redisClient, cfg.EventChannelBase, natsConn, logger)
	progressService := service.NewProgressService(studyLogRepo, goalRepo, progressRepo, notificationService, logger)
	activityService := service.NewActivityService(activityRepo, logger)
	authService := service.NewAuthService(studentRepo, mentorRepo, service.AuthConfig{
		JWTSecret:         cfg.JWTSecret,
		AccessTokenTTL:    cfg.AccessTokenTTL,
		AdminPIN:          cfg.AdminPIN,
		SysAccessTokenTTL: cfg.SysAccessTokenTTL,
	}, validate, logger)
	studyLogService := service.NewStudyLogService(studyLogRepo, subjectRepo, mentorRepo, progressService, validate, logger)
	goalService := service.NewGoalService(goalRepo, studentRepo, subjectRepo, progressService, activityService, validate, logger)
	messageService := service.NewMessageService(messageRepo, studentRepo, mentorRepo, notificationService, validate, logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, studentRepo, validate, logger)
	dashboardService := service.NewDashboardService(studyLogRepo, goalRepo, progressRepo, messageRepo, feedbackRepo, redisClient, cfg.DashboardCacheTTL, logger)
	adminSubjectService := service.NewAdminSubjectService(subjectRepo, activityService, validate, logger)
	adminMentorService := service.NewAdminMentorService(mentorRepo, activityService, validate, logger)
	adminAnalyticsService := service.NewAdminAnalyticsService(studyLogRepo, logger)

	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()
	notificationService.Start(dispatcherCtx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:         handler.NewAuthHandler(authService, logger),
		StudyLogHandler:     handler.NewStudyLogHandler(studyLogService, logger),
		GoalHandler:         handler.NewGoalHandler(goalService, logger),
		ProgressHandler:     handler.NewProgressHandler(progressService, logger),
		MessageHandler:      handler.NewMessageHandler(messageService, notificationService, logger, 30*time.Second),
		FeedbackHandler:     handler.NewFeedbackHandler(feedbackService, logger),
		DashboardHandler:    handler.NewDashboardHandler(dashboardService, logger),
		AdminSubjectHandler: handler.NewAdminSubjectHandler(adminSubjectService, logger),
		AdminMentorHandler:  handler.NewAdminMentorHandler(adminMentorService, logger),
		AdminSystemHandler:  handler.NewAdminSystemHandler(adminAnalyticsService, progressService, activityService, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
		SysAccessMiddleware: middleware.SysAccessProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
