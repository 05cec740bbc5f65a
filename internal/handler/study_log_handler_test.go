package handler_test

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/handler"
	"github.com/edumentor/edumentor-go-api/internal/models"
	"github.com/edumentor/edumentor-go-api/internal/repository"
	"github.com/edumentor/edumentor-go-api/internal/service"
)

func openHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Student{},
		&models.Mentor{},
		&models.Subject{},
		&models.StudyLog{},
		&models.Goal{},
		&models.ProgressRecord{},
		&models.Message{},
	))

	return db
}

// Builds a study log handler backed by the real progress engine and message
// dispatcher, with request identity injected by a stand-in auth middleware.
func newStudyLogTestApp(t *testing.T, db *gorm.DB, userID uint, role string) *fiber.App {
	t.Helper()

	logger := zerolog.New(io.Discard)
	validate := validator.New(validator.WithRequiredStructEnabled())

	messageRepo := repository.NewMessageRepository(db)
	dispatcher := service.NewNotificationService(messageRepo, nil, "", nil, logger)
	progress := service.NewProgressService(
		repository.NewStudyLogRepository(db),
		repository.NewGoalRepository(db),
		repository.NewProgressRepository(db),
		dispatcher,
		logger,
	)
	svc := service.NewStudyLogService(
		repository.NewStudyLogRepository(db),
		repository.NewSubjectRepository(db),
		repository.NewMentorRepository(db),
		progress,
		validate,
		logger,
	)

	app := fiber.New()
	group := app.Group("/api/v1/study-logs", func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		c.Locals("user_role", role)
		return c.Next()
	})
	handler.NewStudyLogHandler(svc, logger).Register(group)
	return app
}

func TestStudyLogFlowLogsProgressAndNotifies(t *testing.T) {
	db := openHandlerTestDB(t)

	student := models.Student{Name: "Ani Lestari", Email: "ani@example.com", PasswordHash: "x", Semester: 3}
	mentor := models.Mentor{Name: "Budi Santoso", Email: "budi@example.com", PasswordHash: "x"}
	subject := models.Subject{Name: "Algorithms", Credits: 4}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&mentor).Error)
	require.NoError(t, db.Create(&subject).Error)

	goal := models.Goal{
		StudentID:   student.ID,
		SubjectID:   subject.ID,
		MentorID:    mentor.ID,
		TargetHours: 4,
		DueDate:     time.Now().UTC().Add(24 * time.Hour),
	}
	require.NoError(t, db.Create(&goal).Error)

	app := newStudyLogTestApp(t, db, student.ID, models.RoleStudent)

	resp := postJSON(t, app, "/api/v1/study-logs", dto.StudyLogCreateRequest{
		SubjectID:     subject.ID,
		MentorID:      mentor.ID,
		DurationHours: 5,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var envelope struct {
		Success bool                       `json:"success"`
		Data    dto.StudyLogCreateResponse `json:"data"`
	}
	decodeResponse(t, resp, &envelope)
	require.True(t, envelope.Success)
	require.NotNil(t, envelope.Data.Progress)
	require.InDelta(t, 100, envelope.Data.Progress.Percentage, 0.001)
	require.True(t, envelope.Data.GoalCompleted)

	// The latch wrote a congratulation message for the student.
	var message models.Message
	require.NoError(t, db.Where("recipient_id = ?", student.ID).First(&message).Error)
	require.Contains(t, message.Content, "Congratulations Ani Lestari!")

	var stored models.Goal
	require.NoError(t, db.First(&stored, goal.ID).Error)
	require.True(t, stored.IsMet)
}

func TestStudyLogCreateForbiddenForMentors(t *testing.T) {
	db := openHandlerTestDB(t)
	app := newStudyLogTestApp(t, db, 5, models.RoleMentor)

	resp := postJSON(t, app, "/api/v1/study-logs", dto.StudyLogCreateRequest{
		SubjectID:     1,
		MentorID:      1,
		DurationHours: 2,
	})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestStudyLogCreateUnknownSubject(t *testing.T) {
	db := openHandlerTestDB(t)

	student := models.Student{Name: "Citra", Email: "citra@example.com", PasswordHash: "x"}
	mentor := models.Mentor{Name: "Budi", Email: "budi2@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&mentor).Error)

	app := newStudyLogTestApp(t, db, student.ID, models.RoleStudent)

	resp := postJSON(t, app, "/api/v1/study-logs", dto.StudyLogCreateRequest{
		SubjectID:     404,
		MentorID:      mentor.ID,
		DurationHours: 2,
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
