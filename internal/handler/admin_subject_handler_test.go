package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/handler"
	"github.com/edumentor/edumentor-go-api/internal/models"
	"github.com/edumentor/edumentor-go-api/internal/repository"
	"github.com/edumentor/edumentor-go-api/internal/service"
)

func newAdminSubjectTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	require.NoError(t, db.AutoMigrate(&models.ActivityLog{}))

	logger := zerolog.New(io.Discard)
	svc := service.NewAdminSubjectService(
		repository.NewSubjectRepository(db),
		service.NewActivityService(repository.NewActivityLogRepository(db), logger),
		validator.New(validator.WithRequiredStructEnabled()),
		logger,
	)

	app := fiber.New()
	group := app.Group("/api/v1/admin/subjects", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(9))
		c.Locals("user_role", models.RoleMentor)
		return c.Next()
	})
	handler.NewAdminSubjectHandler(svc, logger).Register(group)
	return app
}

func TestAdminSubjectCreateListAndAudit(t *testing.T) {
	db := openHandlerTestDB(t)
	app := newAdminSubjectTestApp(t, db)

	resp := postJSON(t, app, "/api/v1/admin/subjects", dto.SubjectCreateRequest{
		Name:      "Operating Systems",
		Credits:   4,
		MajorArea: "Computer Science",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data dto.SubjectResponse `json:"data"`
	}
	decodeResponse(t, resp, &created)
	require.NotZero(t, created.Data.ID)

	listResp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/admin/subjects", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, listResp.StatusCode)

	var listed struct {
		Data []dto.SubjectResponse `json:"data"`
	}
	decodeResponse(t, listResp, &listed)
	require.Len(t, listed.Data, 1)
	require.Equal(t, "Operating Systems", listed.Data[0].Name)

	// The mutation is recorded against the acting mentor.
	var entry models.ActivityLog
	require.NoError(t, db.Where("action = ?", "subject_created").First(&entry).Error)
	require.Equal(t, uint(9), entry.ActorID)

	deleteReq := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/subjects/9999", nil)
	deleteResp, err := app.Test(deleteReq)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, deleteResp.StatusCode)
}

func TestAdminSubjectCreateValidation(t *testing.T) {
	db := openHandlerTestDB(t)
	app := newAdminSubjectTestApp(t, db)

	resp := postJSON(t, app, "/api/v1/admin/subjects", dto.SubjectCreateRequest{Name: "X"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
