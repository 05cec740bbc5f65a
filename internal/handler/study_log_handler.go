package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/models"
	"github.com/edumentor/edumentor-go-api/internal/service"
	"github.com/edumentor/edumentor-go-api/internal/utils"
)

// StudyLogHandler handles study session logging.
type StudyLogHandler struct {
	service service.StudyLogService
	logger  zerolog.Logger
}

// NewStudyLogHandler constructs a study log handler.
func NewStudyLogHandler(service service.StudyLogService, logger zerolog.Logger) *StudyLogHandler {
	return &StudyLogHandler{
		service: service,
		logger:  logger.With().Str("component", "study_log_handler").Logger(),
	}
}

// Register wires study log routes.
func (h *StudyLogHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
}

func (h *StudyLogHandler) create(c *fiber.Ctx) error {
	if userRoleFromContext(c) != models.RoleStudent {
		return utils.SendError(c, fiber.StatusForbidden, "only students can log study sessions")
	}

	var payload dto.StudyLogCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Create(c.UserContext(), userIDFromContext(c), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSubjectNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "subject not found")
		case errors.Is(err, service.ErrMentorNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "mentor not found")
		default:
			h.logger.Error().Err(err).Msg("failed to create study log")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to log study session")
		}
	}

	return utils.SendCreated(c, "study session logged", response)
}

func (h *StudyLogHandler) list(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if userRoleFromContext(c) == models.RoleMentor {
		queried, err := parseQueryInt(c, "student_id")
		if err != nil || queried <= 0 {
			return utils.SendError(c, fiber.StatusBadRequest, "student_id query parameter required")
		}
		studentID = uint(queried)
	}

	logs, err := h.service.ListForStudent(c.UserContext(), studentID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list study logs")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list study logs")
	}

	return utils.SendSuccess(c, "study logs", logs)
}
