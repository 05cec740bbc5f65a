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

// FeedbackHandler handles mentor feedback on students.
type FeedbackHandler struct {
	service service.FeedbackService
	logger  zerolog.Logger
}

// NewFeedbackHandler constructs a feedback handler.
func NewFeedbackHandler(service service.FeedbackService, logger zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		logger:  logger.With().Str("component", "feedback_handler").Logger(),
	}
}

// Register wires feedback routes.
func (h *FeedbackHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
}

func (h *FeedbackHandler) create(c *fiber.Ctx) error {
	if userRoleFromContext(c) != models.RoleMentor {
		return utils.SendError(c, fiber.StatusForbidden, "only mentors can give feedback")
	}

	var payload dto.FeedbackCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	feedback, err := h.service.Create(c.UserContext(), userIDFromContext(c), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEmptyFeedback):
			return utils.SendError(c, fiber.StatusBadRequest, "feedback content is empty")
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		default:
			h.logger.Error().Err(err).Msg("failed to create feedback")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create feedback")
		}
	}

	return utils.SendCreated(c, "feedback recorded", feedback)
}

func (h *FeedbackHandler) list(c *fiber.Ctx) error {
	var (
		feedback []dto.FeedbackResponse
		err      error
	)

	if userRoleFromContext(c) == models.RoleMentor {
		feedback, err = h.service.HistoryByMentor(c.UserContext(), userIDFromContext(c))
	} else {
		feedback, err = h.service.HistoryForStudent(c.UserContext(), userIDFromContext(c))
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list feedback")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list feedback")
	}

	return utils.SendSuccess(c, "feedback history", feedback)
}
