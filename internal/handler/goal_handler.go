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

// GoalHandler handles study goal management.
type GoalHandler struct {
	service service.GoalService
	logger  zerolog.Logger
}

// NewGoalHandler constructs a goal handler.
func NewGoalHandler(service service.GoalService, logger zerolog.Logger) *GoalHandler {
	return &GoalHandler{
		service: service,
		logger:  logger.With().Str("component", "goal_handler").Logger(),
	}
}

// Register wires goal routes.
func (h *GoalHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
}

// RegisterSysAccess wires the latch override route, which additionally
// requires a system access token.
func (h *GoalHandler) RegisterSysAccess(router fiber.Router) {
	router.Patch("/:id/met", h.toggleMet)
}

func (h *GoalHandler) create(c *fiber.Ctx) error {
	if userRoleFromContext(c) != models.RoleMentor {
		return utils.SendError(c, fiber.StatusForbidden, "only mentors can set goals")
	}

	var payload dto.GoalCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	goal, err := h.service.Create(c.UserContext(), userIDFromContext(c), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case errors.Is(err, service.ErrSubjectNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "subject not found")
		default:
			h.logger.Error().Err(err).Msg("failed to create goal")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create goal")
		}
	}

	return utils.SendCreated(c, "goal created", goal)
}

func (h *GoalHandler) list(c *fiber.Ctx) error {
	var (
		goals []dto.GoalResponse
		err   error
	)

	if userRoleFromContext(c) == models.RoleMentor {
		goals, err = h.service.ListForMentor(c.UserContext(), userIDFromContext(c))
	} else {
		goals, err = h.service.ListForStudent(c.UserContext(), userIDFromContext(c))
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list goals")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list goals")
	}

	return utils.SendSuccess(c, "goals", goals)
}

func (h *GoalHandler) toggleMet(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid goal id")
	}

	var payload dto.GoalMetToggleRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	goal, err := h.service.ToggleMet(c.UserContext(), id, payload.IsMet, activityActorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGoalNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "goal not found")
		default:
			h.logger.Error().Err(err).Msg("failed to override goal state")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update goal")
		}
	}

	return utils.SendSuccess(c, "goal updated", goal)
}
