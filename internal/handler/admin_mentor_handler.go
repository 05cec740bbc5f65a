package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/service"
	"github.com/edumentor/edumentor-go-api/internal/utils"
)

// AdminMentorHandler manages mentor accounts from the system view.
type AdminMentorHandler struct {
	service service.AdminMentorService
	logger  zerolog.Logger
}

// NewAdminMentorHandler constructs an admin mentor handler.
func NewAdminMentorHandler(service service.AdminMentorService, logger zerolog.Logger) *AdminMentorHandler {
	return &AdminMentorHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_mentor_handler").Logger(),
	}
}

// Register wires admin mentor routes.
func (h *AdminMentorHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.remove)
}

func (h *AdminMentorHandler) list(c *fiber.Ctx) error {
	mentors, err := h.service.List(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list mentors")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list mentors")
	}

	return utils.SendSuccess(c, "mentors", mentors)
}

func (h *AdminMentorHandler) create(c *fiber.Ctx) error {
	var payload dto.MentorCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	mentor, err := h.service.Create(c.UserContext(), payload, activityActorFromContext(c))
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			return utils.SendError(c, fiber.StatusConflict, "email already registered")
		default:
			h.logger.Error().Err(err).Msg("failed to create mentor")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create mentor")
		}
	}

	return utils.SendCreated(c, "mentor created", mentor)
}

func (h *AdminMentorHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid mentor id")
	}

	var payload dto.MentorUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	mentor, err := h.service.Update(c.UserContext(), id, payload, activityActorFromContext(c))
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrMentorNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "mentor not found")
		default:
			h.logger.Error().Err(err).Msg("failed to update mentor")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update mentor")
		}
	}

	return utils.SendSuccess(c, "mentor updated", mentor)
}

func (h *AdminMentorHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid mentor id")
	}

	if err := h.service.Delete(c.UserContext(), id, activityActorFromContext(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrMentorNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "mentor not found")
		default:
			h.logger.Error().Err(err).Msg("failed to delete mentor")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete mentor")
		}
	}

	return utils.SendSuccess(c, "mentor deleted", nil)
}
