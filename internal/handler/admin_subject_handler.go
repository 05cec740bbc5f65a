package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/service"
	"github.com/edumentor/edumentor-go-api/internal/utils"
)

// AdminSubjectHandler manages the subject catalogue from the system view.
type AdminSubjectHandler struct {
	service service.AdminSubjectService
	logger  zerolog.Logger
}

// NewAdminSubjectHandler constructs an admin subject handler.
func NewAdminSubjectHandler(service service.AdminSubjectService, logger zerolog.Logger) *AdminSubjectHandler {
	return &AdminSubjectHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_subject_handler").Logger(),
	}
}

// Register wires admin subject routes.
func (h *AdminSubjectHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.remove)
}

func (h *AdminSubjectHandler) list(c *fiber.Ctx) error {
	subjects, err := h.service.List(c.UserContext(), c.Query("major_area"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list subjects")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list subjects")
	}

	return utils.SendSuccess(c, "subjects", subjects)
}

func (h *AdminSubjectHandler) create(c *fiber.Ctx) error {
	var payload dto.SubjectCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	subject, err := h.service.Create(c.UserContext(), payload, activityActorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create subject")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create subject")
	}

	return utils.SendCreated(c, "subject created", subject)
}

func (h *AdminSubjectHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subject id")
	}

	var payload dto.SubjectUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	subject, err := h.service.Update(c.UserContext(), id, payload, activityActorFromContext(c))
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSubjectNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "subject not found")
		default:
			h.logger.Error().Err(err).Msg("failed to update subject")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update subject")
		}
	}

	return utils.SendSuccess(c, "subject updated", subject)
}

func (h *AdminSubjectHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subject id")
	}

	if err := h.service.Delete(c.UserContext(), id, activityActorFromContext(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrSubjectNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "subject not found")
		default:
			h.logger.Error().Err(err).Msg("failed to delete subject")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete subject")
		}
	}

	return utils.SendSuccess(c, "subject deleted", nil)
}
