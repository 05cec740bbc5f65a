package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edumentor/edumentor-go-api/internal/models"
	"github.com/edumentor/edumentor-go-api/internal/service"
	"github.com/edumentor/edumentor-go-api/internal/utils"
)

// ProgressHandler exposes read access to computed progress records.
type ProgressHandler struct {
	service service.ProgressService
	logger  zerolog.Logger
}

// NewProgressHandler constructs a progress handler.
func NewProgressHandler(service service.ProgressService, logger zerolog.Logger) *ProgressHandler {
	return &ProgressHandler{
		service: service,
		logger:  logger.With().Str("component", "progress_handler").Logger(),
	}
}

// Register wires progress routes.
func (h *ProgressHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *ProgressHandler) list(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if userRoleFromContext(c) == models.RoleMentor {
		queried, err := parseQueryInt(c, "student_id")
		if err != nil || queried <= 0 {
			return utils.SendError(c, fiber.StatusBadRequest, "student_id query parameter required")
		}
		studentID = uint(queried)
	}

	records, err := h.service.ListForStudent(c.UserContext(), studentID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list progress")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list progress")
	}

	return utils.SendSuccess(c, "progress records", records)
}
