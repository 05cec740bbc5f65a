package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edumentor/edumentor-go-api/internal/models"
	"github.com/edumentor/edumentor-go-api/internal/service"
	"github.com/edumentor/edumentor-go-api/internal/utils"
)

// DashboardHandler serves the role-aware dashboard aggregate.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register wires the dashboard route.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("", h.show)
}

func (h *DashboardHandler) show(c *fiber.Ctx) error {
	userID := userIDFromContext(c)

	if userRoleFromContext(c) == models.RoleMentor {
		dashboard, err := h.service.Mentor(c.UserContext(), userID)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to build mentor dashboard")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to build dashboard")
		}
		return utils.SendSuccess(c, "mentor dashboard", dashboard)
	}

	dashboard, err := h.service.Student(c.UserContext(), userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build student dashboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build dashboard")
	}
	return utils.SendSuccess(c, "student dashboard", dashboard)
}
