package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/service"
	"github.com/edumentor/edumentor-go-api/internal/utils"
)

// AdminSystemHandler exposes analytics, bulk recalculation and the audit
// trail from the system view.
type AdminSystemHandler struct {
	analytics service.AdminAnalyticsService
	progress  service.ProgressService
	activity  service.ActivityService
	logger    zerolog.Logger
}

// NewAdminSystemHandler constructs an admin system handler.
func NewAdminSystemHandler(analytics service.AdminAnalyticsService, progress service.ProgressService, activity service.ActivityService, logger zerolog.Logger) *AdminSystemHandler {
	return &AdminSystemHandler{
		analytics: analytics,
		progress:  progress,
		activity:  activity,
		logger:    logger.With().Str("component", "admin_system_handler").Logger(),
	}
}

// Register wires admin system routes.
func (h *AdminSystemHandler) Register(router fiber.Router) {
	router.Get("/analytics/study-summary", h.studySummary)
	router.Post("/progress/recalculate", h.recalculate)
	router.Get("/activity", h.activityList)
}

func (h *AdminSystemHandler) studySummary(c *fiber.Ctx) error {
	summary, err := h.analytics.StudySummary(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build study summary")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build study summary")
	}

	return utils.SendSuccess(c, "study summary", summary)
}

func (h *AdminSystemHandler) recalculate(c *fiber.Ctx) error {
	summary, err := h.progress.RecalculateAll(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("bulk recalculation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to recalculate progress")
	}

	return utils.SendSuccess(c, "progress recalculated", summary)
}

func (h *AdminSystemHandler) activityList(c *fiber.Ctx) error {
	var req dto.ActivityListRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	entries, err := h.activity.List(c.UserContext(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list activity")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list activity")
	}

	return utils.SendSuccess(c, "activity log", entries)
}
