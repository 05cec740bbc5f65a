package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/service"
	"github.com/edumentor/edumentor-go-api/internal/utils"
)

// AuthHandler handles registration, login and system access grants.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires public auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
}

// RegisterProtected wires auth routes that require an authenticated session.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Post("/sys-access", h.sysAccess)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	account, err := h.service.Register(c.UserContext(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			return utils.SendError(c, fiber.StatusConflict, "email already registered")
		default:
			h.logger.Error().Err(err).Msg("registration failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to register account")
		}
	}

	return utils.SendCreated(c, "account registered", account)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	tokens, err := h.service.Login(c.UserContext(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrInvalidCredentials):
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid email or password")
		default:
			h.logger.Error().Err(err).Msg("login failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to log in")
		}
	}

	return utils.SendSuccess(c, "login successful", tokens)
}

func (h *AuthHandler) sysAccess(c *fiber.Ctx) error {
	var payload dto.SysAccessRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	grant, err := h.service.GrantSysAccess(c.UserContext(), userIDFromContext(c), userRoleFromContext(c), payload.PIN)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrInvalidPIN):
			return utils.SendError(c, fiber.StatusForbidden, "invalid pin")
		default:
			h.logger.Error().Err(err).Msg("system access grant failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to grant system access")
		}
	}

	return utils.SendSuccess(c, "system access granted", grant)
}
