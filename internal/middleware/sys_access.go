package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/edumentor/edumentor-go-api/internal/service"
	"github.com/edumentor/edumentor-go-api/internal/utils"
)

// SysAccessProtected guards system-view endpoints with a short-lived
// capability token presented in the X-Sys-Access header. The token is
// minted by the auth service in exchange for the admin PIN and is only
// honoured when its scope claim matches.
func SysAccessProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := strings.TrimSpace(c.Get("X-Sys-Access"))
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusForbidden, "system access token missing")
		}

		claims, err := parseHMACClaims(tokenString, secret)
		if err != nil {
			return utils.SendError(c, fiber.StatusForbidden, "invalid system access token")
		}

		scope, _ := claims["scope"].(string)
		if scope != service.SysAccessScope {
			return utils.SendError(c, fiber.StatusForbidden, "invalid system access token")
		}

		return c.Next()
	}
}
