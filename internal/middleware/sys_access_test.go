package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/edumentor/edumentor-go-api/internal/middleware"
	"github.com/edumentor/edumentor-go-api/internal/service"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(time.Minute).Unix()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newSysAccessApp() *fiber.App {
	app := fiber.New()
	app.Get("/admin", middleware.SysAccessProtected(testSecret), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestSysAccessProtectedAcceptsScopedToken(t *testing.T) {
	app := newSysAccessApp()
	token := signTestToken(t, jwt.MapClaims{"sub": 1, "role": "mentor", "scope": service.SysAccessScope})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("X-Sys-Access", token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSysAccessProtectedRejectsMissingHeader(t *testing.T) {
	app := newSysAccessApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestSysAccessProtectedRejectsSessionToken(t *testing.T) {
	app := newSysAccessApp()

	// A plain session token has no scope claim and must be refused.
	token := signTestToken(t, jwt.MapClaims{"sub": 1, "role": "mentor"})
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("X-Sys-Access", token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestJWTProtectedRejectsSysAccessToken(t *testing.T) {
	app := fiber.New()
	app.Get("/me", middleware.JWTProtected(testSecret), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// The capability token cannot double as a session token.
	token := signTestToken(t, jwt.MapClaims{"sub": 1, "role": "mentor", "scope": service.SysAccessScope})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedPopulatesLocals(t *testing.T) {
	var seenID interface{}
	var seenRole interface{}

	app := fiber.New()
	app.Get("/me", middleware.JWTProtected(testSecret), func(c *fiber.Ctx) error {
		seenID = c.Locals("user_id")
		seenRole = c.Locals("user_role")
		return c.SendStatus(fiber.StatusOK)
	})

	token := signTestToken(t, jwt.MapClaims{"sub": 42, "role": "Student"})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(42), seenID)
	require.Equal(t, "student", seenRole)
}
