package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/handler"
	"github.com/edumentor/edumentor-go-api/internal/service"
)

type mockAuthService struct {
	registered dto.RegisterRequest
	account    dto.AccountResponse
	tokens     dto.TokenResponse
	grant      dto.SysAccessResponse
	err        error
}

func (m *mockAuthService) Register(_ context.Context, payload dto.RegisterRequest) (dto.AccountResponse, error) {
	m.registered = payload
	if m.err != nil {
		return dto.AccountResponse{}, m.err
	}
	return m.account, nil
}

func (m *mockAuthService) Login(context.Context, dto.LoginRequest) (dto.TokenResponse, error) {
	if m.err != nil {
		return dto.TokenResponse{}, m.err
	}
	return m.tokens, nil
}

func (m *mockAuthService) GrantSysAccess(context.Context, uint, string, string) (dto.SysAccessResponse, error) {
	if m.err != nil {
		return dto.SysAccessResponse{}, m.err
	}
	return m.grant, nil
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(body, target))
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthHandlerRegisterSuccess(t *testing.T) {
	svc := &mockAuthService{account: dto.AccountResponse{ID: 1, Name: "Ani", Role: "student"}}
	app := fiber.New()
	handler.NewAuthHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/auth"))

	resp := postJSON(t, app, "/api/v1/auth/register", dto.RegisterRequest{
		Name:     "Ani",
		Email:    "ani@example.com",
		Password: "correct-horse",
		Role:     "student",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var envelope struct {
		Success bool                `json:"success"`
		Data    dto.AccountResponse `json:"data"`
	}
	decodeResponse(t, resp, &envelope)
	require.True(t, envelope.Success)
	require.Equal(t, uint(1), envelope.Data.ID)
	require.Equal(t, "ani@example.com", svc.registered.Email)
}

func TestAuthHandlerRegisterConflict(t *testing.T) {
	svc := &mockAuthService{err: service.ErrEmailTaken}
	app := fiber.New()
	handler.NewAuthHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/auth"))

	resp := postJSON(t, app, "/api/v1/auth/register", dto.RegisterRequest{
		Name:     "Ani",
		Email:    "ani@example.com",
		Password: "correct-horse",
		Role:     "student",
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	svc := &mockAuthService{err: service.ErrInvalidCredentials}
	app := fiber.New()
	handler.NewAuthHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/auth"))

	resp := postJSON(t, app, "/api/v1/auth/login", dto.LoginRequest{
		Email:    "ani@example.com",
		Password: "wrong",
		Role:     "student",
	})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandlerSysAccess(t *testing.T) {
	svc := &mockAuthService{grant: dto.SysAccessResponse{SysToken: "tok", ExpiresIn: 300}}
	app := fiber.New()
	group := app.Group("/api/v1/auth", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(7))
		c.Locals("user_role", "mentor")
		return c.Next()
	})
	handler.NewAuthHandler(svc, zerolog.New(io.Discard)).RegisterProtected(group)

	resp := postJSON(t, app, "/api/v1/auth/sys-access", dto.SysAccessRequest{PIN: "4821"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data dto.SysAccessResponse `json:"data"`
	}
	decodeResponse(t, resp, &envelope)
	require.Equal(t, "tok", envelope.Data.SysToken)

	svc.err = service.ErrInvalidPIN
	resp = postJSON(t, app, "/api/v1/auth/sys-access", dto.SysAccessRequest{PIN: "0000"})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
