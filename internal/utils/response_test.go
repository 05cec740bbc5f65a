package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func performRequest(t *testing.T, handler fiber.Handler) (int, APIResponse) {
	t.Helper()

	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope APIResponse
	require.NoError(t, json.Unmarshal(body, &envelope))
	return resp.StatusCode, envelope
}

func TestSendSuccess(t *testing.T) {
	status, envelope := performRequest(t, func(c *fiber.Ctx) error {
		return SendSuccess(c, "all good", map[string]int{"count": 3})
	})

	require.Equal(t, fiber.StatusOK, status)
	require.True(t, envelope.Success)
	require.Equal(t, "all good", envelope.Message)
	require.NotNil(t, envelope.Data)
}

func TestSendCreated(t *testing.T) {
	status, envelope := performRequest(t, func(c *fiber.Ctx) error {
		return SendCreated(c, "made", nil)
	})

	require.Equal(t, fiber.StatusCreated, status)
	require.True(t, envelope.Success)
}

func TestSendErrorDefaults(t *testing.T) {
	status, envelope := performRequest(t, func(c *fiber.Ctx) error {
		return SendError(c, fiber.StatusBadRequest, "")
	})

	require.Equal(t, fiber.StatusBadRequest, status)
	require.False(t, envelope.Success)
	require.Equal(t, "error", envelope.Message)
	require.Nil(t, envelope.Data)
}
