package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"damagesnap/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := observability.Logger
	observability.Logger = slog.New(slog.NewJSONHandler(&buf, nil))
	t.Cleanup(func() { observability.Logger = prev })
	return &buf
}

func loggedStatus(t *testing.T, buf *bytes.Buffer) (int, string) {
	t.Helper()
	var line struct {
		Msg    string `json:"msg"`
		Status int    `json:"status"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line.Status, line.Msg
}

func TestStructuredLogger_Status(t *testing.T) {
	app := fiber.New()
	app.Use(StructuredLogger())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusAccepted) })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(http.StatusTeapot, "short and stout") })

	tests := []struct {
		path   string
		status int
		msg    string
	}{
		{"/ok", http.StatusAccepted, "request processed"},
		{"/nope", http.StatusNotFound, "request failed"},
		{"/boom", http.StatusInternalServerError, "request failed"},
		{"/teapot", http.StatusTeapot, "request failed"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			buf := captureLog(t)
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			status, msg := loggedStatus(t, buf)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.msg, msg)
		})
	}
}
