package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/gallery/internal/config"
	"github.com/nfrund/gallery/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs routes the default logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	original := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{AddSource: true})))
	t.Cleanup(func() { slog.SetDefault(original) })
	return &buf
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(Dependencies{})
	assert.Error(t, err)

	s, err := New(Dependencies{Config: &config.Config{SessionSecret: "secret"}})
	require.NoError(t, err)
	assert.NotNil(t, s.E.Renderer)
	assert.NotNil(t, s.E.Validator)
}

func TestHTTPErrorHandler(t *testing.T) {
	logs := captureLogs(t)

	e := echo.New()
	setupErrorHandling(e)
	e.POST("/cards/:id/like", func(c echo.Context) error {
		return errors.New("renderer exploded while drawing card " + c.Param("id"))
	})
	e.POST("/popups/:id/close", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "unknown popup")
	})

	serve := func(method, path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
		return rec
	}

	t.Run("unhandled error is logged with a stack trace", func(t *testing.T) {
		logs.Reset()
		rec := serve(http.MethodPost, "/cards/lake/like")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		var body handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "internal", body.Code)
		assert.NotContains(t, body.Message, "exploded", "internal details stay in the log")

		out := logs.String()
		assert.Contains(t, out, "Internal Server Error (Unhandled)")
		assert.Contains(t, out, `error="renderer exploded while drawing card lake"`)
		assert.Contains(t, out, "path=/cards/lake/like")
		assert.Contains(t, out, "stack_trace=")
		assert.Contains(t, out, "runtime/debug/stack.go")
		assert.Contains(t, out, "internal/server/server_test.go")
	})

	t.Run("http errors keep their status and are not logged", func(t *testing.T) {
		logs.Reset()
		rec := serve(http.MethodPost, "/popups/bogus/close")

		require.Equal(t, http.StatusNotFound, rec.Code)
		var body handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, handlers.ErrorResponse{Code: "not_found", Message: "unknown popup"}, body)
		assert.NotContains(t, logs.String(), "Unhandled")
	})

	t.Run("unknown route answers not_found", func(t *testing.T) {
		rec := serve(http.MethodGet, "/missing")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"not_found"`)
	})

	t.Run("HEAD gets no body", func(t *testing.T) {
		rec := serve(http.MethodHead, "/missing")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}
