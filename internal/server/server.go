package server

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/gallery/internal/config"
	"github.com/nfrund/gallery/internal/handlers"
	appmiddleware "github.com/nfrund/gallery/internal/middleware"
	"github.com/nfrund/gallery/internal/module"
	"github.com/nfrund/gallery/internal/rendering"
)

// Dependencies holds everything the HTTP server needs.
type Dependencies struct {
	Config   config.Provider
	Renderer *rendering.UniversalRenderer
	// Echo is optional; tests pass their own instance.
	Echo *echo.Echo
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E   *echo.Echo
	Cfg config.Provider

	modules []module.Module
}

// New creates a new Server instance with the middleware chain installed.
func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil {
		return nil, errors.New("server: config is required")
	}
	e := deps.Echo
	if e == nil {
		e = echo.New()
	}
	e.HideBanner = true

	renderer := deps.Renderer
	if renderer == nil {
		renderer = rendering.NewUniversalRenderer()
	}
	e.Renderer = renderer
	e.Validator = handlers.NewValidator()
	setupErrorHandling(e)

	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger)
	e.Use(middleware.Recover())

	store := sessions.NewCookieStore([]byte(deps.Config.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	return &Server{E: e, Cfg: deps.Config}, nil
}

// setupErrorHandling installs an error handler that logs unexpected errors
// with a stack trace and answers every error as JSON.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			slog.Error("Internal Server Error (Unhandled)",
				"error", err,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"stack_trace", string(debug.Stack()),
			)
		}
		status, body := handlers.NewErrorResponse(err)
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			slog.Error("Failed to write error response", "error", err)
		}
	}
}
