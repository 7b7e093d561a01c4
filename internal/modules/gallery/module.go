// Package gallery mounts the gallery page and its htmx actions.
package gallery

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/labstack/echo/v4"
	core "github.com/nfrund/gallery/internal/gallery"
	"github.com/nfrund/gallery/internal/i18n"
	"github.com/nfrund/gallery/internal/middleware"
	"github.com/nfrund/gallery/internal/module"
	"github.com/nfrund/gallery/internal/pubsub"
	"github.com/nfrund/gallery/internal/registry"
	"github.com/nfrund/gallery/internal/rendering"
)

// GalleryModule owns the process-wide synchronizer and serves the page.
type GalleryModule struct {
	module.BaseModule
	deps Dependencies

	sync   *core.Synchronizer
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Dependencies holds all the services the module requires.
type Dependencies struct {
	Remote    core.Remote
	Publisher pubsub.Publisher
	Renderer  rendering.Renderer
	Reporter  core.ErrorReporter

	// Labels defaults to the English catalog.
	Labels *i18n.Labels

	// LivePath is the websocket path the page connects to; empty disables
	// live updates.
	LivePath string
}

// New creates a new instance of the GalleryModule.
func New(deps Dependencies) *GalleryModule {
	return &GalleryModule{deps: deps}
}

// Name returns the module name.
func (m *GalleryModule) Name() string {
	return "gallery"
}

// Register builds the synchronizer and shares it with the other modules.
func (m *GalleryModule) Register(reg *registry.Registry) error {
	if m.deps.Renderer == nil {
		return errors.New("gallery module: renderer is required")
	}
	s, err := core.New(core.Dependencies{
		Remote:    m.deps.Remote,
		Reporter:  m.deps.Reporter,
		Publisher: m.deps.Publisher,
		Labels:    m.deps.Labels,
	})
	if err != nil {
		return err
	}
	m.sync = s
	registry.Set(reg, registry.SynchronizerKey, s)
	return nil
}

// Boot starts the initial load in the background and mounts the routes.
// The page is usable before the load completes.
func (m *GalleryModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	loadCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := m.sync.Load(loadCtx); err != nil {
			slog.Warn("Initial gallery load incomplete", "error", err)
			return
		}
		slog.Info("Gallery loaded", "cards", len(m.sync.Cards()))
	}()

	slog.Info("Booting GalleryModule: Setting up routes...")
	h := NewHandler(m.sync, m.deps.Renderer, m.deps.LivePath)
	limit := middleware.RateLimiter()

	g.GET("/", h.Page)

	g.POST("/profile/open", h.OpenEditProfile)
	g.POST("/cards/open", h.OpenNewCard)
	g.POST("/avatar/open", h.OpenUpdateAvatar)
	g.POST("/popups/:id/close", h.ClosePopup)

	g.POST("/profile", h.SubmitProfile, limit)
	g.POST("/cards", h.SubmitCard, limit)
	g.POST("/avatar", h.SubmitAvatar, limit)
	g.POST("/cards/:id/like", h.ToggleLike, limit)
	g.POST("/cards/:id/delete", h.DeleteCard, limit)
	g.POST("/cards/:id/preview", h.OpenPreview)
	return nil
}

// Synchronizer returns the state owner, available after Register.
func (m *GalleryModule) Synchronizer() *core.Synchronizer {
	return m.sync
}

// Shutdown cancels a load still in flight and waits for it.
func (m *GalleryModule) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down GalleryModule...")
	if m.cancel != nil {
		m.cancel()
	}
	done := make(chan struct{})
	go func() { m.wg.Wait(); close(done) }()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
