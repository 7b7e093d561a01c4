// Package live pushes gallery changes to every open page over a websocket.
package live

import (
	"context"
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/gallery/internal/hub"
	"github.com/nfrund/gallery/internal/module"
	"github.com/nfrund/gallery/internal/pubsub"
	"github.com/nfrund/gallery/internal/registry"
	"github.com/nfrund/gallery/internal/rendering"
)

// Path is where the websocket endpoint is mounted.
const Path = "/live"

// LiveModule implements module.Module for live page updates.
type LiveModule struct {
	module.BaseModule
	subscriber pubsub.Subscriber
	renderer   rendering.Renderer

	hub    *hub.Hub
	cancel context.CancelFunc
	done   chan struct{}
}

// Dependencies holds all the services the LiveModule requires.
type Dependencies struct {
	Subscriber pubsub.Subscriber
	Renderer   rendering.Renderer
}

// New creates a new instance of the LiveModule.
func New(deps Dependencies) *LiveModule {
	return &LiveModule{
		subscriber: deps.Subscriber,
		renderer:   deps.Renderer,
		hub:        hub.NewHub(),
	}
}

// Name returns the module name.
func (m *LiveModule) Name() string {
	return "live"
}

// Hub returns the fan-out hub of connected pages.
func (m *LiveModule) Hub() *hub.Hub {
	return m.hub
}

// Boot starts the hub and the event bridge and mounts the websocket route.
// It needs the synchronizer registered by the gallery module.
func (m *LiveModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	s, ok := registry.Get(reg, registry.SynchronizerKey)
	if !ok {
		return errors.New("live module: gallery synchronizer is not registered")
	}
	if m.subscriber == nil || m.renderer == nil {
		return errors.New("live module: subscriber and renderer are required")
	}

	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	go func() {
		defer close(m.done)
		m.hub.Run(ctx)
	}()

	if err := NewBridge(m.subscriber, m.renderer, s, m.hub).Start(ctx); err != nil {
		m.cancel()
		return err
	}

	slog.Info("Booting LiveModule: Setting up routes...")
	g.GET(Path, NewHandler(ctx, m.hub).ServeWS)
	return nil
}

// Shutdown stops the hub, which closes every live connection.
func (m *LiveModule) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down LiveModule...")
	if m.cancel == nil {
		return nil
	}
	m.cancel()
	select {
	case <-m.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
