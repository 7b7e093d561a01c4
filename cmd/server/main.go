package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nfrund/gallery/internal/app"
	"github.com/nfrund/gallery/internal/config"
	"github.com/nfrund/gallery/internal/i18n"
	"github.com/nfrund/gallery/internal/logging"
	"github.com/nfrund/gallery/internal/pubsub"
	"github.com/nfrund/gallery/internal/registry"
	"github.com/nfrund/gallery/internal/remote"
	"github.com/nfrund/gallery/internal/rendering"
	"github.com/nfrund/gallery/internal/server"
)

func main() {
	cfg := config.New()
	slog.SetDefault(logging.NewWithWriter(os.Stdout, cfg.GetLogFormat(), cfg.GetLogLevel()))

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	session := remote.NewSession(cfg.GetAPIToken())
	if cfg.GetTokenIsBearer() {
		session.SetAuthToken(cfg.GetAPIToken())
	}
	client, err := remote.New(cfg.GetAPIURL(), session, remote.Options{Logger: slog.Default()})
	if err != nil {
		slog.Error("Failed to create gallery client", "error", err)
		os.Exit(1)
	}

	ps := pubsub.NewWatermillBridge()
	defer ps.Close()
	renderer := rendering.NewUniversalRenderer()

	s, err := server.New(server.Dependencies{Config: cfg, Renderer: renderer})
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	modules := app.NewModules(app.Dependencies{
		Remote:     client,
		Publisher:  ps,
		Subscriber: ps,
		Renderer:   renderer,
		Labels:     i18n.Match(cfg.GetLanguage()),
	})
	if err := s.InitModules(ctx, modules, registry.New(cfg)); err != nil {
		slog.Error("Failed to initialize modules", "error", err)
		os.Exit(1)
	}
	s.RegisterRoutes()

	if err := s.Start(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
