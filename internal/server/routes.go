package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/gallery/internal/handlers"
	"github.com/nfrund/gallery/internal/module"
	"github.com/nfrund/gallery/internal/registry"
)

// RegisterRoutes sets up the routes owned by the server itself.
func (s *Server) RegisterRoutes() {
	s.E.GET("/health", handlers.Health)
}

// InitModules runs the Register phase of every module, then boots them in
// order on the root group.
func (s *Server) InitModules(ctx context.Context, modules []module.Module, reg *registry.Registry) error {
	for _, m := range modules {
		if err := m.Register(reg); err != nil {
			return fmt.Errorf("register module %s: %w", m.Name(), err)
		}
	}
	root := s.E.Group("")
	for _, m := range modules {
		if err := m.Boot(ctx, root, reg); err != nil {
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
		slog.Info("Module booted", "module", m.Name())
		s.modules = append(s.modules, m)
	}
	return nil
}
