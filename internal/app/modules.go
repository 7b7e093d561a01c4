package app

import (
	"github.com/nfrund/gallery/internal/module"
	"github.com/nfrund/gallery/internal/modules/gallery"
	"github.com/nfrund/gallery/internal/modules/live"
)

// NewModules creates and returns the list of all active modules for the application.
// Order matters: the live module looks up the synchronizer the gallery
// module registers.
func NewModules(deps Dependencies) []module.Module {
	labels := deps.Labels
	return []module.Module{
		gallery.New(gallery.Dependencies{
			Remote:    deps.Remote,
			Publisher: deps.Publisher,
			Renderer:  deps.Renderer,
			Reporter:  deps.Reporter,
			Labels:    &labels,
			LivePath:  live.Path,
		}),
		live.New(live.Dependencies{
			Subscriber: deps.Subscriber,
			Renderer:   deps.Renderer,
		}),
	}
}
