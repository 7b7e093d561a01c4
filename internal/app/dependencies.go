package app

import (
	core "github.com/nfrund/gallery/internal/gallery"
	"github.com/nfrund/gallery/internal/i18n"
	"github.com/nfrund/gallery/internal/pubsub"
	"github.com/nfrund/gallery/internal/rendering"
)

// Dependencies holds the core services that are required by the application's modules.
// This struct is passed from the main application entrypoint to wire up the modules.
type Dependencies struct {
	Remote     core.Remote
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber
	Renderer   rendering.Renderer
	Reporter   core.ErrorReporter
	Labels     i18n.Labels
}
