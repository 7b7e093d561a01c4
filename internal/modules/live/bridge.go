package live

import (
	"context"
	"fmt"
	"log/slog"

	core "github.com/nfrund/gallery/internal/gallery"
	"github.com/nfrund/gallery/internal/hub"
	"github.com/nfrund/gallery/internal/pubsub"
	"github.com/nfrund/gallery/internal/rendering"
	"github.com/nfrund/gallery/web/src/templates/components"
)

// Bridge listens for gallery events, renders the out-of-band update from
// the current snapshot and broadcasts it to every live view.
type Bridge struct {
	subscriber pubsub.Subscriber
	renderer   rendering.Renderer
	sync       *core.Synchronizer
	hub        *hub.Hub
}

// NewBridge creates a bridge; Start must be called to begin listening.
func NewBridge(sub pubsub.Subscriber, r rendering.Renderer, s *core.Synchronizer, h *hub.Hub) *Bridge {
	return &Bridge{subscriber: sub, renderer: r, sync: s, hub: h}
}

// Start subscribes to every gallery topic. Handlers run until ctx is done.
func (b *Bridge) Start(ctx context.Context) error {
	slog.Info("Starting live gallery bridge")
	for _, topic := range core.Topics() {
		if err := b.subscriber.Subscribe(ctx, topic, b.handle); err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
	}
	return nil
}

func (b *Bridge) handle(ctx context.Context, msg pubsub.Message) error {
	fragment, err := b.renderer.RenderComponent(ctx, components.LiveUpdate(b.sync.Snapshot()))
	if err != nil {
		return fmt.Errorf("render live update: %w", err)
	}
	slog.Debug("Pushing live update", "topic", msg.Topic, "bytes", len(fragment))
	select {
	case b.hub.Broadcast <- fragment:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
