package live

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/gallery/internal/hub"
)

const (
	sendBuffer   = 16
	writeTimeout = 10 * time.Second
)

// Handler upgrades live view connections and pumps hub fragments to them.
type Handler struct {
	hub *hub.Hub
	// ctx outlives the upgrade request; connections close when it is done.
	ctx context.Context
}

// NewHandler creates a handler whose connections live until ctx is done.
func NewHandler(ctx context.Context, h *hub.Hub) *Handler {
	return &Handler{hub: h, ctx: ctx}
}

// ServeWS handles WebSocket connection requests from the gallery page.
func (h *Handler) ServeWS(c echo.Context) error {
	// Accept enforces a same-origin check and answers failed handshakes itself.
	conn, err := websocket.Accept(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error("Failed to upgrade live connection", "error", err)
		return nil
	}

	sub := hub.NewSubscriber(sendBuffer)
	select {
	case h.hub.Register <- sub:
	case <-h.ctx.Done():
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return nil
	}

	go h.writePump(conn, sub)
	go h.readPump(conn, sub)
	return nil
}

// readPump discards client frames; it exists to notice disconnects.
func (h *Handler) readPump(conn *websocket.Conn, sub *hub.Subscriber) {
	defer func() {
		select {
		case h.hub.Unregister <- sub:
		case <-h.ctx.Done():
		}
		conn.Close(websocket.StatusNormalClosure, "client disconnected")
	}()

	for {
		if _, _, err := conn.Read(h.ctx); err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && !errors.Is(err, context.Canceled) {
				slog.Debug("Live connection read ended", "error", err)
			}
			return
		}
	}
}

// writePump sends fragments until the hub closes the subscriber.
func (h *Handler) writePump(conn *websocket.Conn, sub *hub.Subscriber) {
	defer conn.Close(websocket.StatusNormalClosure, "server-side cleanup")

	for fragment := range sub.Send {
		ctx, cancel := context.WithTimeout(h.ctx, writeTimeout)
		err := conn.Write(ctx, websocket.MessageText, fragment)
		cancel()
		if err != nil {
			slog.Warn("Live connection write failed", "error", err)
			return
		}
	}
}
