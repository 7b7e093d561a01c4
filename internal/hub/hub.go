// Package hub fans rendered HTML fragments out to connected live views.
package hub

import (
	"context"
	"log/slog"
)

// Subscriber is one connected client. The hub writes fragments to Send and
// closes it when the subscriber is dropped.
type Subscriber struct {
	Send chan []byte
}

// NewSubscriber creates a subscriber with a buffer of size fragments.
func NewSubscriber(size int) *Subscriber {
	return &Subscriber{Send: make(chan []byte, size)}
}

// Hub maintains the set of active subscribers and broadcasts to them.
type Hub struct {
	subscribers map[*Subscriber]bool

	// Broadcast receives fragments for every subscriber.
	Broadcast chan []byte

	// Register adds a subscriber.
	Register chan *Subscriber

	// Unregister removes a subscriber and closes its Send channel.
	Unregister chan *Subscriber

	count chan chan int
}

// NewHub creates and returns a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		Broadcast:   make(chan []byte),
		Register:    make(chan *Subscriber),
		Unregister:  make(chan *Subscriber),
		count:       make(chan chan int),
		subscribers: make(map[*Subscriber]bool),
	}
}

// Run processes the hub's channels until ctx is done, then closes every
// subscriber. It must be run in its own goroutine.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for s := range h.subscribers {
			close(s.Send)
			delete(h.subscribers, s)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case s := <-h.Register:
			h.subscribers[s] = true
			slog.Info("Live subscriber registered", "total_subscribers", len(h.subscribers))

		case s := <-h.Unregister:
			if _, ok := h.subscribers[s]; ok {
				delete(h.subscribers, s)
				close(s.Send)
				slog.Info("Live subscriber unregistered", "total_subscribers", len(h.subscribers))
			}

		case message := <-h.Broadcast:
			slog.Debug("Broadcasting fragment", "recipient_count", len(h.subscribers))
			for s := range h.subscribers {
				select {
				case s.Send <- message:
				default:
					// A full buffer means the client stopped reading.
					close(s.Send)
					delete(h.subscribers, s)
					slog.Warn("Unregistering slow subscriber", "total_subscribers", len(h.subscribers))
				}
			}

		case reply := <-h.count:
			reply <- len(h.subscribers)
		}
	}
}

// Len returns the number of registered subscribers. It blocks until Run
// serves the request or ctx is done.
func (h *Hub) Len(ctx context.Context) int {
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
	case <-ctx.Done():
		return 0
	}
	select {
	case n := <-reply:
		return n
	case <-ctx.Done():
		return 0
	}
}
