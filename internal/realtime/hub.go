package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/datoactivo/backend/pkg/logger"
)

// Event is one message pushed to live subscribers, e.g. a completed refresh.
type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// Hub maintains the set of live subscribers and fans events out to them.
// Slow subscribers get dropped, not waited on.
type Hub struct {
	clients    map[*client]struct{}
	clientsMu  sync.RWMutex
	broadcast  chan Event
	register   chan *client
	unregister chan *client
	logger     *logger.Logger
}

// NewHub creates a new hub.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		broadcast:  make(chan Event, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
		logger:     log.WithField("component", "realtime"),
	}
}

// Run drives the hub until the context ends. Call in its own goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case c := <-h.register:
			h.clientsMu.Lock()
			h.clients[c] = struct{}{}
			h.clientsMu.Unlock()
			h.logger.WithField("clients", h.ClientCount()).Debug("subscriber connected")
		case c := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.clientsMu.Unlock()
			h.logger.WithField("clients", h.ClientCount()).Debug("subscriber disconnected")
		case event := <-h.broadcast:
			h.fanOut(event)
		}
	}
}

// Broadcast queues an event for every subscriber. Never blocks; if the hub
// is saturated the event is dropped.
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	event := Event{Type: eventType, Timestamp: time.Now(), Payload: payload}
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("broadcast buffer full, dropping event")
	}
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) fanOut(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.WithError(err).Error("failed to encode event")
		return
	}

	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Subscriber is not draining; it will be unregistered by its
			// write pump once the connection times out.
		}
	}
}

func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
	h.logger.Info("realtime hub stopped")
}
