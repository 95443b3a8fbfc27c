// Package bridge pushes data-change events to local UI clients over
// WebSocket so every view open on the shared tablet stays in sync. It is
// transport only: the in-process cache listeners remain the source of the
// events it carries.
package bridge

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Event is one notification pushed to connected UI clients. Dataset names
// the collection that changed; invalidation events carry no payload.
type Event struct {
	Type    string `json:"type"`
	Dataset string `json:"dataset,omitempty"`
}

// DataChanged builds the invalidation event for a dataset.
func DataChanged(dataset string) Event {
	return Event{Type: "data_changed", Dataset: dataset}
}

// PinChanged signals that the PIN gate state moved (profile login/logout).
func PinChanged() Event {
	return Event{Type: "pin_changed"}
}

// Hub tracks connected clients and fans events out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends ev to every connected client. Slow clients drop events
// rather than blocking the sender; a dropped invalidation is recovered by
// the next one.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("marshal event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
