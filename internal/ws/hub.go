// Package ws pushes "stats ready" events to connected cabinet clients so the
// dashboard can drop its loading state as soon as a background refresh lands.
package ws

import (
	"encoding/json"
	"sync"

	"partner_cabinet/internal/logger"
)

// Event is the single message type the hub emits.
type Event struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
}

// Hub tracks connected clients per public user id. A user may hold several
// connections (multiple tabs); all of them receive the event.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*Client]bool)}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*Client]bool)
	}
	h.clients[c.UserID][c] = true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[c.UserID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
}

// NotifyStatsReady tells every connection of the user that fresh stats are
// cached. Slow clients are skipped rather than blocked on.
func (h *Hub) NotifyStatsReady(userID string) {
	payload, err := json.Marshal(Event{Type: "stats_ready", UserID: userID})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		select {
		case c.send <- payload:
		default:
			logger.Warn("ws client send buffer full, dropping event", "user_id", userID)
		}
	}
}
