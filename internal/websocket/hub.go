package websocket

import (
	"encoding/json"
	"sync"
)

// ChangeEvent tells a connected client that one of its rows changed. Only
// identifiers travel here; payloads stay encrypted at rest and are
// re-fetched over the authenticated API.
type ChangeEvent struct {
	Entity string `json:"entity"`
	Action string `json:"action"`
	ID     int64  `json:"id"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]map[*Client]struct{}),
	}
}

func (h *Hub) Register(userID int64, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*Client]struct{})
	}
	h.clients[userID][client] = struct{}{}
}

func (h *Hub) Unregister(userID int64, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		return
	}
	delete(h.clients[userID], client)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

// BroadcastChange fans the event out to the owner's connections. Slow
// clients are skipped rather than blocking the request path.
func (h *Hub) BroadcastChange(userID int64, event ChangeEvent) {
	payload, _ := json.Marshal(event)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[userID] {
		select {
		case client.send <- payload:
		default:
		}
	}
}
