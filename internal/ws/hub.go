package ws

import (
	"encoding/json"
	"sync"

	"synergysphere/internal/metrics"
)

// RefreshPayload is the only message the notification channel carries. It
// tells the client to re-fetch; it never carries notification content.
type RefreshPayload struct {
	Type  string `json:"type"`
	Table string `json:"table"`
}

var refreshNotifications = RefreshPayload{Type: "refresh", Table: "notifications"}

// Client represents a single WebSocket connection with user context.
type Client struct {
	UserID uint
	Send   chan []byte
	Hub    *Hub // set by Register so Close can unregister
	mu     sync.Mutex
	closed bool
}

func NewClient(userID uint) *Client {
	return &Client{UserID: userID, Send: make(chan []byte, 16)}
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.Hub != nil {
		c.Hub.unregister(c)
	}
	close(c.Send)
}

// Hub maintains the open connections of every user.
type Hub struct {
	mu sync.RWMutex
	// userID -> clients (one user can have several tabs open)
	byUser map[uint]map[*Client]struct{}
	count  int
}

func NewHub() *Hub {
	return &Hub{byUser: make(map[uint]map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.Hub = h
	if h.byUser[c.UserID] == nil {
		h.byUser[c.UserID] = make(map[*Client]struct{})
	}
	h.byUser[c.UserID][c] = struct{}{}
	h.count++
	metrics.WebsocketConnections.Inc()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	m := h.byUser[c.UserID]
	if _, ok := m[c]; !ok {
		return
	}
	delete(m, c)
	if len(m) == 0 {
		delete(h.byUser, c.UserID)
	}
	h.count--
	metrics.WebsocketConnections.Dec()
}

// NotifyUser tells every open connection of userID to refresh its
// notification view.
func (h *Hub) NotifyUser(userID uint) {
	h.BroadcastToUser(userID, refreshNotifications)
}

// BroadcastToUser skips clients whose buffer is full.
func (h *Hub) BroadcastToUser(userID uint, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.byUser[userID] {
		select {
		case c.Send <- data:
		default:
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}
