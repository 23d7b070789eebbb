package livefeed

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// conn serialises writes; gorilla connections allow one concurrent writer.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(v)
}

func (c *conn) writeControl(messageType int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteControl(messageType, nil, time.Now().Add(writeWait))
}

// Hub tracks open owner connections. An owner may have several tabs open.
type Hub struct {
	connections map[int64]map[*conn]struct{}
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]map[*conn]struct{}),
	}
}

func (h *Hub) register(userID int64, ws *websocket.Conn) *conn {
	c := &conn{ws: ws}
	h.mutex.Lock()
	defer h.mutex.Unlock()

	set, ok := h.connections[userID]
	if !ok {
		set = make(map[*conn]struct{})
		h.connections[userID] = set
	}
	set[c] = struct{}{}
	return c
}

// unregister removes c only; other connections of the same user stay.
func (h *Hub) unregister(userID int64, c *conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	set, ok := h.connections[userID]
	if !ok {
		return
	}
	if _, exists := set[c]; exists {
		delete(set, c)
		_ = c.ws.Close()
	}
	if len(set) == 0 {
		delete(h.connections, userID)
	}
}

// SendToUser writes message to every connection of userID and returns how
// many accepted it. Broken connections are dropped.
func (h *Hub) SendToUser(userID int64, message any) int {
	h.mutex.RLock()
	targets := make([]*conn, 0, len(h.connections[userID]))
	for c := range h.connections[userID] {
		targets = append(targets, c)
	}
	h.mutex.RUnlock()

	delivered := 0
	for _, c := range targets {
		if err := c.writeJSON(message); err != nil {
			h.unregister(userID, c)
			continue
		}
		delivered++
	}
	return delivered
}

func (h *Hub) IsOnline(userID int64) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections[userID]) > 0
}

// GetOnlineCount returns how many owners hold at least one feed connection.
func (h *Hub) GetOnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, set := range h.connections {
		for c := range set {
			_ = c.ws.Close()
		}
		delete(h.connections, userID)
	}
}
