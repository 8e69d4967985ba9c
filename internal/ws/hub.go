// Package ws pushes order-status changes to connected admin consoles so the
// orders page updates without a manual refresh.
package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"

	applog "github.com/clynova/haciendacantabriafrontend-sub002/internal/log"
)

type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{conns: map[*websocket.Conn]bool{}}
}

// Handler upgrades the connection and parks it until the client goes away.
// Clients only listen; inbound frames are drained and ignored.
func (h *Hub) Handler() func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		h.mu.Lock()
		h.conns[c] = true
		h.mu.Unlock()
		defer func() {
			h.mu.Lock()
			delete(h.conns, c)
			h.mu.Unlock()
			_ = c.Close()
		}()
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}
}

type statusEvent struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// BroadcastOrderStatus fans an event out to every connected console. Broken
// connections are dropped on the spot.
func (h *Hub) BroadcastOrderStatus(orderID, status string) {
	data, err := json.Marshal(statusEvent{OrderID: orderID, Status: status})
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			applog.Error(nil, "ws.broadcast.drop", err, map[string]any{"order_id": orderID})
			delete(h.conns, c)
			_ = c.Close()
		}
	}
}
