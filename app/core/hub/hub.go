package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tidwall/sjson"

	"zoya/app/pkg/logger"
)

const writeWait = 5 * time.Second

// Hub tracks live WebSocket observers and fans events out to them.
// Delivery is fire-and-forget: a connection that cannot take the write is
// dropped from the set, and observers that were offline simply miss the
// events published in the meantime.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func New() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]bool)}
}

// Add registers a freshly upgraded connection.
func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = true
	count := len(h.conns)
	h.mu.Unlock()
	logger.Info("WebSocket observer connected, %d active", count)
}

// Remove unregisters a connection and closes it.
func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		conn.Close()
	}
	count := len(h.conns)
	h.mu.Unlock()
	logger.Info("WebSocket observer disconnected, %d active", count)
}

// Count reports the number of live observers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Broadcast serializes {type, data} and writes it to every live observer.
// Connections that fail the write are closed and dropped.
func (h *Hub) Broadcast(eventType string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		logger.Error("Broadcast payload for %s not serializable: %v", eventType, err)
		return
	}
	envelope, err := sjson.Set(`{}`, "type", eventType)
	if err == nil {
		envelope, err = sjson.SetRaw(envelope, "data", string(payload))
	}
	if err != nil {
		logger.Error("Broadcast envelope for %s failed: %v", eventType, err)
		return
	}
	message := []byte(envelope)

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			delete(h.conns, conn)
			conn.Close()
		}
	}
}

// Close drops every observer, for shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.Close()
		delete(h.conns, conn)
	}
}
