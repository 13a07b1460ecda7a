package events

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is one catalog activity notification: an upload, a like toggle or a
// playlist change. Clients use it to refresh without polling.
type Event struct {
	Type    string    `json:"type"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

// Hub fans catalog events out to every connected websocket. Delivery is
// best-effort: a failed write drops that connection, never the event.
//
// gorilla/websocket permits a single writer per connection, so each
// connection carries its own write lock; publishes from concurrent request
// handlers serialize per connection instead of racing on the frame writer.
type Hub struct {
	connections map[*websocket.Conn]*sync.Mutex
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[*websocket.Conn]*sync.Mutex),
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.connections[conn] = &sync.Mutex{}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, exists := h.connections[conn]; exists {
		_ = conn.Close()
		delete(h.connections, conn)
	}
}

func (h *Hub) Publish(eventType string, payload any) {
	event := Event{
		Type:    eventType,
		Payload: payload,
		At:      time.Now(),
	}

	h.mutex.RLock()
	conns := make(map[*websocket.Conn]*sync.Mutex, len(h.connections))
	for conn, writeLock := range h.connections {
		conns[conn] = writeLock
	}
	h.mutex.RUnlock()

	for conn, writeLock := range conns {
		writeLock.Lock()
		err := conn.WriteJSON(event)
		writeLock.Unlock()

		if err != nil {
			h.Unregister(conn)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn := range h.connections {
		_ = conn.Close()
		delete(h.connections, conn)
	}
}
