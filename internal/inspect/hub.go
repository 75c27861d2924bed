package inspect

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/appstore/pkg/appstore"
)

// MessageType identifies a message pushed to inspector clients.
type MessageType string

const (
	MessageSnapshot MessageType = "snapshot"
	MessageLocale   MessageType = "locale"
)

// Message is sent to inspector clients via WebSocket.
type Message struct {
	Type  MessageType        `json:"type"`
	State *appstore.Snapshot `json:"state,omitempty"`
	Title string             `json:"title,omitempty"`
}

// DefaultWriteTimeout bounds a single write to an inspector client.
const DefaultWriteTimeout = 5 * time.Second

// Hub fans store changes out to WebSocket clients.
type Hub struct {
	clients      map[*websocket.Conn]bool
	mu           sync.RWMutex
	writeMu      sync.Mutex
	writeTimeout time.Duration
	upgrader     websocket.Upgrader
}

// NewHub creates a hub. checkOrigin may be nil to allow every origin.
// A client whose write does not finish within writeTimeout is dropped;
// zero or negative means DefaultWriteTimeout.
func NewHub(checkOrigin func(*http.Request) bool, writeTimeout time.Duration) *Hub {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	return &Hub{
		clients:      make(map[*websocket.Conn]bool),
		writeTimeout: writeTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Serve upgrades the request, sends initial, and keeps the connection
// registered until the client disconnects.
func (h *Hub) Serve(w http.ResponseWriter, req *http.Request, initial Message) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	data, err := json.Marshal(initial)
	if err != nil {
		conn.Close()
		return
	}

	// Register under writeMu so no broadcast lands before the initial state.
	h.writeMu.Lock()
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	err = h.write(conn, data)
	h.writeMu.Unlock()
	if err != nil {
		h.remove(conn)
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(conn)
}

// Broadcast sends msg to every connected client.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	for _, client := range clients {
		if err := h.write(client, data); err != nil {
			h.remove(client)
		}
	}
}

// write must be called with writeMu held.
func (h *Hub) write(conn *websocket.Conn, data []byte) error {
	conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		conn.Close()
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}
