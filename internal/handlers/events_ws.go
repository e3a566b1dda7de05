package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/atlascmdb/atlas/internal/database"
	"github.com/gorilla/websocket"
)

const (
	// eventWriteTimeout bounds a single WebSocket write.
	eventWriteTimeout = 10 * time.Second

	// eventBufferSize is the per-client send queue. A client whose
	// queue fills up is disconnected rather than applying backpressure
	// to the caller.
	eventBufferSize = 32
)

// EventHub broadcasts audit events to connected dashboard clients over
// WebSocket. Each client gets a buffered send queue drained by its own
// writer goroutine, so Broadcast never waits on a socket write; a
// client that falls eventBufferSize entries behind is dropped.
type EventHub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]chan database.AuditLog
}

// NewEventHub creates an event hub.
func NewEventHub() *EventHub {
	return &EventHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The API already enforces CORS and JWT auth upstream.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]chan database.AuditLog),
	}
}

// HandleWebSocket upgrades GET /api/events to a WebSocket connection.
func (h *EventHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("EventHub: upgrade failed: %v", err)
		return
	}

	send := make(chan database.AuditLog, eventBufferSize)

	h.mu.Lock()
	h.clients[conn] = send
	count := len(h.clients)
	h.mu.Unlock()
	log.Printf("EventHub: client connected (%d total)", count)

	// Writer goroutine: drains the send queue. Exits when the queue is
	// closed by remove or Broadcast, or when a write fails.
	go func() {
		for entry := range send {
			conn.SetWriteDeadline(time.Now().Add(eventWriteTimeout))
			if err := conn.WriteJSON(entry); err != nil {
				log.Printf("EventHub: dropping client: %v", err)
				h.remove(conn)
				return
			}
		}
	}()

	// Reader goroutine: we never expect client messages, but reading
	// is required to notice the close handshake.
	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast queues an audit entry for all connected clients. Clients
// with a full queue are disconnected; the caller is never blocked on
// network I/O.
func (h *EventHub) Broadcast(entry database.AuditLog) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, send := range h.clients {
		select {
		case send <- entry:
		default:
			log.Printf("EventHub: dropping slow client (queue full)")
			delete(h.clients, conn)
			close(send)
			conn.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *EventHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// remove disconnects a client. Safe to call more than once for the
// same connection; only the first call closes the queue.
func (h *EventHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	send, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
	}
	h.mu.Unlock()

	if ok {
		close(send)
		conn.Close()
	}
}
