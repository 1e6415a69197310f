package handlers

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// Hub fans completed-comparison events out to connected dashboards. Clients
// only listen; inbound frames are drained and dropped.
type Hub struct {
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once
}

// NewHub creates a hub. Run must be started in a goroutine.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte, 16),
		done:       make(chan struct{}),
	}
}

// Run owns the client set; all membership changes and writes happen on this
// goroutine, so connections are never written concurrently.
func (h *Hub) Run() {
	clients := make(map[*websocket.Conn]bool)
	for {
		select {
		case <-h.done:
			for conn := range clients {
				conn.Close()
			}
			return
		case conn := <-h.register:
			clients[conn] = true
		case conn := <-h.unregister:
			if clients[conn] {
				delete(clients, conn)
				conn.Close()
			}
		case msg := <-h.broadcast:
			for conn := range clients {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					delete(clients, conn)
					conn.Close()
				}
			}
		}
	}
}

// Close shuts the hub down and disconnects all clients.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Broadcast queues an event for all connected clients. It never blocks: when
// the hub is saturated or closed the event is dropped — live updates are
// best-effort, the data is always available over the HTTP API.
func (h *Hub) Broadcast(v any) {
	msg, err := json.Marshal(v)
	if err != nil {
		log.Printf("[hub] failed to encode broadcast: %v", err)
		return
	}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
	}
}

// Handler returns the websocket endpoint handler.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		select {
		case h.register <- conn:
		case <-h.done:
			conn.Close()
			return
		}
		// Block reading until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		select {
		case h.unregister <- conn:
		case <-h.done:
		}
	})
}
