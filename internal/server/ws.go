package server

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// clientBuffer is the number of pending messages per client before
// updates to that client are dropped.
const clientBuffer = 16

// Hub broadcasts game state snapshots to WebSocket clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]chan []byte
	latest  []byte
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]chan []byte)}
}

// Publish marshals v and sends it to every client. Messages identical to
// the previous one are not resent. A slow client misses updates rather
// than stalling the caller.
func (h *Hub) Publish(v any) error {
	msg, err := json.Marshal(v)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if bytes.Equal(msg, h.latest) {
		return nil
	}
	h.latest = msg

	for _, ch := range h.clients {
		select {
		case ch <- msg:
		default:
		}
	}
	return nil
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	ch := make(chan []byte, clientBuffer)

	h.mu.Lock()
	if h.latest != nil {
		ch <- h.latest
	}
	h.clients[conn] = ch
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range ch {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	close(ch)
	h.mu.Unlock()
	<-done
}
