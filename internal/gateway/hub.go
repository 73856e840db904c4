package gateway

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// FeedConnection represents one attached websocket feed client.
type FeedConnection struct {
	ID         string
	Conn       *websocket.Conn
	CreatedAt  time.Time
	LastActive time.Time
}

// Hub fans tool invocation events out to attached websocket clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*FeedConnection
	log     zerolog.Logger
}

// NewHub creates an empty hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*FeedConnection),
		log:     log,
	}
}

// Add registers a new feed client.
func (h *Hub) Add(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[id] = &FeedConnection{
		ID:         id,
		Conn:       conn,
		CreatedAt:  time.Now(),
		LastActive: time.Now(),
	}
	h.log.Debug().Str("client", id).Int("clients", len(h.clients)).Msg("feed client attached")
}

// Remove detaches a feed client.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.clients[id]; exists {
		delete(h.clients, id)
		h.log.Debug().Str("client", id).Int("clients", len(h.clients)).Msg("feed client detached")
	}
}

// Broadcast sends the event to every attached client. Clients whose write
// fails are dropped.
func (h *Hub) Broadcast(event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Warn().Err(err).Msg("cannot encode feed event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for id, client := range h.clients {
		if err := client.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Debug().Str("client", id).Err(err).Msg("dropping feed client")
			client.Conn.Close()
			delete(h.clients, id)
			continue
		}
		client.LastActive = time.Now()
	}
}

// Len returns the number of attached clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// CloseAll disconnects every client, typically on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, client := range h.clients {
		client.Conn.Close()
		delete(h.clients, id)
	}
}
