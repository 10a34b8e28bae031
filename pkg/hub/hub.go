// Package hub provides a thread-safe websocket broadcast hub for the
// preview server, using the channel-based fan-out pattern. One hub
// carries one feed: annotated JPEG frames go out as binary messages,
// match results and pipeline status as JSON.
package hub

import (
	"encoding/json"
	"sync"

	"github.com/libcompanion/companion-go/internal/log"
)

// MessageType indicates the websocket message format.
type MessageType int

const (
	// JSONMessage is a JSON-encoded message (results, status).
	JSONMessage MessageType = iota
	// BinaryMessage is raw binary data (annotated JPEG frames).
	BinaryMessage
)

// Message is one payload to broadcast to all clients of a feed.
type Message struct {
	Type MessageType
	Data []byte
}

// Hub maintains the set of active clients of one feed and broadcasts
// messages to them. Slow clients are dropped rather than allowed to
// stall the pipeline.
type Hub struct {
	// Feed name, for logging.
	name string

	clients map[*Client]bool

	broadcast  chan Message
	register   chan *Client
	unregister chan *Client

	// Guards clients against the read-only count from outside; the
	// fan-out loop takes the write lock whenever it may drop a client.
	mu sync.RWMutex
}

// New creates a hub for the named feed.
func New(name string) *Hub {
	return &Hub{
		name:       name,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's fan-out loop. It should be called in a goroutine
// before any client connects.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("preview client connected", "feed", h.name, "clients", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("preview client disconnected", "feed", h.name, "clients", count)

		case message := <-h.broadcast:
			// Write lock: the drop path below mutates the client set.
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client buffer full. Drop the client, not the feed.
					close(client.send)
					delete(h.clients, client)
					log.Warn("dropped slow preview client", "feed", h.name)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues a message for all connected clients. When the
// broadcast buffer is full the message is dropped; frames are
// disposable and results are re-sent with the next frame.
func (h *Hub) Broadcast(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		log.Warn("broadcast buffer full, dropping message", "feed", h.name)
	}
}

// BroadcastJSON encodes v and broadcasts it as a JSON message.
func (h *Hub) BroadcastJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(Message{Type: JSONMessage, Data: data})
	return nil
}

// BroadcastBinary broadcasts binary data, typically a JPEG frame.
func (h *Hub) BroadcastBinary(data []byte) {
	h.Broadcast(Message{Type: BinaryMessage, Data: data})
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
