// Package server provides the HTTP server for the Mudra sign typing system.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// clientQueueSize bounds the per-subscriber backlog before it is dropped.
const clientQueueSize = 16

// eventEnvelope wraps every pushed message with its kind.
type eventEnvelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// EventsHub pushes emissions and session status changes to WebSocket
// subscribers. It implements session.Publisher; publishing never blocks,
// subscribers that cannot keep up are disconnected.
type EventsHub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]chan []byte
}

// NewEventsHub creates an empty hub.
func NewEventsHub() *EventsHub {
	return &EventsHub{
		clients: make(map[*websocket.Conn]chan []byte),
	}
}

// PublishEmission pushes an emission event to all subscribers.
func (h *EventsHub) PublishEmission(e session.Emission) {
	h.publish(eventEnvelope{Type: "emission", Data: e})
}

// PublishStatus pushes a session status change to all subscribers.
func (h *EventsHub) PublishStatus(s session.Status) {
	h.publish(eventEnvelope{Type: "status", Data: s})
}

func (h *EventsHub) publish(env eventEnvelope) {
	msg, err := json.Marshal(env)
	if err != nil {
		log.Printf("failed to marshal event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn, queue := range h.clients {
		select {
		case queue <- msg:
		default:
			// Subscriber backlog full; closing the connection makes its
			// reader unregister the client.
			conn.Close()
		}
	}
}

// ClientCount returns the number of connected subscribers.
func (h *EventsHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *EventsHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	queue := make(chan []byte, clientQueueSize)

	h.mu.Lock()
	h.clients[conn] = queue
	h.mu.Unlock()

	// Unregister before closing the queue so no publish can race the close.
	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		close(queue)
	}()

	// Dedicated writer per subscriber
	go func() {
		for msg := range queue {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				conn.Close()
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
}
