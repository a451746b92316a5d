package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"CartPilot/entity"
	"CartPilot/journey"
)

// Event represents a WebSocket event sent to dashboard clients.
type Event struct {
	Type string      `json:"type"` // "step_executed", "side_effect"
	Data interface{} `json:"data"`
}

// Hub maintains the set of active WebSocket clients and broadcasts events.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	log        *slog.Logger
}

// NewHub creates a new Hub instance.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run starts the hub's event loop. Should be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastStep sends a step_executed event to all connected clients.
func (h *Hub) BroadcastStep(sessionID string, kind journey.Kind, step entity.ExecutedStep) {
	h.broadcast <- &Event{
		Type: "step_executed",
		Data: map[string]any{
			"session_id": sessionID,
			"journey":    kind,
			"step":       step,
		},
	}
}

// BroadcastSideEffect sends a purchase handoff record to all connected
// clients. Wired as a handoff store subscriber.
func (h *Hub) BroadcastSideEffect(rec entity.SideEffectRecord) {
	h.broadcast <- &Event{
		Type: "side_effect",
		Data: rec,
	}
}
