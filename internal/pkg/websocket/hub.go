package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/resourcehub/internal/domain"
)

// EventType names a change to a stored resource.
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// Event is pushed to every subscriber whose filter matches.
type Event struct {
	Type       EventType        `json:"type"`
	ResourceID string           `json:"resourceId"`
	Resource   *domain.Existing `json:"resource,omitempty"`
	Timestamp  time.Time        `json:"timestamp"`
}

// Hub maintains the set of active clients and broadcasts resource events to them
type Hub struct {
	clients map[*Client]bool

	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

// Run handles client registrations and broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	h.logger.Info().
		Str("university", client.filter.University).
		Str("branch", client.filter.Branch).
		Str("addr", client.remoteAddr()).
		Msg("Event subscriber registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.logger.Info().Str("addr", client.remoteAddr()).Msg("Event subscriber unregistered")
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}

// broadcastEvent sends an event to every matching client. Clients whose send
// buffer is full are dropped.
func (h *Hub) broadcastEvent(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("resourceId", event.ResourceID).Msg("Failed to marshal event for broadcast")
		return
	}

	var slow []*Client
	delivered := 0

	h.mu.RLock()
	for client := range h.clients {
		if !client.filter.Matches(event) {
			continue
		}
		select {
		case client.send <- data:
			delivered++
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.unregisterClient(client)
	}

	h.logger.Debug().
		Str("type", string(event.Type)).
		Str("resourceId", event.ResourceID).
		Int("clientCount", delivered).
		Msg("Event broadcasted")
}

// Publish queues an event for broadcast. It never blocks; events are dropped
// when the queue is full.
func (h *Hub) Publish(eventType EventType, id string, resource *domain.Existing) {
	event := &Event{Type: eventType, ResourceID: id, Resource: resource, Timestamp: time.Now()}
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn().Str("type", string(eventType)).Str("resourceId", id).Msg("Event queue full, dropping event")
	}
}

// ResourceCreated publishes a created event.
func (h *Hub) ResourceCreated(r *domain.Existing) { h.Publish(EventCreated, r.ID, r) }

// ResourceUpdated publishes an updated event.
func (h *Hub) ResourceUpdated(r *domain.Existing) { h.Publish(EventUpdated, r.ID, r) }

// ResourceDeleted publishes a deleted event.
func (h *Hub) ResourceDeleted(r *domain.Existing) { h.Publish(EventDeleted, r.ID, r) }

func (h *Hub) add(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientsCount returns the number of connected subscribers
func (h *Hub) ClientsCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
