package realtime

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/catalog"
)

// Event is fanned out to showroom sessions.
type Event struct {
	Type string       `json:"type"`
	Kind catalog.Kind `json:"kind"`
}

const EventCatalogUpdated = "catalog.updated"

// Client is one websocket connection browsing a single catalog kind.
type Client struct {
	ID   string
	Kind catalog.Kind
	Conn *WebSocketConn
	Send chan []byte
	// Reload is signalled when the client's catalog changed; buffered 1 so
	// repeated updates coalesce.
	Reload chan struct{}
}

func NewClient(id string, kind catalog.Kind, conn *WebSocketConn) *Client {
	return &Client{
		ID:     id,
		Kind:   kind,
		Conn:   conn,
		Send:   make(chan []byte, 16),
		Reload: make(chan struct{}, 1),
	}
}

type Hub struct {
	clients    map[string]*Client
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	log        *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
	}
}

func (h *Hub) RegisterClient(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) UnregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues ev without blocking; a full queue drops the event.
func (h *Hub) Broadcast(ev Event) {
	select {
	case h.broadcast <- ev:
	default:
		h.log.WithField("kind", ev.Kind).Warn("hub broadcast queue full, event dropped")
	}
}

// Count returns the number of connected clients per kind.
func (h *Hub) Count() map[catalog.Kind]int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := map[catalog.Kind]int{catalog.KindVPS: 0, catalog.KindDedicated: 0}
	for _, c := range h.clients {
		out[c.Kind]++
	}
	return out
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			h.log.WithFields(logrus.Fields{"client_id": client.ID, "kind": client.Kind}).Debug("showroom client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if old, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(old.Send)
				h.log.WithField("client_id", client.ID).Debug("showroom client unregistered")
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				if ev.Kind != "" && client.Kind != ev.Kind {
					continue
				}
				select {
				case client.Reload <- struct{}{}:
				default:
				}
			}
			h.mu.RUnlock()
		}
	}
}
