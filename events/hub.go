package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one committed ledger entry pushed to stream listeners.
type Event struct {
	TxID  uint      `json:"tx_id"`
	SKU   string    `json:"sku"`
	Name  string    `json:"name"`
	Delta int       `json:"delta"`
	Note  string    `json:"note"`
	Ts    time.Time `json:"ts"`
}

// Client is one connected stream listener.
type Client struct {
	ID     string
	Events chan Event
}

// Hub fans committed events out to any number of passive listeners. Delivery
// is at most once: a listener whose buffer is full simply misses the event,
// so the stream never backpressures a committed transaction.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a listener with a buffered event channel.
func (h *Hub) Register() *Client {
	client := &Client{
		ID:     uuid.NewString(),
		Events: make(chan Event, 16),
	}

	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	return client
}

// Unregister removes a listener and closes its channel.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client, ok := h.clients[id]; ok {
		close(client.Events)
		delete(h.clients, id)
	}
}

// Broadcast delivers the event to every listener that can take it without
// blocking.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		select {
		case client.Events <- event:
		default:
			// listener is lagging, drop
		}
	}
}

// ClientCount returns the number of connected listeners.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
