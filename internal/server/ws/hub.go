package ws

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Aviraj0403/restro-back/internal/domain/model"
)

// Message types exchanged over the websocket.
const (
	MessageTypePing     = "ping"
	MessageTypePong     = "pong"
	MessageTypeNewOrder = "newOrder"
	MessageTypeAck      = "ack"
	MessageTypeError    = "error"

	EventOrderCreated   = "order:created"
	EventOrderUpdated   = "order:updated"
	EventOrderCancelled = "order:cancelled"
)

// Message is a single websocket frame payload.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Hub maintains the set of connected clients and fans order events out to
// admin subscribers. Regular clients may submit events but never receive
// the admin stream.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	logger     *slog.Logger
	mu         sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Register hands a new client over to the hub loop. No-op once the hub
// has stopped.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// Unregister detaches a client, closing its send channel. No-op once the
// hub has stopped; shutdown already released every client.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish enqueues a message for fanout without blocking the caller.
// The event is dropped when the hub cannot keep up.
func (h *Hub) Publish(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("fanout queue full, event dropped", slog.String("type", msg.Type))
	}
}

// PublishOrderCreated notifies admin subscribers about a settled order.
func (h *Hub) PublishOrderCreated(order *model.Order) {
	h.Publish(Message{Type: EventOrderCreated, Data: order})
}

// PublishOrderUpdated notifies admin subscribers about a status transition.
func (h *Hub) PublishOrderUpdated(order *model.Order) {
	h.Publish(Message{Type: EventOrderUpdated, Data: order})
}

// PublishOrderCancelled notifies admin subscribers about a cancellation.
func (h *Hub) PublishOrderCancelled(order *model.Order) {
	h.Publish(Message{Type: EventOrderCancelled, Data: order})
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run processes registrations and broadcasts until the context ends.
// On shutdown every client is released and its connection closed so the
// read and write pumps exit.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return ctx.Err()
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("websocket client connected",
				slog.Int64("user_id", client.userID),
				slog.String("role", string(client.role)),
				slog.Int("total_clients", total))
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.closeSend()
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("websocket client disconnected",
				slog.Int64("user_id", client.userID),
				slog.Int("total_clients", total))
		case msg := <-h.broadcast:
			h.broadcastToAdmins(msg)
		}
	}
}

func (h *Hub) broadcastToAdmins(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if client.role != model.RoleAdmin {
			continue
		}
		select {
		case client.send <- msg:
		default:
			h.logger.Warn("slow websocket client, event dropped",
				slog.Int64("user_id", client.userID),
				slog.String("type", msg.Type))
		}
	}
}

// shutdown releases every client. Closing done first keeps Register and
// Unregister from blocking after the loop has exited; closing the
// connections makes still-attached read pumps return.
func (h *Hub) shutdown() {
	close(h.done)
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.closeSend()
		if client.conn != nil {
			_ = client.conn.Close()
		}
		delete(h.clients, client)
	}
}
