package ws

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/Aviraj0403/restro-back/internal/domain/model"
	"github.com/Aviraj0403/restro-back/internal/server/http/dto"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

var clientIDCounter atomic.Uint64

// OrderPlacer runs the settlement pipeline for socket submissions. Order
// events reach admin connections through the hub when placement succeeds.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, userID int64, items []model.OrderItem, shipping model.ShippingAddress, method model.PaymentMethod, totalAmount float64, discountCode *string) (*model.Order, error)
}

// Client bridges one websocket connection and the hub. Inbound order
// submissions are throttled per connection by a token bucket.
type Client struct {
	id      uint64
	hub     *Hub
	conn    *websocket.Conn
	send    chan Message
	userID  int64
	role    model.Role
	limiter *rate.Limiter
	placer  OrderPlacer
	logger  *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewClient wraps an upgraded connection for the given authenticated user.
func NewClient(hub *Hub, conn *websocket.Conn, userID int64, role model.Role, limiter *rate.Limiter, placer OrderPlacer, logger *slog.Logger) *Client {
	return &Client{
		id:      clientIDCounter.Add(1),
		hub:     hub,
		conn:    conn,
		send:    make(chan Message, 256),
		userID:  userID,
		role:    role,
		limiter: limiter,
		placer:  placer,
		logger:  logger,
	}
}

// ID returns the connection identifier.
func (c *Client) ID() uint64 {
	return c.id
}

// Start launches the read and write pumps.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error("set read deadline failed", slog.String("error", err.Error()))
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("unexpected websocket close", slog.String("error", err.Error()))
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(payload, &msg); err != nil {
			c.enqueue(Message{Type: MessageTypeError, Data: "malformed message"})
			continue
		}
		c.handleInbound(msg)
	}
}

func (c *Client) handleInbound(msg Message) {
	switch msg.Type {
	case MessageTypePing:
		c.enqueue(Message{Type: MessageTypePong})
	case MessageTypeNewOrder:
		if !c.limiter.Allow() {
			c.logger.Warn("websocket event rate limited", slog.Int64("user_id", c.userID))
			c.enqueue(Message{Type: MessageTypeError, Data: "rate limit exceeded"})
			return
		}
		c.placeOrder(msg)
	default:
		c.enqueue(Message{Type: MessageTypeError, Data: "unknown message type"})
	}
}

// placeOrder decodes a socket submission and runs it through the same
// settlement pipeline as the HTTP endpoint. The ack carries either the
// created order id or the specific failure.
func (c *Client) placeOrder(msg Message) {
	raw, err := json.Marshal(msg.Data)
	if err != nil {
		c.enqueue(Message{Type: MessageTypeError, Data: "invalid order payload"})
		return
	}
	var req dto.PlaceOrderRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		c.enqueue(Message{Type: MessageTypeError, Data: "invalid order payload"})
		return
	}

	order, err := c.placer.PlaceOrder(context.Background(), c.userID, req.Items, req.ShippingAddress,
		model.PaymentMethod(req.PaymentMethod), req.TotalAmount, req.DiscountCode)
	if err != nil {
		c.logger.Warn("websocket order placement failed",
			slog.Int64("user_id", c.userID), slog.String("error", err.Error()))
		c.enqueue(Message{Type: MessageTypeAck, Data: map[string]any{"received": false, "error": err.Error()}})
		return
	}
	c.enqueue(Message{Type: MessageTypeAck, Data: map[string]any{"received": true, "order_id": order.ID}})
}

// enqueue never blocks the read pump on a stalled writer. Messages are
// dropped once the send channel has been closed.
func (c *Client) enqueue(msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

// closeSend closes the send channel exactly once. Only the hub calls this.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error("set write deadline failed", slog.String("error", err.Error()))
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			payload, err := json.Marshal(msg)
			if err != nil {
				c.logger.Error("encode websocket message failed", slog.String("error", err.Error()))
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
