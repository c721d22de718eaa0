package ws

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/Aviraj0403/restro-back/internal/domain/model"
	"github.com/Aviraj0403/restro-back/internal/server/http/middleware"
)

// TokenParser resolves session tokens into an identity.
type TokenParser interface {
	ParseToken(token string) (int64, model.Role, error)
}

// Handler authenticates and upgrades websocket connections.
type Handler struct {
	hub      *Hub
	parser   TokenParser
	placer   OrderPlacer
	logger   *slog.Logger
	burst    int
	refill   time.Duration
	upgrader websocket.Upgrader
}

// NewHandler creates the upgrade endpoint. burst and refill shape the
// per-connection token bucket for inbound order events.
func NewHandler(hub *Hub, parser TokenParser, placer OrderPlacer, burst int, refill time.Duration, logger *slog.Logger) *Handler {
	if burst <= 0 {
		burst = 1
	}
	if refill <= 0 {
		refill = time.Second
	}
	return &Handler{
		hub:    hub,
		parser: parser,
		placer: placer,
		logger: logger,
		burst:  burst,
		refill: refill,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Handle upgrades an authenticated request to a websocket connection.
// The session token is taken from the auth cookie, the Authorization
// header, or a token query parameter, in that order.
func (h *Handler) Handle(c *gin.Context) {
	token := extractToken(c)
	if token == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	userID, role, err := h.parser.ParseToken(token)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	limiter := rate.NewLimiter(rate.Limit(float64(h.burst)/h.refill.Seconds()), h.burst)
	client := NewClient(h.hub, conn, userID, role, limiter, h.placer, h.logger)
	h.hub.Register(client)
	client.Start()
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(middleware.AuthCookieName); err == nil && cookie != "" {
		return cookie
	}
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}
