package ws

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Aviraj0403/restro-back/internal/domain/model"
	"github.com/Aviraj0403/restro-back/internal/server/http/middleware"
	"github.com/Aviraj0403/restro-back/internal/test"
)

func newHandlerServer(t *testing.T, hub *Hub, parser TokenParser) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(hub, parser, placerStub{}, 20, 10*time.Second, testLogger())
	router.GET("/ws", handler.Handle)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestHandlerRejectsMissingToken(t *testing.T) {
	hub, _ := startHub(t)
	srv := newHandlerServer(t, hub, test.TokenParserStub{ID: 7})

	resp, err := http.Get(srv.URL + "/ws")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestHandlerRejectsInvalidToken(t *testing.T) {
	hub, _ := startHub(t)
	srv := newHandlerServer(t, hub, test.TokenParserStub{Err: errors.New("bad token")})

	resp, err := http.Get(srv.URL + "/ws?token=bogus")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestHandlerUpgradesWithQueryToken(t *testing.T) {
	hub, _ := startHub(t)
	srv := newHandlerServer(t, hub, test.TokenParserStub{ID: 7, Role: model.RoleUser})

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=valid"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()
	waitForClients(t, hub, 1)

	writeMessage(t, conn, Message{Type: MessageTypePing})
	if msg := readMessage(t, conn); msg.Type != MessageTypePong {
		t.Fatalf("expected pong, got %s", msg.Type)
	}
}

func TestHandlerUpgradesWithCookie(t *testing.T) {
	hub, _ := startHub(t)
	srv := newHandlerServer(t, hub, test.TokenParserStub{ID: 9, Role: model.RoleAdmin})

	header := http.Header{}
	header.Set("Cookie", middleware.AuthCookieName+"=valid")
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()
	waitForClients(t, hub, 1)
}
