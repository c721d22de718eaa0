package ws

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Aviraj0403/restro-back/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hub.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Error("hub did not stop")
		}
	})
	return hub, cancel
}

func stubClient(role model.Role) *Client {
	return &Client{
		id:     clientIDCounter.Add(1),
		send:   make(chan Message, 4),
		userID: 7,
		role:   role,
		logger: testLogger(),
	}
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, got %d", want, hub.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubBroadcastsToAdminsOnly(t *testing.T) {
	hub, _ := startHub(t)

	admin := stubClient(model.RoleAdmin)
	user := stubClient(model.RoleUser)
	hub.Register(admin)
	hub.Register(user)
	waitForClients(t, hub, 2)

	order := &model.Order{ID: 11, UserID: 7, Status: model.OrderStatusPending}
	hub.PublishOrderCreated(order)

	select {
	case msg := <-admin.send:
		if msg.Type != EventOrderCreated {
			t.Fatalf("unexpected message type %s", msg.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("admin did not receive event")
	}

	select {
	case msg := <-user.send:
		t.Fatalf("user should not receive admin events, got %+v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubPublishesLifecycleEvents(t *testing.T) {
	hub, _ := startHub(t)

	admin := stubClient(model.RoleAdmin)
	hub.Register(admin)
	waitForClients(t, hub, 1)

	order := &model.Order{ID: 11}
	hub.PublishOrderUpdated(order)
	hub.PublishOrderCancelled(order)

	want := []string{EventOrderUpdated, EventOrderCancelled}
	for _, expected := range want {
		select {
		case msg := <-admin.send:
			if msg.Type != expected {
				t.Fatalf("expected %s, got %s", expected, msg.Type)
			}
		case <-time.After(time.Second):
			t.Fatalf("missing %s event", expected)
		}
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub, _ := startHub(t)

	client := stubClient(model.RoleAdmin)
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Unregister(client)
	waitForClients(t, hub, 0)

	select {
	case _, ok := <-client.send:
		if ok {
			t.Fatal("expected closed send channel")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
}

func TestHubRunStopsOnCancel(t *testing.T) {
	hub := NewHub(testLogger())
	ctx, cancel := context.WithCancel(context.Background())

	client := stubClient(model.RoleAdmin)
	hub.clients[client] = true

	errCh := make(chan error, 1)
	go func() { errCh <- hub.Run(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	if _, ok := <-client.send; ok {
		t.Fatal("expected client send channel closed on shutdown")
	}
}

func TestHubShutdownReleasesClients(t *testing.T) {
	hub, cancel := startHub(t)

	client := stubClient(model.RoleAdmin)
	hub.Register(client)
	waitForClients(t, hub, 1)

	cancel()
	select {
	case <-hub.done:
	case <-time.After(time.Second):
		t.Fatal("hub did not shut down")
	}

	// A read pump may still deliver inbound messages after shutdown;
	// they must be dropped, not panic on the closed channel.
	client.enqueue(Message{Type: MessageTypePong})

	released := make(chan struct{})
	go func() {
		defer close(released)
		hub.Unregister(client)
	}()
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("unregister blocked after shutdown")
	}
}

func TestHubPublishDoesNotBlockWhenFull(t *testing.T) {
	hub := NewHub(testLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 300; i++ {
			hub.Publish(Message{Type: EventOrderCreated})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on full queue")
	}
}
