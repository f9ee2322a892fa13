// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package websocket

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/events"
)

const testOrigin = "http://localhost:3000"

func startHub(t *testing.T, cfg config.WebSocketConfig) (*Hub, context.CancelFunc, <-chan error) {
	t.Helper()
	hub := NewHub(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- hub.RunWithContext(ctx) }()
	t.Cleanup(cancel)
	return hub, cancel, errc
}

func newServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(Handler(hub, []string{testOrigin}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if conn != nil {
		t.Cleanup(func() { _ = conn.Close() })
	}
	return conn, resp, err
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.GetClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", hub.GetClientCount(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatal(err)
	}
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return msg
}

func TestBroadcastReachesAllClients(t *testing.T) {
	t.Parallel()
	hub, _, _ := startHub(t, config.WebSocketConfig{MessagesPerSecond: 10, Burst: 5})
	srv := newServer(t, hub)

	a, _, err := dial(t, srv, testOrigin)
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := dial(t, srv, testOrigin)
	if err != nil {
		t.Fatal(err)
	}
	waitForClients(t, hub, 2)

	hub.Broadcast(events.TypeUserSignedUp, map[string]string{"username": "alice"})

	for _, conn := range []*websocket.Conn{a, b} {
		msg := readMessage(t, conn)
		if msg.Type != events.TypeUserSignedUp {
			t.Errorf("type = %q", msg.Type)
		}
		data, _ := msg.Data.(map[string]interface{})
		if data["username"] != "alice" {
			t.Errorf("data = %v", msg.Data)
		}
	}
}

func TestForwardEventsKeepsRawPayload(t *testing.T) {
	t.Parallel()
	hub, _, _ := startHub(t, config.WebSocketConfig{MessagesPerSecond: 10, Burst: 5})
	srv := newServer(t, hub)

	conn, _, err := dial(t, srv, testOrigin)
	if err != nil {
		t.Fatal(err)
	}
	waitForClients(t, hub, 1)

	in := make(chan events.Event, 1)
	in <- events.Event{
		ID:   "e1",
		Type: events.TypeCommentAdded,
		Data: json.RawMessage(`{"movieId":"tt01","rating":4}`),
	}
	close(in)
	if err := hub.Forward(context.Background(), in); err != nil {
		t.Fatalf("Forward: %v", err)
	}

	msg := readMessage(t, conn)
	data, _ := msg.Data.(map[string]interface{})
	if msg.Type != events.TypeCommentAdded || data["movieId"] != "tt01" {
		t.Errorf("message = %+v", msg)
	}
}

func TestForwardStopsOnCancel(t *testing.T) {
	t.Parallel()
	hub := NewHub(config.WebSocketConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := hub.Forward(ctx, make(chan events.Event)); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestPingGetsPong(t *testing.T) {
	t.Parallel()
	hub, _, _ := startHub(t, config.WebSocketConfig{MessagesPerSecond: 10, Burst: 5})
	srv := newServer(t, hub)

	conn, _, err := dial(t, srv, testOrigin)
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(Message{Type: MessageTypePing}); err != nil {
		t.Fatal(err)
	}
	if msg := readMessage(t, conn); msg.Type != MessageTypePong {
		t.Errorf("type = %q, want pong", msg.Type)
	}
}

func TestInboundMessagesAreThrottled(t *testing.T) {
	t.Parallel()
	// One token, refilled every 1000 seconds.
	hub, _, _ := startHub(t, config.WebSocketConfig{MessagesPerSecond: 0.001, Burst: 1})
	srv := newServer(t, hub)

	conn, _, err := dial(t, srv, testOrigin)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := conn.WriteJSON(Message{Type: MessageTypePing}); err != nil {
			t.Fatal(err)
		}
	}
	if msg := readMessage(t, conn); msg.Type != MessageTypePong {
		t.Fatalf("type = %q, want pong", msg.Type)
	}

	if err := conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond)); err != nil {
		t.Fatal(err)
	}
	var extra Message
	if err := conn.ReadJSON(&extra); err == nil {
		t.Errorf("throttled ping answered: %+v", extra)
	}
}

func TestOriginRejected(t *testing.T) {
	t.Parallel()
	hub, _, _ := startHub(t, config.WebSocketConfig{MessagesPerSecond: 10, Burst: 5})
	srv := newServer(t, hub)

	for _, origin := range []string{"", "http://evil.example"} {
		_, resp, err := dial(t, srv, origin)
		if err == nil {
			t.Fatalf("origin %q accepted", origin)
		}
		if resp == nil || resp.StatusCode != http.StatusForbidden {
			t.Errorf("origin %q: response %v, want 403", origin, resp)
		}
	}
}

func TestOriginChecker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"listed", []string{"http://a.example"}, "http://a.example", true},
		{"case-insensitive", []string{"http://A.example"}, "http://a.example", true},
		{"wildcard", []string{"*"}, "http://b.example", true},
		{"unlisted", []string{"http://a.example"}, "http://b.example", false},
		{"missing origin", []string{"*"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/api/ws", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if got := OriginChecker(tt.allowed)(r); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShutdownClosesClients(t *testing.T) {
	t.Parallel()
	hub, cancel, errc := startHub(t, config.WebSocketConfig{MessagesPerSecond: 10, Burst: 5})
	srv := newServer(t, hub)

	conn, _, err := dial(t, srv, testOrigin)
	if err != nil {
		t.Fatal(err)
	}
	waitForClients(t, hub, 1)

	cancel()
	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("RunWithContext = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
	if n := hub.GetClientCount(); n != 0 {
		t.Errorf("clients after shutdown = %d", n)
	}

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatal(err)
	}
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected the connection to be closed")
	}
}

func TestShutdownReason(t *testing.T) {
	t.Parallel()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	expired, cancel2 := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel2()
	<-expired.Done()

	if got := getShutdownReason(canceled); got != ShutdownReasonContextCanceled {
		t.Errorf("canceled: %s", got)
	}
	if got := getShutdownReason(expired); got != ShutdownReasonContextDeadline {
		t.Errorf("expired: %s", got)
	}
}
