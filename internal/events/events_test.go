// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package events

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	natsgo "github.com/nats-io/nats.go"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
)

func testEventsConfig(driver string) config.EventsConfig {
	return config.EventsConfig{
		Driver:        driver,
		BufferSize:    16,
		NATSHost:      "127.0.0.1",
		NATSPort:      -1,
		SubjectPrefix: "marquee",
	}
}

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case evt, ok := <-ch:
		if !ok {
			t.Fatal("event channel closed")
		}
		return evt
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestTopic(t *testing.T) {
	t.Parallel()

	b := NewChannelBus(testEventsConfig(config.EventsChannel), nil)
	defer b.Close()
	if got := b.Topic(TypeCommentAdded); got != "marquee.comment.added" {
		t.Errorf("Topic = %q", got)
	}

	cfg := testEventsConfig(config.EventsChannel)
	cfg.SubjectPrefix = ""
	bare := NewChannelBus(cfg, nil)
	defer bare.Close()
	if got := bare.Topic(TypeCommentAdded); got != TypeCommentAdded {
		t.Errorf("Topic without prefix = %q", got)
	}
}

func TestChannelBusRoundTrip(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewChannelBus(testEventsConfig(config.EventsChannel), nil)
	defer b.Close()

	ch, err := b.SubscribeAll(ctx)
	if err != nil {
		t.Fatalf("SubscribeAll: %v", err)
	}

	if err := b.Publish(ctx, TypeCommentAdded, CommentAdded{MovieID: "tt01", Username: "alice", Rating: 4, Embedded: true}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	evt := receive(t, ch)
	if evt.Type != TypeCommentAdded || evt.ID == "" || evt.OccurredAt.IsZero() {
		t.Fatalf("event = %+v", evt)
	}
	var data CommentAdded
	if err := json.Unmarshal(evt.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.MovieID != "tt01" || !data.Embedded {
		t.Errorf("data = %+v", data)
	}

	cancel()
	select {
	case _, ok := <-ch:
		for ok {
			_, ok = <-ch
		}
	case <-time.After(5 * time.Second):
		t.Fatal("SubscribeAll channel did not close after cancel")
	}
}

func TestPublishAfterClose(t *testing.T) {
	t.Parallel()

	b := NewChannelBus(testEventsConfig(config.EventsChannel), nil)
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
	if err := b.Publish(context.Background(), TypeMoviesSeeded, MoviesSeeded{Inserted: 1}); !errors.Is(err, ErrBusClosed) {
		t.Errorf("Publish err = %v, want ErrBusClosed", err)
	}
	if _, err := b.SubscribeAll(context.Background()); !errors.Is(err, ErrBusClosed) {
		t.Errorf("SubscribeAll err = %v, want ErrBusClosed", err)
	}
}

func TestEmitLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })

	Emit(context.Background(), nil, TypeMoviesSeeded, nil)
	if buf.Len() != 0 {
		t.Errorf("nil publisher logged: %s", buf.String())
	}

	b := NewChannelBus(testEventsConfig(config.EventsChannel), nil)
	_ = b.Close()
	Emit(context.Background(), b, TypeMoviesSeeded, MoviesSeeded{Inserted: 2})
	if !strings.Contains(buf.String(), "Failed to publish domain event") {
		t.Errorf("failure not logged: %s", buf.String())
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	t.Parallel()
	if _, _, err := Open(testEventsConfig("kafka")); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestNATSBusRoundTrip(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus, srv, err := Open(testEventsConfig(config.EventsNATS))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		_ = bus.Close()
		shutdownCtx, c := context.WithTimeout(context.Background(), 5*time.Second)
		defer c()
		_ = srv.Shutdown(shutdownCtx)
	})
	if !srv.IsRunning() || bus.Driver() != config.EventsNATS {
		t.Fatal("embedded NATS bus not running")
	}

	// An external consumer sees the raw subject.
	nc, err := natsgo.Connect(srv.ClientURL())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer nc.Close()
	external, err := nc.SubscribeSync("marquee." + TypeUserSignedUp)
	if err != nil {
		t.Fatal(err)
	}
	if err := nc.Flush(); err != nil {
		t.Fatal(err)
	}

	ch, err := bus.SubscribeAll(ctx)
	if err != nil {
		t.Fatalf("SubscribeAll: %v", err)
	}

	if err := bus.Publish(ctx, TypeUserSignedUp, UserSignedUp{UserID: "u1", Username: "alice"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	evt := receive(t, ch)
	if evt.Type != TypeUserSignedUp {
		t.Errorf("type = %q", evt.Type)
	}

	raw, err := external.NextMsg(5 * time.Second)
	if err != nil {
		t.Fatalf("external NextMsg: %v", err)
	}
	var wire Event
	if err := json.Unmarshal(raw.Data, &wire); err != nil {
		t.Fatalf("external payload: %v", err)
	}
	if wire.ID != evt.ID {
		t.Errorf("external id = %q, bus id = %q", wire.ID, evt.ID)
	}
}
