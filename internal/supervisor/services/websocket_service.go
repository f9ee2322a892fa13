// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/marquee/internal/events"
	"github.com/tomtom215/marquee/internal/logging"
)

// ErrEventStreamClosed is returned when the bus closes the stream while
// the forwarder is still meant to be running. Suture restarts it.
var ErrEventStreamClosed = errors.New("event stream closed")

// ContextHub is satisfied by *websocket.Hub.
type ContextHub interface {
	RunWithContext(ctx context.Context) error
}

// WebSocketHubService runs the activity feed hub.
type WebSocketHubService struct {
	hub  ContextHub
	name string
}

// NewWebSocketHubService wraps hub.
func NewWebSocketHubService(hub ContextHub) *WebSocketHubService {
	return &WebSocketHubService{
		hub:  hub,
		name: "websocket-hub",
	}
}

// Serve implements suture.Service.
func (w *WebSocketHubService) Serve(ctx context.Context) error {
	return w.hub.RunWithContext(ctx)
}

func (w *WebSocketHubService) String() string {
	return w.name
}

// EventSource is satisfied by *events.Bus.
type EventSource interface {
	SubscribeAll(ctx context.Context) (<-chan events.Event, error)
}

// EventSink is satisfied by *websocket.Hub.
type EventSink interface {
	Forward(ctx context.Context, in <-chan events.Event) error
}

// EventForwarderService subscribes to every domain event and hands the
// stream to the hub. Each restart opens a fresh subscription.
type EventForwarderService struct {
	source EventSource
	sink   EventSink
	name   string
}

// NewEventForwarderService wires source into sink.
func NewEventForwarderService(source EventSource, sink EventSink) *EventForwarderService {
	return &EventForwarderService{
		source: source,
		sink:   sink,
		name:   "event-forwarder",
	}
}

// Serve implements suture.Service.
func (f *EventForwarderService) Serve(ctx context.Context) error {
	stream, err := f.source.SubscribeAll(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to events: %w", err)
	}
	logging.Debug().Msg("Forwarding domain events to websocket hub")

	if err := f.sink.Forward(ctx, stream); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return ErrEventStreamClosed
}

func (f *EventForwarderService) String() string {
	return f.name
}
