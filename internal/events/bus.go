// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// ErrBusClosed is returned by Publish and Subscribe after Close.
var ErrBusClosed = errors.New("event bus is closed")

const metadataEventType = "event_type"

// Bus publishes and subscribes to domain events on one Watermill transport.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	prefix     string
	driver     string
	now        func() time.Time

	mu     sync.RWMutex
	closed bool
}

var _ Publisher = (*Bus)(nil)

// NewChannelBus creates an in-process bus.
func NewChannelBus(cfg config.EventsConfig, logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = watermill.NewSlogLogger(logging.NewSlogLogger())
	}
	ps := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: cfg.BufferSize,
	}, logger)

	return &Bus{
		publisher:  ps,
		subscriber: ps,
		prefix:     cfg.SubjectPrefix,
		driver:     config.EventsChannel,
		now:        time.Now,
	}
}

// Driver names the transport.
func (b *Bus) Driver() string { return b.driver }

// Topic returns the Watermill topic (NATS subject) for an event type.
func (b *Bus) Topic(eventType string) string {
	if b.prefix == "" {
		return eventType
	}
	return b.prefix + "." + eventType
}

// Publish wraps data in an Event and publishes it.
func (b *Bus) Publish(ctx context.Context, eventType string, data interface{}) (err error) {
	defer func() { metrics.RecordEventPublished(eventType, err) }()

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	evt := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: b.now().UTC(),
		Data:       raw,
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}

	msg := message.NewMessage(evt.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set(metadataEventType, eventType)
	if rid := logging.RequestIDFromContext(ctx); rid != "" {
		msg.Metadata.Set("request_id", rid)
	}

	if err := b.publisher.Publish(b.Topic(eventType), msg); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	return nil
}

// Subscribe returns raw messages for one event type. Callers must Ack
// (or Nack) every message.
func (b *Bus) Subscribe(ctx context.Context, eventType string) (<-chan *message.Message, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, ErrBusClosed
	}
	return b.subscriber.Subscribe(ctx, b.Topic(eventType))
}

// SubscribeAll merges every event type into one decoded stream. Messages
// are acked after decoding; undecodable payloads are logged and dropped.
// The returned channel closes when ctx is done or the bus closes.
func (b *Bus) SubscribeAll(ctx context.Context) (<-chan Event, error) {
	out := make(chan Event)
	var wg sync.WaitGroup

	for _, t := range AllTypes {
		msgs, err := b.Subscribe(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("subscribe %s: %w", t, err)
		}
		wg.Add(1)
		go func(msgs <-chan *message.Message) {
			defer wg.Done()
			b.forward(ctx, msgs, out)
		}(msgs)
	}

	go func() {
		wg.Wait()
		close(out)
	}()
	return out, nil
}

func (b *Bus) forward(ctx context.Context, msgs <-chan *message.Message, out chan<- Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			var evt Event
			if err := json.Unmarshal(msg.Payload, &evt); err != nil {
				logging.Warn().Err(err).Str("uuid", msg.UUID).Msg("Dropping undecodable event")
				msg.Ack()
				continue
			}
			if evt.Type == "" {
				evt.Type = msg.Metadata.Get(metadataEventType)
			}
			msg.Ack()

			select {
			case out <- evt:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Close closes the publisher and subscriber. It is safe to call twice.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	var errs []error
	if err := b.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close publisher: %w", err))
	}
	// gochannel uses one object for both sides.
	if any(b.subscriber) != any(b.publisher) {
		if err := b.subscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close subscriber: %w", err))
		}
	}
	return errors.Join(errs...)
}
