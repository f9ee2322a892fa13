// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package events publishes domain events over Watermill.
//
// Two transports are supported: an in-process gochannel pub/sub (default)
// and core NATS through an embedded nats-server, which lets external
// consumers subscribe to <prefix>.<event type> subjects.
//
// Publishing is fire-and-forget from the caller's point of view: services
// call Emit, which logs failures instead of returning them.
package events

import (
	"context"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/logging"
)

// Event types.
const (
	TypeMoviesSeeded          = "movies.seeded"
	TypeCommentAdded          = "comment.added"
	TypeMovieCommentAdded     = "moviecomment.added"
	TypeUserSignedUp          = "user.signedup"
	TypeFavoritesChanged      = "favorites.changed"
	TypeRecentlyViewedChanged = "recentlyviewed.changed"
)

// AllTypes lists every event type, in a stable order.
var AllTypes = []string{
	TypeMoviesSeeded,
	TypeCommentAdded,
	TypeMovieCommentAdded,
	TypeUserSignedUp,
	TypeFavoritesChanged,
	TypeRecentlyViewedChanged,
}

// Event is the envelope carried in every message payload.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Data       json.RawMessage `json:"data"`
}

// Publisher publishes one event.
type Publisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// Emit publishes through p and logs a failure. A nil p is a no-op.
func Emit(ctx context.Context, p Publisher, eventType string, data interface{}) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, eventType, data); err != nil {
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("event_type", eventType).
			Msg("Failed to publish domain event")
	}
}

// Payloads.

// MoviesSeeded is published after the catalog is replaced.
type MoviesSeeded struct {
	Inserted int `json:"inserted"`
}

// CommentAdded is published for both comment paths. Embedded is true for
// comments stored inside the movie document.
type CommentAdded struct {
	MovieID  string  `json:"movieId"`
	Username string  `json:"username"`
	Rating   float64 `json:"rating"`
	Embedded bool    `json:"embedded"`
}

// UserSignedUp is published after an account is created.
type UserSignedUp struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// ListChanged is published when favorites or recently viewed change.
type ListChanged struct {
	Username string `json:"username"`
	MovieID  string `json:"movieId"`
	Removed  bool   `json:"removed,omitempty"`
	Size     int    `json:"size"`
}
