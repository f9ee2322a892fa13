// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package websocket serves the activity feed at /api/ws.

Every domain event published on the bus (comments, signups, list changes,
catalog seeds) is forwarded to connected clients as a Message:

	{"type": "comment.added", "data": {"movieId": "tt01", ...}}

Components:

  - Hub: owns the client set and fans broadcasts out to every client
  - Client: one connection with a read goroutine and a write goroutine
  - Handler: upgrades requests after checking Origin against the CORS list

Clients may send {"type":"ping"} and receive {"type":"pong"}. Inbound
messages are throttled per connection with a token bucket; excess messages
are dropped and counted in marquee_websocket_messages_throttled_total.

A client whose send buffer is full is disconnected rather than allowed to
stall the broadcast loop.
*/
package websocket
