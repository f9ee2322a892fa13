// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api provides the HTTP layer for Marquee.

Routes:

  - /api/movies: catalog listing, lookup, download, seeding, embedded comments
  - /api/movieComments: the standalone comment store
  - /api/users and /api/profile: signup, login, profiles, favorites, recently viewed
  - /api/ws: activity feed (see internal/websocket)
  - /health, /metrics, /swagger, /public

Movies and users are addressed by either their storage id or their
external key (movieId, username). When both resolve to different
documents, the storage id wins.

Success responses carry the raw payload with no envelope. Every error
response is a JSON object:

	{"message": "Movie not found"}
	{"message": "server error", "error": "mongodb: circuit breaker is open"}

The error field is only set on 5xx responses.

Each handler maps service errors to a status itself; there is no global
error translator. Panics are recovered by chi's Recoverer.
*/
package api
