// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// @title Marquee API
// @version 1.0
// @description Movie catalog with comments, user accounts, favorites and recently viewed lists.
// @description
// @description ## Errors
// @description
// @description Every non-2xx response has a JSON body `{"message": "..."}`. 500 responses add an `error` field.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address on `/api`.
// @description Signup and login share a stricter limit of 20 requests per minute.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/marquee/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:5000
// @BasePath /api
// @schemes http https
//
// @tag.name Movies
// @tag.description Catalog listing, lookup, download and seeding
//
// @tag.name Comments
// @tag.description Embedded and standalone movie comments
//
// @tag.name Users
// @tag.description Signup, login, profiles and per-user movie lists
//
// @tag.name Core
// @tag.description Health checks and the websocket activity feed
package main
