// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package services adapts Marquee's long-running components to
// suture.Service. Each adapter depends on a small interface so the
// supervisor package never imports api, websocket or the stores.
package services
