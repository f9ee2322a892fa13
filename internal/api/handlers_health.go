// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"net/http"
	"time"
)

// Version is reported by /health. Overridden at build time with -ldflags.
var Version = "dev"

const healthPingTimeout = 2 * time.Second

// HealthStatus is the body of /health.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	Backend           string  `json:"backend"`
	DatabaseConnected bool    `json:"database_connected"`
	WebSocketClients  int     `json:"websocket_clients"`
	Uptime            float64 `json:"uptime"`
	Error             string  `json:"error,omitempty"`
}

// Health reports liveness plus a store ping. It answers 503 when the
// store is unreachable.
//
// @Summary Health check
// @Tags Core
// @Produce json
// @Success 200 {object} HealthStatus
// @Failure 503 {object} HealthStatus
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:  "healthy",
		Version: Version,
		Uptime:  time.Since(h.startTime).Seconds(),
	}
	if h.wsHub != nil {
		status.WebSocketClients = h.wsHub.GetClientCount()
	}

	code := http.StatusOK
	if h.store == nil {
		status.Status = "degraded"
		code = http.StatusServiceUnavailable
	} else {
		status.Backend = h.store.Backend()
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			status.Status = "degraded"
			status.Error = err.Error()
			code = http.StatusServiceUnavailable
		} else {
			status.DatabaseConnected = true
		}
	}

	respondJSON(w, code, status)
}

// WebSocket upgrades to the activity feed.
//
// @Summary Activity feed
// @Description Streams {type, data} messages for every domain event.
// @Tags Realtime
// @Success 101 {string} string "Switching Protocols"
// @Failure 403 {string} string "Origin not allowed"
// @Failure 503 {object} ErrorResponse
// @Router /ws [get]
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHandler == nil {
		respondError(w, r, http.StatusServiceUnavailable, "WebSocket service unavailable", nil)
		return
	}
	h.wsHandler(w, r)
}
