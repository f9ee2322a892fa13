// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/accounts"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/websocket"
)

// Pinger reports store reachability for /health.
type Pinger interface {
	Ping(ctx context.Context) error
	Backend() string
}

// Handler holds the services behind the HTTP routes.
type Handler struct {
	catalog   *catalog.Service
	accounts  *accounts.Service
	store     Pinger
	wsHub     *websocket.Hub
	wsHandler http.HandlerFunc
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a Handler. wsHub may be nil, in which case /api/ws
// answers 503.
func NewHandler(cat *catalog.Service, acc *accounts.Service, st Pinger, wsHub *websocket.Hub, cfg *config.Config) *Handler {
	h := &Handler{
		catalog:   cat,
		accounts:  acc,
		store:     st,
		wsHub:     wsHub,
		config:    cfg,
		startTime: time.Now(),
	}
	if wsHub != nil {
		var origins []string
		if cfg != nil {
			origins = cfg.Security.CORSOrigins
		}
		h.wsHandler = websocket.Handler(wsHub, origins)
	}
	return h
}
