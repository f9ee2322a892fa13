// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package main is the entry point for the Marquee API server.
//
// Startup order:
//
//  1. Configuration (koanf: defaults, config.yaml, .env, environment)
//  2. Document store (MongoDB or BadgerDB, selected by DATABASE_DRIVER)
//  3. Event bus (in-process channel or embedded NATS)
//  4. Catalog and account services, websocket hub
//  5. Supervisor tree running the HTTP server and background services
//
// SIGINT and SIGTERM cancel the tree. The HTTP server drains in-flight
// requests for SERVER_SHUTDOWN_TIMEOUT, then the bus, NATS and the store
// are closed in that order.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/marquee/docs" // generated swagger docs
	"github.com/tomtom215/marquee/internal/accounts"
	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/events"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/store/driver"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
	"github.com/tomtom215/marquee/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().
		Str("driver", cfg.Database.Driver).
		Str("events", cfg.Events.Driver).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Marquee")
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin outside development")
	}

	st, err := driver.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()
	logging.Info().Str("backend", st.Backend()).Msg("Store opened")

	bus, natsServer, err := events.Open(cfg.Events)
	if err != nil {
		return fmt.Errorf("open event bus: %w", err)
	}
	// Deferred calls run in reverse: the bus closes before NATS.
	if natsServer != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := natsServer.Shutdown(shutdownCtx); err != nil {
				logging.Error().Err(err).Msg("Error stopping embedded NATS")
			}
		}()
	}
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	cat := catalog.NewService(st, catalog.Options{
		PublicDir:    cfg.Server.PublicDir,
		MovieListTTL: cfg.Cache.MovieListTTL,
		Events:       bus,
	})
	acc, err := accounts.NewService(st, accounts.Options{
		BcryptCost: cfg.Security.BcryptCost,
		Events:     bus,
	})
	if err != nil {
		return fmt.Errorf("init accounts: %w", err)
	}

	hub := websocket.NewHub(cfg.WebSocket)
	handler := api.NewHandler(cat, acc, st, hub, cfg)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if gc, ok := st.(services.GCRunner); ok {
		tree.AddDataService(services.NewBadgerGCService(gc, 0))
	}
	if cfg.Cache.MovieListTTL > 0 {
		tree.AddDataService(services.NewCacheCleanupService(cat.Cache(), cfg.Cache.MovieListTTL))
	}
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddMessagingService(services.NewEventForwarderService(bus, hub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
			serveErr = err
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}
	return serveErr
}
