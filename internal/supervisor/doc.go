// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor runs Marquee's long-lived services under a suture v4
supervisor tree.

	RootSupervisor ("marquee")
	├── DataSupervisor ("data-layer")
	│   ├── badger-gc (badger driver only)
	│   └── movie-cache-cleanup (when the list cache is enabled)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── websocket-hub
	│   └── event-forwarder
	└── APISupervisor ("api-layer")
	    └── http-server

Crashed services restart with backoff. A failing event forwarder does not
take the HTTP server down with it.

Supervisor events are logged through sutureslog using the slog adapter from
internal/logging, so restarts appear in the same zerolog stream as request
logs:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)

Adapters for the individual services live in the services subpackage.
*/
package supervisor
