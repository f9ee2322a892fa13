// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package driver opens the store.Store selected by configuration.
package driver

import (
	"context"
	"fmt"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/store"
	"github.com/tomtom215/marquee/internal/store/badgerstore"
	"github.com/tomtom215/marquee/internal/store/mongostore"
)

// Open returns a MongoDB store for the mongo driver (the default) or a
// BadgerDB store for the badger driver.
func Open(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverBadger:
		st, err := badgerstore.Open(badgerstore.Options{
			Path:     cfg.Database.BadgerPath,
			InMemory: cfg.Database.BadgerInMemory,
		})
		if err != nil {
			return nil, fmt.Errorf("open badger store: %w", err)
		}
		return st, nil
	case "", config.DriverMongo:
		st, err := mongostore.Open(ctx, mongostore.Options{
			URI:            cfg.Database.MongoURI,
			Database:       cfg.Database.MongoDatabase,
			ConnectTimeout: cfg.Database.ConnectTimeout,
			Breaker:        cfg.Breaker,
		})
		if err != nil {
			return nil, fmt.Errorf("open mongo store: %w", err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}
