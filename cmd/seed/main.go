// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Command seed replaces the movie catalog with the contents of a JSON file.
//
// The file holds either a bare array of movies or the request body accepted
// by POST /api/movies/seed:
//
//	{"list": [{"movieId": "tt0111161", "name": "The Shawshank Redemption", "genre": "Drama"}]}
//
// Store selection uses the same configuration as the server:
//
//	DATABASE_DRIVER=badger DATABASE_BADGER_PATH=./data seed -file movies.json
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/store/driver"
	"github.com/tomtom215/marquee/internal/validation"
)

func main() {
	file := flag.String("file", "movies.json", "path to the JSON catalog")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	n, err := seed(ctx, cfg, *file)
	if err != nil {
		var verr *validation.RequestValidationError
		if errors.As(err, &verr) {
			logging.Fatal().Str("file", *file).Msg(verr.Error())
		}
		logging.Fatal().Err(err).Str("file", *file).Msg("Seeding failed")
	}
	logging.Info().Int("inserted", n).Str("file", *file).Msg("Catalog seeded")
}

func seed(ctx context.Context, cfg *config.Config, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read catalog: %w", err)
	}
	list, err := parseCatalog(raw)
	if err != nil {
		return 0, err
	}

	st, err := driver.Open(ctx, cfg)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	return catalog.NewService(st, catalog.Options{}).Seed(ctx, list)
}

// parseCatalog accepts a bare array or a {"list": [...]} object.
func parseCatalog(raw []byte) ([]models.Movie, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var list []models.Movie
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
		return list, nil
	}

	var req catalog.SeedRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return req.List, nil
}
