// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package catalog implements the movie catalog: listing, lookup, seeding,
// download resolution and the two comment paths.
//
// Comments exist twice on purpose. Embedded comments live in the movie
// document (most recent first). Standalone MovieComments live in their own
// collection keyed by movieId. The two are never reconciled.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/events"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/store"
)

const movieListKey = "all"

// Store is the persistence the catalog needs.
type Store interface {
	store.MovieStore
	store.CommentStore
}

// Options configures a Service.
type Options struct {
	// PublicDir holds movies/<name>.mp4 for local downloads.
	PublicDir    string
	MovieListTTL time.Duration
	Events       events.Publisher
}

// Service implements catalog operations.
type Service struct {
	store     Store
	movies    *cache.Cache[[]models.Movie]
	fillMu    sync.Mutex
	listGen   uint64
	events    events.Publisher
	publicDir string
	now       func() time.Time
}

// NewService creates a catalog service.
func NewService(st Store, opts Options) *Service {
	return &Service{
		store:     st,
		movies:    cache.New[[]models.Movie]("movies", opts.MovieListTTL),
		events:    opts.Events,
		publicDir: opts.PublicDir,
		now:       time.Now,
	}
}

// Cache exposes the movie list cache so its cleanup loop can be supervised.
func (s *Service) Cache() *cache.Cache[[]models.Movie] {
	return s.movies
}

// timestamp returns now at the millisecond precision both backends store.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// ListMovies returns every movie. The result is shared with the cache and
// must not be modified.
func (s *Service) ListMovies(ctx context.Context) ([]models.Movie, error) {
	if movies, ok := s.movies.Get(movieListKey); ok {
		return movies, nil
	}

	s.fillMu.Lock()
	gen := s.listGen
	s.fillMu.Unlock()

	movies, err := s.store.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	for i := range movies {
		movies[i].Normalize()
	}

	// A write that landed during the read makes this list stale.
	s.fillMu.Lock()
	if gen == s.listGen {
		s.movies.Set(movieListKey, movies)
	}
	s.fillMu.Unlock()
	return movies, nil
}

// GetMovie resolves ident as storage id or movieId.
func (s *Service) GetMovie(ctx context.Context, ident string) (*models.Movie, error) {
	m, err := s.store.FindMovie(ctx, ident)
	if err != nil {
		return nil, fmt.Errorf("find movie %q: %w", ident, err)
	}
	m.Normalize()
	return m, nil
}

// invalidate drops the cached movie list after a write.
func (s *Service) invalidate() {
	s.fillMu.Lock()
	s.listGen++
	s.movies.Delete(movieListKey)
	s.fillMu.Unlock()
}

// Similar returns the other movies sharing the resolved movie's genre.
// A movie without a genre has no similar movies.
func (s *Service) Similar(ctx context.Context, ident string) ([]models.Movie, error) {
	current, err := s.GetMovie(ctx, ident)
	if err != nil {
		return nil, err
	}
	all, err := s.ListMovies(ctx)
	if err != nil {
		return nil, err
	}
	return similarTo(current, all), nil
}

func similarTo(current *models.Movie, all []models.Movie) []models.Movie {
	out := []models.Movie{}
	genre := strings.TrimSpace(current.Genre)
	if genre == "" {
		return out
	}
	for _, m := range all {
		if m.ID != current.ID && strings.EqualFold(strings.TrimSpace(m.Genre), genre) {
			out = append(out, m)
		}
	}
	return out
}
