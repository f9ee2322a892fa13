// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tomtom215/marquee/internal/events"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/validation"
)

// SeedRequest is the body of POST /api/movies/seed. A missing list seeds
// an empty catalog.
type SeedRequest struct {
	List []models.Movie `json:"list" validate:"dive"`
}

// Seed replaces the whole catalog with list and returns the inserted
// count. Every movie needs a movieId and a name; movieIds must be unique
// within list (store.ErrDuplicateKey otherwise).
func (s *Service) Seed(ctx context.Context, list []models.Movie) (int, error) {
	if verr := validation.ValidateStruct(&SeedRequest{List: list}); verr != nil {
		return 0, verr
	}

	now := s.timestamp()
	for i := range list {
		m := &list[i]
		if m.ID.IsZero() {
			m.ID = primitive.NewObjectID()
		}
		m.Normalize()
		for j := range m.Comments {
			c := &m.Comments[j]
			if c.ID.IsZero() {
				c.ID = primitive.NewObjectID()
			}
			if c.CreatedAt.IsZero() {
				c.CreatedAt = now
			}
		}
	}

	n, err := s.store.ReplaceMovies(ctx, list)
	// A failed replace may have dropped the old catalog.
	s.invalidate()
	if err != nil {
		return 0, fmt.Errorf("seed movies: %w", err)
	}

	logging.Ctx(ctx).Info().Int("inserted", n).Msg("Movie catalog seeded")
	events.Emit(ctx, s.events, events.TypeMoviesSeeded, events.MoviesSeeded{Inserted: n})
	return n, nil
}
