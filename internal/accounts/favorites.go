// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package accounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/marquee/internal/events"
	"github.com/tomtom215/marquee/internal/models"
)

// Favorites returns the user's favorites. Users are resolved by username
// only on the list endpoints.
func (s *Service) Favorites(ctx context.Context, username string) ([]models.MovieRef, error) {
	u, err := s.userByName(ctx, username)
	if err != nil {
		return nil, err
	}
	return u.Favorites, nil
}

// ToggleFavorite adds ref (insert-if-absent at the front) or, with remove,
// deletes the first entry with ref.ID. It returns the full list.
func (s *Service) ToggleFavorite(ctx context.Context, username string, ref models.MovieRef, remove bool) ([]models.MovieRef, error) {
	if strings.TrimSpace(ref.ID) == "" {
		return nil, ErrMovieRefRequired
	}
	u, err := s.userByName(ctx, username)
	if err != nil {
		return nil, err
	}

	if remove {
		u.Favorites = RemoveFavorite(u.Favorites, ref.ID)
	} else {
		u.Favorites = AddFavorite(u.Favorites, ref)
	}
	if err := s.users.SaveUser(ctx, u); err != nil {
		return nil, fmt.Errorf("save favorites: %w", err)
	}

	events.Emit(ctx, s.events, events.TypeFavoritesChanged, events.ListChanged{
		Username: u.Username,
		MovieID:  ref.ID,
		Removed:  remove,
		Size:     len(u.Favorites),
	})
	return u.Favorites, nil
}

// RecentlyViewed returns the user's recently viewed list, newest first.
func (s *Service) RecentlyViewed(ctx context.Context, username string) ([]models.MovieRef, error) {
	u, err := s.userByName(ctx, username)
	if err != nil {
		return nil, err
	}
	return u.RecentlyViewed, nil
}

// PushRecentlyViewed moves ref to the front and caps the list.
func (s *Service) PushRecentlyViewed(ctx context.Context, username string, ref models.MovieRef) ([]models.MovieRef, error) {
	if strings.TrimSpace(ref.ID) == "" {
		return nil, ErrMovieRefRequired
	}
	u, err := s.userByName(ctx, username)
	if err != nil {
		return nil, err
	}

	u.RecentlyViewed = PushRecent(u.RecentlyViewed, ref, models.RecentlyViewedLimit)
	if err := s.users.SaveUser(ctx, u); err != nil {
		return nil, fmt.Errorf("save recently viewed: %w", err)
	}

	events.Emit(ctx, s.events, events.TypeRecentlyViewedChanged, events.ListChanged{
		Username: u.Username,
		MovieID:  ref.ID,
		Size:     len(u.RecentlyViewed),
	})
	return u.RecentlyViewed, nil
}

func (s *Service) userByName(ctx context.Context, username string) (*models.User, error) {
	u, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}
	u.Normalize()
	return u, nil
}
