// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package accounts

import "github.com/tomtom215/marquee/internal/models"

// AddFavorite inserts ref at the front unless its id is already present.
func AddFavorite(list []models.MovieRef, ref models.MovieRef) []models.MovieRef {
	if indexOf(list, ref.ID) >= 0 {
		return list
	}
	return prepend(list, ref)
}

// RemoveFavorite deletes the first entry with id, if any.
func RemoveFavorite(list []models.MovieRef, id string) []models.MovieRef {
	i := indexOf(list, id)
	if i < 0 {
		return list
	}
	out := make([]models.MovieRef, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

// PushRecent moves ref to the front, dropping any other entry with the
// same id, and keeps at most limit entries.
func PushRecent(list []models.MovieRef, ref models.MovieRef, limit int) []models.MovieRef {
	out := make([]models.MovieRef, 0, len(list)+1)
	out = append(out, ref)
	for _, m := range list {
		if m.ID != ref.ID {
			out = append(out, m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func indexOf(list []models.MovieRef, id string) int {
	for i, m := range list {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func prepend(list []models.MovieRef, ref models.MovieRef) []models.MovieRef {
	out := make([]models.MovieRef, 0, len(list)+1)
	out = append(out, ref)
	return append(out, list...)
}
