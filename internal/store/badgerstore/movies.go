// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/store"
)

// ListMovies returns every movie in id order, which is insertion order.
func (s *Store) ListMovies(ctx context.Context) (movies []models.Movie, err error) {
	defer func(start time.Time) { observe("list_movies", start, err) }(time.Now())

	movies = []models.Movie{}
	err = s.view(ctx, func(txn *badger.Txn) error {
		return scanPrefix(txn, prefixMovie, false, func(val []byte) error {
			var m models.Movie
			if err := bson.Unmarshal(val, &m); err != nil {
				return fmt.Errorf("decode movie: %w", err)
			}
			movies = append(movies, m)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return movies, nil
}

// FindMovie resolves ident as the storage id first, then as movieId.
func (s *Store) FindMovie(ctx context.Context, ident string) (movie *models.Movie, err error) {
	defer func(start time.Time) { observe("find_movie", start, err) }(time.Now())

	var m models.Movie
	err = s.view(ctx, func(txn *badger.Txn) error {
		return findMovie(txn, ident, &m)
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func findMovie(txn *badger.Txn, ident string, out *models.Movie) error {
	if id, ok := store.ParseID(ident); ok {
		err := getDoc(txn, prefixMovie+id.Hex(), out)
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}
	hex, err := getIndex(txn, prefixMovieIndex+ident)
	if err != nil {
		return err
	}
	return getDoc(txn, prefixMovie+hex, out)
}

// ReplaceMovies drops every movie and inserts list. Duplicate movieIds in
// list fail before anything is dropped.
func (s *Store) ReplaceMovies(ctx context.Context, list []models.Movie) (n int, err error) {
	defer func(start time.Time) { observe("replace_movies", start, err) }(time.Now())

	seen := make(map[string]struct{}, len(list))
	for i := range list {
		if _, dup := seen[list[i].MovieID]; dup {
			return 0, fmt.Errorf("movieId %q: %w", list[i].MovieID, store.ErrDuplicateKey)
		}
		seen[list[i].MovieID] = struct{}{}
		if list[i].ID.IsZero() {
			list[i].ID = primitive.NewObjectID()
		}
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := s.db.DropPrefix([]byte(prefixMovie), []byte(prefixMovieIndex)); err != nil {
		return 0, fmt.Errorf("drop movies: %w", err)
	}

	// Large seeds are split across transactions when Badger reports the
	// current one is full.
	txn := s.db.NewTransaction(true)
	defer func() { txn.Discard() }()

	for i := range list {
		m := &list[i]
		err := putMovie(txn, m)
		if errors.Is(err, badger.ErrTxnTooBig) {
			if err := txn.Commit(); err != nil {
				return n, fmt.Errorf("commit movies: %w", err)
			}
			txn = s.db.NewTransaction(true)
			err = putMovie(txn, m)
		}
		if err != nil {
			return n, err
		}
		n++
	}
	if err := txn.Commit(); err != nil {
		return 0, fmt.Errorf("commit movies: %w", err)
	}
	return n, nil
}

func putMovie(txn *badger.Txn, m *models.Movie) error {
	if err := setDoc(txn, prefixMovie+m.ID.Hex(), m); err != nil {
		return err
	}
	return txn.Set([]byte(prefixMovieIndex+m.MovieID), []byte(m.ID.Hex()))
}

// SaveMovie overwrites an existing movie, moving its movieId index entry
// when the movieId changed.
func (s *Store) SaveMovie(ctx context.Context, movie *models.Movie) (err error) {
	defer func(start time.Time) { observe("save_movie", start, err) }(time.Now())

	key := prefixMovie + movie.ID.Hex()
	return s.update(ctx, func(txn *badger.Txn) error {
		var current models.Movie
		if err := getDoc(txn, key, &current); err != nil {
			return err
		}
		if current.MovieID != movie.MovieID {
			if _, err := getIndex(txn, prefixMovieIndex+movie.MovieID); err == nil {
				return fmt.Errorf("movieId %q: %w", movie.MovieID, store.ErrDuplicateKey)
			} else if !errors.Is(err, store.ErrNotFound) {
				return err
			}
			if err := txn.Delete([]byte(prefixMovieIndex + current.MovieID)); err != nil {
				return fmt.Errorf("delete movie index: %w", err)
			}
		}
		return putMovie(txn, movie)
	})
}
