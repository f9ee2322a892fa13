// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/store"
)

// ListMovies returns every movie in natural order.
func (s *Store) ListMovies(ctx context.Context) ([]models.Movie, error) {
	return run(s, "list_movies", func() ([]models.Movie, error) {
		cur, err := s.movies.Find(ctx, bson.D{})
		if err != nil {
			return nil, err
		}
		movies := []models.Movie{}
		if err := cur.All(ctx, &movies); err != nil {
			return nil, err
		}
		return movies, nil
	})
}

// FindMovie resolves ident as _id or movieId in one query. An _id match
// wins over a movieId match on a different document.
func (s *Store) FindMovie(ctx context.Context, ident string) (*models.Movie, error) {
	return run(s, "find_movie", func() (*models.Movie, error) {
		id, isID := store.ParseID(ident)
		if !isID {
			var m models.Movie
			if err := s.movies.FindOne(ctx, bson.D{{Key: "movieId", Value: ident}}).Decode(&m); err != nil {
				return nil, err
			}
			return &m, nil
		}

		filter := bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "_id", Value: id}},
			bson.D{{Key: "movieId", Value: ident}},
		}}}
		cur, err := s.movies.Find(ctx, filter, options.Find().SetLimit(2))
		if err != nil {
			return nil, err
		}
		var matches []models.Movie
		if err := cur.All(ctx, &matches); err != nil {
			return nil, err
		}
		return pickMovie(matches, id)
	})
}

func pickMovie(matches []models.Movie, id primitive.ObjectID) (*models.Movie, error) {
	if len(matches) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	for i := range matches {
		if matches[i].ID == id {
			return &matches[i], nil
		}
	}
	return &matches[0], nil
}

// ReplaceMovies deletes every movie and inserts list. Duplicate movieIds in
// list fail before anything is deleted.
func (s *Store) ReplaceMovies(ctx context.Context, list []models.Movie) (int, error) {
	seen := make(map[string]struct{}, len(list))
	docs := make([]interface{}, len(list))
	for i := range list {
		if _, dup := seen[list[i].MovieID]; dup {
			return 0, fmt.Errorf("movieId %q: %w", list[i].MovieID, store.ErrDuplicateKey)
		}
		seen[list[i].MovieID] = struct{}{}
		if list[i].ID.IsZero() {
			list[i].ID = primitive.NewObjectID()
		}
		docs[i] = list[i]
	}

	return run(s, "replace_movies", func() (int, error) {
		if _, err := s.movies.DeleteMany(ctx, bson.D{}); err != nil {
			return 0, err
		}
		if len(docs) == 0 {
			return 0, nil
		}
		res, err := s.movies.InsertMany(ctx, docs)
		if err != nil {
			return 0, err
		}
		return len(res.InsertedIDs), nil
	})
}

// SaveMovie replaces the stored document with the same _id.
func (s *Store) SaveMovie(ctx context.Context, movie *models.Movie) error {
	_, err := run(s, "save_movie", func() (struct{}, error) {
		res, err := s.movies.ReplaceOne(ctx, bson.D{{Key: "_id", Value: movie.ID}}, movie)
		if err != nil {
			return struct{}{}, err
		}
		if res.MatchedCount == 0 {
			return struct{}{}, mongo.ErrNoDocuments
		}
		return struct{}{}, nil
	})
	return err
}
