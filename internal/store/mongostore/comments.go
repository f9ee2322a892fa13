// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tomtom215/marquee/internal/models"
)

// InsertMovieComment stores c, assigning an id and timestamp when missing.
func (s *Store) InsertMovieComment(ctx context.Context, c *models.MovieComment) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	_, err := run(s, "insert_movie_comment", func() (struct{}, error) {
		_, err := s.comments.InsertOne(ctx, c)
		return struct{}{}, err
	})
	return err
}

// ListMovieComments returns the comments for movieID, newest first.
func (s *Store) ListMovieComments(ctx context.Context, movieID string) ([]models.MovieComment, error) {
	return run(s, "list_movie_comments", func() ([]models.MovieComment, error) {
		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
		cur, err := s.comments.Find(ctx, bson.D{{Key: "movieId", Value: movieID}}, opts)
		if err != nil {
			return nil, err
		}
		comments := []models.MovieComment{}
		if err := cur.All(ctx, &comments); err != nil {
			return nil, err
		}
		return comments, nil
	})
}
