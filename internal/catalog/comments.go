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
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/validation"
)

// CommentInput is the body of POST /api/movies/{movieId}/comments. A
// missing rating is stored as 0.
type CommentInput struct {
	Username string   `json:"username" validate:"required,notblank"`
	Comment  string   `json:"comment" validate:"required,notblank"`
	Rating   *float64 `json:"rating"`
}

// MovieCommentInput is the body of POST /api/movieComments/add. Unlike the
// embedded path, rating is required and a rating of 0 counts as missing.
type MovieCommentInput struct {
	MovieID  string   `json:"movieId" validate:"required,notblank"`
	Username string   `json:"username" validate:"required,notblank"`
	Comment  string   `json:"comment" validate:"required,notblank"`
	Rating   *float64 `json:"rating" validate:"required,ne=0"`
}

// Comments returns the embedded comments of the resolved movie.
func (s *Service) Comments(ctx context.Context, ident string) ([]models.Comment, error) {
	m, err := s.GetMovie(ctx, ident)
	if err != nil {
		return nil, err
	}
	return m.Comments, nil
}

// AddComment prepends an embedded comment and returns the full list.
// Concurrent appends to the same movie race; the last save wins.
func (s *Service) AddComment(ctx context.Context, ident string, in CommentInput) ([]models.Comment, error) {
	if verr := validation.ValidateStruct(&in); verr != nil {
		return nil, verr
	}

	m, err := s.GetMovie(ctx, ident)
	if err != nil {
		return nil, err
	}

	c := models.Comment{
		ID:        primitive.NewObjectID(),
		Username:  in.Username,
		Comment:   in.Comment,
		CreatedAt: s.timestamp(),
	}
	if in.Rating != nil {
		c.Rating = *in.Rating
	}
	m.Comments = append([]models.Comment{c}, m.Comments...)

	if err := s.store.SaveMovie(ctx, m); err != nil {
		return nil, fmt.Errorf("save movie %q: %w", m.MovieID, err)
	}
	s.invalidate()

	events.Emit(ctx, s.events, events.TypeCommentAdded, events.CommentAdded{
		MovieID:  m.MovieID,
		Username: c.Username,
		Rating:   c.Rating,
		Embedded: true,
	})
	return m.Comments, nil
}

// MovieComments returns standalone comments for movieID, newest first.
func (s *Service) MovieComments(ctx context.Context, movieID string) ([]models.MovieComment, error) {
	comments, err := s.store.ListMovieComments(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("list comments for %q: %w", movieID, err)
	}
	return comments, nil
}

// AddMovieComment stores a standalone comment and returns every comment
// for its movieId, newest first. The movie itself is not checked.
func (s *Service) AddMovieComment(ctx context.Context, in MovieCommentInput) ([]models.MovieComment, error) {
	if verr := validation.ValidateStruct(&in); verr != nil {
		return nil, verr
	}

	c := &models.MovieComment{
		ID:        primitive.NewObjectID(),
		MovieID:   in.MovieID,
		Username:  in.Username,
		Comment:   in.Comment,
		Rating:    *in.Rating,
		CreatedAt: s.timestamp(),
	}
	if err := s.store.InsertMovieComment(ctx, c); err != nil {
		return nil, fmt.Errorf("insert comment for %q: %w", in.MovieID, err)
	}

	events.Emit(ctx, s.events, events.TypeMovieCommentAdded, events.CommentAdded{
		MovieID:  c.MovieID,
		Username: c.Username,
		Rating:   c.Rating,
	})
	return s.MovieComments(ctx, in.MovieID)
}
