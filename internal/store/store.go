// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package store defines document persistence for movies, standalone movie
// comments and users. Backends live in the mongostore and badgerstore
// subpackages.
//
// Identifier resolution: FindMovie and FindUser accept either the storage id
// (a hex ObjectID) or the secondary key (movieId / username). When both
// match different documents the storage id match wins.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tomtom215/marquee/internal/models"
)

var (
	// ErrNotFound is returned when no document matches.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when a write would violate a unique key
	// (movieId or username).
	ErrDuplicateKey = errors.New("duplicate key")
)

// MovieStore persists Movie documents with their embedded comments.
type MovieStore interface {
	ListMovies(ctx context.Context) ([]models.Movie, error)
	FindMovie(ctx context.Context, ident string) (*models.Movie, error)
	// ReplaceMovies deletes every movie and inserts list.
	ReplaceMovies(ctx context.Context, list []models.Movie) (int, error)
	// SaveMovie writes the whole document, keyed by ID.
	SaveMovie(ctx context.Context, movie *models.Movie) error
}

// CommentStore persists standalone MovieComment documents.
type CommentStore interface {
	InsertMovieComment(ctx context.Context, c *models.MovieComment) error
	// ListMovieComments returns comments for movieID, newest first.
	ListMovieComments(ctx context.Context, movieID string) ([]models.MovieComment, error)
}

// UserStore persists User documents.
type UserStore interface {
	FindUser(ctx context.Context, ident string) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	InsertUser(ctx context.Context, u *models.User) error
	SaveUser(ctx context.Context, u *models.User) error
}

// Store is the full persistence surface.
type Store interface {
	MovieStore
	CommentStore
	UserStore

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	// Backend names the implementation for logs and metrics.
	Backend() string
}

// ParseID returns the ObjectID for ident when it is a valid hex id.
func ParseID(ident string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(ident)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
