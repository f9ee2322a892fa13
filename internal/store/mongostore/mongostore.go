// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package mongostore implements store.Store on MongoDB.
//
// Collections: movies, moviecomments, users. EnsureIndexes creates the
// unique movieId and username indexes that back store.ErrDuplicateKey.
// Calls go through a sony/gobreaker circuit breaker when enabled.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/store"
)

const (
	backendName = "mongo"

	collMovies        = "movies"
	collMovieComments = "moviecomments"
	collUsers         = "users"
)

// Options configures Open.
type Options struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	Breaker        config.BreakerConfig
}

// Store is a MongoDB-backed store.Store.
type Store struct {
	client   *mongo.Client
	movies   *mongo.Collection
	comments *mongo.Collection
	users    *mongo.Collection
	breaker  *breaker
}

var _ store.Store = (*Store)(nil)

// Open connects, pings the primary and ensures indexes.
func Open(ctx context.Context, opts Options) (*Store, error) {
	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	db := client.Database(opts.Database)
	s := &Store{
		client:   client,
		movies:   db.Collection(collMovies),
		comments: db.Collection(collMovieComments),
		users:    db.Collection(collUsers),
		breaker:  newBreaker(opts.Breaker),
	}

	if err := s.EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logging.Info().
		Str("database", opts.Database).
		Bool("circuit_breaker", opts.Breaker.Enabled).
		Msg("MongoDB store connected")
	return s, nil
}

// EnsureIndexes creates the indexes the store relies on. It is idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		coll  *mongo.Collection
		model mongo.IndexModel
	}{
		{s.movies, mongo.IndexModel{
			Keys:    bson.D{{Key: "movieId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("movieId_unique"),
		}},
		{s.users, mongo.IndexModel{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("username_unique"),
		}},
		{s.comments, mongo.IndexModel{
			Keys:    bson.D{{Key: "movieId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("movieId_createdAt"),
		}},
	}

	for _, idx := range indexes {
		if _, err := idx.coll.Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("create index on %s: %w", idx.coll.Name(), err)
		}
	}
	return nil
}

// Backend implements store.Store.
func (s *Store) Backend() string { return backendName }

// Ping checks the primary is reachable. It bypasses the breaker so health
// checks see the real server state.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect MongoDB: %w", err)
	}
	return nil
}

// run executes one named operation through the breaker and records metrics.
func run[T any](s *Store, operation string, fn func() (T, error)) (T, error) {
	start := time.Now()
	result, err := call(s.breaker, func() (T, error) {
		v, err := fn()
		return v, translateError(err)
	})
	metrics.RecordStoreOperation(backendName, operation, time.Since(start), !isHealthyOutcome(err))
	return result, err
}

// translateError maps driver errors onto store sentinels.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", store.ErrDuplicateKey, err)
	default:
		return err
	}
}
