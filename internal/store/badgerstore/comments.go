// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package badgerstore

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tomtom215/marquee/internal/models"
)

// commentPrefix hex-encodes movieID so an id containing ':' cannot match
// another movie's prefix.
func commentPrefix(movieID string) string {
	return prefixComment + hex.EncodeToString([]byte(movieID)) + ":"
}

// commentKey sorts by creation time, then id.
func commentKey(c *models.MovieComment) string {
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(c.CreatedAt.UnixNano()))
	return commentPrefix(c.MovieID) + hex.EncodeToString(ts[:]) + c.ID.Hex()
}

// InsertMovieComment stores c, assigning an id and timestamp when missing.
func (s *Store) InsertMovieComment(ctx context.Context, c *models.MovieComment) (err error) {
	defer func(start time.Time) { observe("insert_movie_comment", start, err) }(time.Now())

	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	return s.update(ctx, func(txn *badger.Txn) error {
		return setDoc(txn, commentKey(c), c)
	})
}

// ListMovieComments returns the comments for movieID, newest first.
func (s *Store) ListMovieComments(ctx context.Context, movieID string) (comments []models.MovieComment, err error) {
	defer func(start time.Time) { observe("list_movie_comments", start, err) }(time.Now())

	comments = []models.MovieComment{}
	err = s.view(ctx, func(txn *badger.Txn) error {
		return scanPrefix(txn, commentPrefix(movieID), true, func(val []byte) error {
			var c models.MovieComment
			if err := bson.Unmarshal(val, &c); err != nil {
				return fmt.Errorf("decode comment: %w", err)
			}
			comments = append(comments, c)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}
