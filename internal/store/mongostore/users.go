// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/store"
)

// FindUser resolves ident as _id or username in one query. An _id match
// wins over a username match on a different document.
func (s *Store) FindUser(ctx context.Context, ident string) (*models.User, error) {
	return run(s, "find_user", func() (*models.User, error) {
		id, isID := store.ParseID(ident)
		if !isID {
			return s.findOneUser(ctx, bson.D{{Key: "username", Value: ident}})
		}

		filter := bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "_id", Value: id}},
			bson.D{{Key: "username", Value: ident}},
		}}}
		cur, err := s.users.Find(ctx, filter, options.Find().SetLimit(2))
		if err != nil {
			return nil, err
		}
		var matches []models.User
		if err := cur.All(ctx, &matches); err != nil {
			return nil, err
		}
		return pickUser(matches, id)
	})
}

func pickUser(matches []models.User, id primitive.ObjectID) (*models.User, error) {
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

// FindUserByUsername looks up by username only.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return run(s, "find_user_by_username", func() (*models.User, error) {
		return s.findOneUser(ctx, bson.D{{Key: "username", Value: username}})
	})
}

func (s *Store) findOneUser(ctx context.Context, filter bson.D) (*models.User, error) {
	var u models.User
	if err := s.users.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// InsertUser stores a new user. The unique username index turns a taken
// username into store.ErrDuplicateKey.
func (s *Store) InsertUser(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	_, err := run(s, "insert_user", func() (struct{}, error) {
		_, err := s.users.InsertOne(ctx, u)
		return struct{}{}, err
	})
	return err
}

// SaveUser replaces the stored document with the same _id.
func (s *Store) SaveUser(ctx context.Context, u *models.User) error {
	_, err := run(s, "save_user", func() (struct{}, error) {
		res, err := s.users.ReplaceOne(ctx, bson.D{{Key: "_id", Value: u.ID}}, u)
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
