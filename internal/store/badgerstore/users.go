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
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/store"
)

// FindUser resolves ident as the storage id first, then as username.
func (s *Store) FindUser(ctx context.Context, ident string) (user *models.User, err error) {
	defer func(start time.Time) { observe("find_user", start, err) }(time.Now())

	var u models.User
	err = s.view(ctx, func(txn *badger.Txn) error {
		if id, ok := store.ParseID(ident); ok {
			err := getDoc(txn, prefixUser+id.Hex(), &u)
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}
		}
		return findUserByUsername(txn, ident, &u)
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindUserByUsername looks up by username only.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (user *models.User, err error) {
	defer func(start time.Time) { observe("find_user_by_username", start, err) }(time.Now())

	var u models.User
	err = s.view(ctx, func(txn *badger.Txn) error {
		return findUserByUsername(txn, username, &u)
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func findUserByUsername(txn *badger.Txn, username string, out *models.User) error {
	hex, err := getIndex(txn, prefixUserIndex+username)
	if err != nil {
		return err
	}
	return getDoc(txn, prefixUser+hex, out)
}

// InsertUser stores a new user. A taken username gives store.ErrDuplicateKey.
func (s *Store) InsertUser(ctx context.Context, u *models.User) (err error) {
	defer func(start time.Time) { observe("insert_user", start, err) }(time.Now())

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	return s.update(ctx, func(txn *badger.Txn) error {
		if err := claimUsername(txn, u); err != nil {
			return err
		}
		return setDoc(txn, prefixUser+u.ID.Hex(), u)
	})
}

// SaveUser overwrites an existing user, moving the username index entry
// when the username changed.
func (s *Store) SaveUser(ctx context.Context, u *models.User) (err error) {
	defer func(start time.Time) { observe("save_user", start, err) }(time.Now())

	key := prefixUser + u.ID.Hex()
	return s.update(ctx, func(txn *badger.Txn) error {
		var current models.User
		if err := getDoc(txn, key, &current); err != nil {
			return err
		}
		if current.Username != u.Username {
			if err := claimUsername(txn, u); err != nil {
				return err
			}
			if err := txn.Delete([]byte(prefixUserIndex + current.Username)); err != nil {
				return fmt.Errorf("delete user index: %w", err)
			}
		}
		return setDoc(txn, key, u)
	})
}

func claimUsername(txn *badger.Txn, u *models.User) error {
	_, err := getIndex(txn, prefixUserIndex+u.Username)
	switch {
	case err == nil:
		return fmt.Errorf("username %q: %w", u.Username, store.ErrDuplicateKey)
	case !errors.Is(err, store.ErrNotFound):
		return err
	}
	return txn.Set([]byte(prefixUserIndex+u.Username), []byte(u.ID.Hex()))
}
