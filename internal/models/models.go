// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package models defines the documents persisted by the store and returned
// by the API. Field names on the wire match the stored field names.
package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecentlyViewedLimit caps User.RecentlyViewed.
const RecentlyViewedLimit = 20

// Movie is a catalog entry. MovieID is the external identifier and is
// distinct from the storage-assigned ID.
type Movie struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	MovieID     string             `bson:"movieId" json:"movieId" validate:"required,notblank"`
	Name        string             `bson:"name" json:"name" validate:"required,notblank"`
	Img         string             `bson:"img,omitempty" json:"img,omitempty"`
	Trailer     string             `bson:"trailer,omitempty" json:"trailer,omitempty"`
	Genre       string             `bson:"genre,omitempty" json:"genre,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	DownloadURL string             `bson:"downloadUrl,omitempty" json:"downloadUrl,omitempty"`
	// Comments is most recent first.
	Comments []Comment `bson:"comments" json:"comments"`
}

// Comment is embedded in Movie.Comments.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username  string             `bson:"username" json:"username"`
	Comment   string             `bson:"comment" json:"comment"`
	Rating    float64            `bson:"rating" json:"rating"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// MovieComment lives in its own collection keyed by MovieID. It is never
// reconciled with Movie.Comments.
type MovieComment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	MovieID   string             `bson:"movieId" json:"movieId"`
	Username  string             `bson:"username" json:"username"`
	Comment   string             `bson:"comment" json:"comment"`
	Rating    float64            `bson:"rating" json:"rating"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// MovieRef is the reduced movie shape kept in favorites and recently viewed.
type MovieRef struct {
	ID   string `bson:"id" json:"id" validate:"required,notblank"`
	Name string `bson:"name,omitempty" json:"name,omitempty"`
	Img  string `bson:"img,omitempty" json:"img,omitempty"`
}

// UnmarshalJSON accepts id as a string or a number. Clients built against
// numeric movie ids send either.
func (r *MovieRef) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID   interface{} `json:"id"`
		Name string      `json:"name"`
		Img  string      `json:"img"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch id := raw.ID.(type) {
	case nil:
		r.ID = ""
	case string:
		r.ID = id
	case float64:
		r.ID = strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Errorf("movie id must be a string or number, got %T", raw.ID)
	}
	r.Name = raw.Name
	r.Img = raw.Img
	return nil
}

// User is an account. Password holds the bcrypt hash and is never
// serialized to JSON.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name           string             `bson:"name" json:"name"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Password       string             `bson:"password" json:"-"`
	Favorites      []MovieRef         `bson:"favorites" json:"favorites"`
	RecentlyViewed []MovieRef         `bson:"recentlyViewed" json:"recentlyViewed"`
}

// Normalize replaces nil lists so they encode as [] instead of null.
func (m *Movie) Normalize() {
	if m.Comments == nil {
		m.Comments = []Comment{}
	}
}

// Normalize replaces nil lists so they encode as [] instead of null.
func (u *User) Normalize() {
	if u.Favorites == nil {
		u.Favorites = []MovieRef{}
	}
	if u.RecentlyViewed == nil {
		u.RecentlyViewed = []MovieRef{}
	}
}
