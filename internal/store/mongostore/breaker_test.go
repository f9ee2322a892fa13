// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package mongostore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/store"
)

func testBreakerConfig() config.BreakerConfig {
	return config.BreakerConfig{
		Enabled:      true,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  4,
		FailureRatio: 0.5,
	}
}

func TestBreakerDisabledPassesThrough(t *testing.T) {
	t.Parallel()

	b := newBreaker(config.BreakerConfig{Enabled: false})
	if b != nil {
		t.Fatal("disabled breaker should be nil")
	}
	for i := 0; i < 20; i++ {
		if _, err := call(b, func() (int, error) { return 0, errors.New("down") }); err == nil {
			t.Fatal("expected error")
		}
	}
	if b.state() != gobreaker.StateClosed {
		t.Error("nil breaker should report closed")
	}
}

func TestBreakerTripsOnServerErrors(t *testing.T) {
	t.Parallel()

	b := newBreaker(testBreakerConfig())
	down := errors.New("connection refused")
	for i := 0; i < 4; i++ {
		_, _ = call(b, func() (int, error) { return 0, down })
	}

	if b.state() != gobreaker.StateOpen {
		t.Fatalf("state = %s, want open", b.state())
	}
	_, err := call(b, func() (int, error) { return 1, nil })
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("err = %v, want ErrOpenState", err)
	}
}

func TestBreakerIgnoresDomainOutcomes(t *testing.T) {
	t.Parallel()

	b := newBreaker(testBreakerConfig())
	outcomes := []error{
		store.ErrNotFound,
		fmt.Errorf("%w: E11000", store.ErrDuplicateKey),
		context.Canceled,
	}
	for i := 0; i < 10; i++ {
		err := outcomes[i%len(outcomes)]
		if _, got := call(b, func() (int, error) { return 0, err }); !errors.Is(got, err) {
			t.Fatalf("got %v, want %v", got, err)
		}
	}
	if b.state() != gobreaker.StateClosed {
		t.Errorf("state = %s, want closed", b.state())
	}
}

func TestCallReturnsTypedResult(t *testing.T) {
	t.Parallel()

	b := newBreaker(testBreakerConfig())
	movies, err := call(b, func() ([]models.Movie, error) {
		return []models.Movie{{MovieID: "m1"}}, nil
	})
	if err != nil || len(movies) != 1 || movies[0].MovieID != "m1" {
		t.Fatalf("call = %v, %v", movies, err)
	}

	var nilMovie *models.Movie
	got, err := call(b, func() (*models.Movie, error) { return nilMovie, nil })
	if err != nil || got != nil {
		t.Errorf("nil pointer result = %v, %v", got, err)
	}
}

func TestTranslateError(t *testing.T) {
	t.Parallel()

	dupErr := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	other := errors.New("boom")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no documents", mongo.ErrNoDocuments, store.ErrNotFound},
		{"duplicate key", dupErr, store.ErrDuplicateKey},
		{"other", other, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := translateError(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Errorf("got %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPickPrefersStorageID(t *testing.T) {
	t.Parallel()

	id := primitive.NewObjectID()
	byMovieID := models.Movie{ID: primitive.NewObjectID(), MovieID: id.Hex(), Name: "by movieId"}
	byID := models.Movie{ID: id, MovieID: "other", Name: "by id"}

	got, err := pickMovie([]models.Movie{byMovieID, byID}, id)
	if err != nil || got.Name != "by id" {
		t.Errorf("pickMovie = %+v, %v", got, err)
	}
	if _, err := pickMovie(nil, id); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("empty matches err = %v", err)
	}

	uid := primitive.NewObjectID()
	users := []models.User{{ID: primitive.NewObjectID(), Username: uid.Hex()}, {ID: uid, Username: "real"}}
	if u, _ := pickUser(users, uid); u.Username != "real" {
		t.Errorf("pickUser = %+v", u)
	}
}
