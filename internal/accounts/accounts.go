// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package accounts implements signup, login, profile edits, favorites and
// recently viewed lists.
//
// Passwords are stored as bcrypt hashes and never leave the package in a
// response: models.User omits Password from JSON.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/marquee/internal/events"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/store"
	"github.com/tomtom215/marquee/internal/validation"
)

var (
	// ErrUsernameTaken is returned by Signup for an existing username.
	ErrUsernameTaken = errors.New("Username exists")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so callers cannot tell them apart.
	ErrInvalidCredentials = errors.New("Invalid username or password")

	// ErrUsernameConflict is returned by UpdateProfile when the new
	// username belongs to another user.
	ErrUsernameConflict = errors.New("Username already taken")

	// ErrMovieRefRequired is returned when a list update has no movie id.
	ErrMovieRefRequired = errors.New("movie.id required")
)

// Options configures a Service.
type Options struct {
	BcryptCost int
	Events     events.Publisher
}

// Service implements account operations.
type Service struct {
	users  store.UserStore
	cost   int
	events events.Publisher

	// dummyHash is compared against on unknown usernames so both login
	// failures cost one bcrypt comparison.
	dummyHash []byte
}

// NewService creates an accounts service.
func NewService(users store.UserStore, opts Options) (*Service, error) {
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("marquee-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &Service{users: users, cost: cost, events: opts.Events, dummyHash: dummy}, nil
}

// SignupInput is the body of POST /api/users/signup.
type SignupInput struct {
	Name     string `json:"name" validate:"required,notblank"`
	Username string `json:"username" validate:"required,notblank"`
	Email    string `json:"email" validate:"required,notblank"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,notblank,max=72"`
}

// Signup creates a user with a hashed password.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if verr := validation.ValidateStruct(&in); verr != nil {
		return nil, verr
	}

	_, err := s.users.FindUserByUsername(ctx, in.Username)
	switch {
	case err == nil:
		return nil, ErrUsernameTaken
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		Name:     in.Name,
		Username: in.Username,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: string(hash),
	}
	u.Normalize()
	if err := s.users.InsertUser(ctx, u); err != nil {
		// Lost a race with a concurrent signup.
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	logging.Ctx(ctx).Info().Str("username", u.Username).Msg("User registered")
	events.Emit(ctx, s.events, events.TypeUserSignedUp, events.UserSignedUp{
		UserID:   u.ID.Hex(),
		Username: u.Username,
	})
	return u, nil
}

// Login checks credentials and returns the user.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("find user: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	u.Normalize()
	return u, nil
}

// GetUser resolves ident as storage id or username.
func (s *Service) GetUser(ctx context.Context, ident string) (*models.User, error) {
	u, err := s.users.FindUser(ctx, ident)
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", ident, err)
	}
	u.Normalize()
	return u, nil
}

// ProfilePatch carries the fields present in a profile update body. Nil
// means absent. Present name, username and email must not be blank; a
// blank password is ignored.
type ProfilePatch struct {
	Name     *string `json:"name" validate:"omitnil,notblank"`
	Username *string `json:"username" validate:"omitnil,notblank"`
	Email    *string `json:"email" validate:"omitnil,notblank"`
	Phone    *string `json:"phone"`
	Password *string `json:"password" validate:"omitnil,max=72"`
}

// UpdateProfile applies patch to the user resolved from ident.
func (s *Service) UpdateProfile(ctx context.Context, ident string, patch ProfilePatch) (*models.User, error) {
	if verr := validation.ValidateStruct(&patch); verr != nil {
		return nil, verr
	}

	u, err := s.users.FindUser(ctx, ident)
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", ident, err)
	}

	if patch.Username != nil && *patch.Username != u.Username {
		other, err := s.users.FindUserByUsername(ctx, *patch.Username)
		switch {
		case err == nil && other.ID != u.ID:
			return nil, ErrUsernameConflict
		case err != nil && !errors.Is(err, store.ErrNotFound):
			return nil, fmt.Errorf("check username: %w", err)
		}
		u.Username = *patch.Username
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	if patch.Password != nil && strings.TrimSpace(*patch.Password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), s.cost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.Password = string(hash)
	}

	if err := s.users.SaveUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, ErrUsernameConflict
		}
		return nil, fmt.Errorf("save user: %w", err)
	}
	u.Normalize()
	return u, nil
}
