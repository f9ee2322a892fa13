// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/accounts"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/store"
)

// userParam is the path parameter naming a user by storage id or username.
const userParam = "identifier"

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// FavoriteRequest is the body of PUT .../favorites.
type FavoriteRequest struct {
	Movie  *models.MovieRef `json:"movie"`
	Remove bool             `json:"remove"`
}

// RecentlyViewedRequest is the body of PUT .../recentlyViewed.
type RecentlyViewedRequest struct {
	Movie *models.MovieRef `json:"movie"`
}

func respondUserError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, r, http.StatusNotFound, "User not found", nil)
		return
	}
	respondError(w, r, http.StatusInternalServerError, "Server error", err)
}

// Signup registers a user.
//
// @Summary Sign up
// @Tags Users
// @Accept json
// @Produce json
// @Param body body accounts.SignupInput true "Account"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} ErrorResponse "Invalid input or username exists"
// @Failure 500 {object} ErrorResponse
// @Router /users/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var in accounts.SignupInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	u, err := h.accounts.Signup(r.Context(), in)
	if err != nil {
		if verr, ok := asValidation(err); ok {
			respondValidation(w, r, verr)
			return
		}
		if errors.Is(err, accounts.ErrUsernameTaken) {
			respondError(w, r, http.StatusBadRequest, accounts.ErrUsernameTaken.Error(), nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "Server error", err)
		return
	}
	respondJSON(w, http.StatusCreated, AuthResponse{Message: "User registered", User: u})
}

// Login checks a username and password.
//
// @Summary Log in
// @Tags Users
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} ErrorResponse "Invalid username or password"
// @Failure 500 {object} ErrorResponse
// @Router /users/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	u, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			respondError(w, r, http.StatusBadRequest, accounts.ErrInvalidCredentials.Error(), nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "Server error", err)
		return
	}
	respondJSON(w, http.StatusOK, AuthResponse{Message: "Login successful", User: u})
}

// GetUser returns a user by storage id or username.
//
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param identifier path string true "username or storage id"
// @Success 200 {object} models.User
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{identifier} [get]
// @Router /profile/{identifier} [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.accounts.GetUser(r.Context(), chi.URLParam(r, userParam))
	if err != nil {
		respondUserError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// UpdateProfile applies the fields present in the body. A blank password
// is ignored.
//
// @Summary Update a profile
// @Tags Users
// @Accept json
// @Produce json
// @Param identifier path string true "storage id or username"
// @Param body body accounts.ProfilePatch true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username already taken"
// @Failure 500 {object} ErrorResponse
// @Router /users/{identifier} [put]
// @Router /profile/{identifier} [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch accounts.ProfilePatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	u, err := h.accounts.UpdateProfile(r.Context(), chi.URLParam(r, userParam), patch)
	if err != nil {
		if verr, ok := asValidation(err); ok {
			respondValidation(w, r, verr)
			return
		}
		if errors.Is(err, accounts.ErrUsernameConflict) {
			respondError(w, r, http.StatusConflict, accounts.ErrUsernameConflict.Error(), nil)
			return
		}
		respondUserError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// GetFavorites returns the user's favorites.
//
// @Summary List favorites
// @Tags Lists
// @Produce json
// @Param identifier path string true "username"
// @Success 200 {array} models.MovieRef
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{identifier}/favorites [get]
func (h *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	list, err := h.accounts.Favorites(r.Context(), chi.URLParam(r, userParam))
	if err != nil {
		respondUserError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// PutFavorite adds a movie to favorites, or removes it when remove is set.
//
// @Summary Toggle a favorite
// @Tags Lists
// @Accept json
// @Produce json
// @Param identifier path string true "username"
// @Param body body FavoriteRequest true "Movie and remove flag"
// @Success 200 {array} models.MovieRef
// @Failure 400 {object} ErrorResponse "movie.id required"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{identifier}/favorites [put]
func (h *Handler) PutFavorite(w http.ResponseWriter, r *http.Request) {
	var req FavoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if req.Movie == nil {
		respondError(w, r, http.StatusBadRequest, accounts.ErrMovieRefRequired.Error(), nil)
		return
	}

	list, err := h.accounts.ToggleFavorite(r.Context(), chi.URLParam(r, userParam), *req.Movie, req.Remove)
	if err != nil {
		if errors.Is(err, accounts.ErrMovieRefRequired) {
			respondError(w, r, http.StatusBadRequest, err.Error(), nil)
			return
		}
		respondUserError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// GetRecentlyViewed returns the user's recently viewed movies.
//
// @Summary List recently viewed
// @Tags Lists
// @Produce json
// @Param identifier path string true "username"
// @Success 200 {array} models.MovieRef
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{identifier}/recentlyViewed [get]
func (h *Handler) GetRecentlyViewed(w http.ResponseWriter, r *http.Request) {
	list, err := h.accounts.RecentlyViewed(r.Context(), chi.URLParam(r, userParam))
	if err != nil {
		respondUserError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// PutRecentlyViewed moves a movie to the front of recently viewed.
//
// @Summary Push recently viewed
// @Tags Lists
// @Accept json
// @Produce json
// @Param identifier path string true "username"
// @Param body body RecentlyViewedRequest true "Movie"
// @Success 200 {array} models.MovieRef
// @Failure 400 {object} ErrorResponse "movie.id required"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{identifier}/recentlyViewed [put]
func (h *Handler) PutRecentlyViewed(w http.ResponseWriter, r *http.Request) {
	var req RecentlyViewedRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if req.Movie == nil {
		respondError(w, r, http.StatusBadRequest, accounts.ErrMovieRefRequired.Error(), nil)
		return
	}

	list, err := h.accounts.PushRecentlyViewed(r.Context(), chi.URLParam(r, userParam), *req.Movie)
	if err != nil {
		if errors.Is(err, accounts.ErrMovieRefRequired) {
			respondError(w, r, http.StatusBadRequest, err.Error(), nil)
			return
		}
		respondUserError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}
