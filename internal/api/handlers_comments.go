// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/catalog"
)

// MovieComments returns the embedded comments of a movie, newest first.
//
// @Summary List embedded comments
// @Tags Comments
// @Produce json
// @Param movieId path string true "movieId or storage id"
// @Success 200 {array} models.Comment
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies/{movieId}/comments [get]
func (h *Handler) MovieComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.catalog.Comments(r.Context(), chi.URLParam(r, "movieId"))
	if err != nil {
		respondMovieError(w, r, err, "Movie not found", "Error fetching comments")
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

// AddMovieComment prepends a comment to the movie's embedded list.
//
// @Summary Add an embedded comment
// @Description rating defaults to 0 when absent.
// @Tags Comments
// @Accept json
// @Produce json
// @Param movieId path string true "movieId or storage id"
// @Param body body catalog.CommentInput true "Comment"
// @Success 200 {array} models.Comment
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies/{movieId}/comments [post]
func (h *Handler) AddMovieComment(w http.ResponseWriter, r *http.Request) {
	var in catalog.CommentInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	comments, err := h.catalog.AddComment(r.Context(), chi.URLParam(r, "movieId"), in)
	if err != nil {
		if _, ok := asValidation(err); ok {
			respondError(w, r, http.StatusBadRequest, "username & comment required", nil)
			return
		}
		respondMovieError(w, r, err, "Movie not found", "Error saving comment")
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

// StandaloneComments returns the standalone comments for a movieId.
//
// @Summary List standalone comments
// @Tags Comments
// @Produce json
// @Param movieId path string true "movieId"
// @Success 200 {array} models.MovieComment
// @Failure 500 {object} ErrorResponse
// @Router /movieComments/{movieId} [get]
func (h *Handler) StandaloneComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.catalog.MovieComments(r.Context(), chi.URLParam(r, "movieId"))
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Error fetching comments", err)
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

// AddStandaloneComment stores a standalone comment and returns the list
// for its movieId.
//
// @Summary Add a standalone comment
// @Description Every field, rating included, is required.
// @Tags Comments
// @Accept json
// @Produce json
// @Param body body catalog.MovieCommentInput true "Comment"
// @Success 200 {array} models.MovieComment
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /movieComments/add [post]
func (h *Handler) AddStandaloneComment(w http.ResponseWriter, r *http.Request) {
	var in catalog.MovieCommentInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	comments, err := h.catalog.AddMovieComment(r.Context(), in)
	if err != nil {
		if _, ok := asValidation(err); ok {
			respondError(w, r, http.StatusBadRequest, "All fields are required", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "Error saving comment", err)
		return
	}
	respondJSON(w, http.StatusOK, comments)
}
