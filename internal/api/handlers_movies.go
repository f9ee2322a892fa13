// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"mime"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/store"
)

// respondMovieError maps a catalog error to 404 or 500.
func respondMovieError(w http.ResponseWriter, r *http.Request, err error, notFound, serverMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, r, http.StatusNotFound, notFound, nil)
		return
	}
	respondError(w, r, http.StatusInternalServerError, serverMsg, err)
}

// ListMovies returns the whole catalog.
//
// @Summary List movies
// @Tags Movies
// @Produce json
// @Success 200 {array} models.Movie
// @Failure 500 {object} ErrorResponse
// @Router /movies [get]
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.catalog.ListMovies(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "server error", err)
		return
	}
	respondJSON(w, http.StatusOK, movies)
}

// GetMovie returns one movie by storage id or movieId.
//
// @Summary Get a movie
// @Tags Movies
// @Produce json
// @Param movieId path string true "movieId or storage id"
// @Success 200 {object} models.Movie
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies/{movieId} [get]
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	m, err := h.catalog.GetMovie(r.Context(), chi.URLParam(r, "movieId"))
	if err != nil {
		respondMovieError(w, r, err, "not found", "server error")
		return
	}
	respondJSON(w, http.StatusOK, m)
}

// SimilarMovies returns movies sharing the genre of the resolved movie.
//
// @Summary Similar movies
// @Tags Movies
// @Produce json
// @Param movieId path string true "movieId or storage id"
// @Success 200 {array} models.Movie
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies/{movieId}/similar [get]
func (h *Handler) SimilarMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.catalog.Similar(r.Context(), chi.URLParam(r, "movieId"))
	if err != nil {
		respondMovieError(w, r, err, "Movie not found", "server error")
		return
	}
	respondJSON(w, http.StatusOK, movies)
}

// DownloadMovie redirects to an external download URL or streams the
// local file as an attachment.
//
// @Summary Download a movie
// @Tags Movies
// @Produce octet-stream
// @Param movieId path string true "movieId or storage id"
// @Success 200 {file} file
// @Success 302 {string} string "Redirect to downloadUrl"
// @Failure 404 {object} ErrorResponse "Movie not found"
// @Failure 500 {object} ErrorResponse "File missing"
// @Router /movies/download/{movieId} [get]
func (h *Handler) DownloadMovie(w http.ResponseWriter, r *http.Request) {
	dl, err := h.catalog.ResolveDownload(r.Context(), chi.URLParam(r, "movieId"))
	if err != nil {
		respondMovieError(w, r, err, "Movie not found", "Error downloading movie")
		return
	}

	if dl.RedirectURL != "" {
		http.Redirect(w, r, dl.RedirectURL, http.StatusFound)
		return
	}

	f, err := os.Open(dl.FilePath)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Error downloading movie", catalog.ErrFileMissing)
		return
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Error downloading movie", err)
		return
	}

	// The server WriteTimeout bounds API responses, not file transfers.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		respondError(w, r, http.StatusInternalServerError, "Error downloading movie", err)
		return
	}

	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": dl.FileName}))
	http.ServeContent(w, r, dl.FileName, info.ModTime(), f)
}

// SeedMovies replaces the catalog with the posted list.
//
// @Summary Seed the catalog
// @Description Drops every movie and inserts the list. movieIds must be unique.
// @Tags Movies
// @Accept json
// @Produce json
// @Param body body catalog.SeedRequest true "Movies"
// @Success 200 {object} SeedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies/seed [post]
func (h *Handler) SeedMovies(w http.ResponseWriter, r *http.Request) {
	var req catalog.SeedRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	n, err := h.catalog.Seed(r.Context(), req.List)
	if err != nil {
		if verr, ok := asValidation(err); ok {
			respondValidation(w, r, verr)
			return
		}
		if errors.Is(err, store.ErrDuplicateKey) {
			respondError(w, r, http.StatusBadRequest, "Duplicate movieId in list", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "server error", err)
		return
	}
	respondJSON(w, http.StatusOK, SeedResponse{OK: true, Inserted: n})
}
