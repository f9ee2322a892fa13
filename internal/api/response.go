// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/validation"
)

// maxBodyBytes bounds request bodies. Seeding a full catalog is the
// largest legitimate payload.
const maxBodyBytes = 8 << 20

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// SeedResponse is the body of a successful seed.
type SeedResponse struct {
	OK       bool `json:"ok"`
	Inserted int  `json:"inserted"`
}

// respondJSON writes v with status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Debug().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError writes {message}. For 5xx, err is logged and attached as
// the error field.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	body := ErrorResponse{Message: message}
	if status >= http.StatusInternalServerError && err != nil {
		body.Error = err.Error()
		logging.Ctx(r.Context()).Error().
			Str("path", r.URL.Path).
			Str("error", sanitizeLogValue(err.Error())).
			Msg(message)
	}
	respondJSON(w, status, body)
}

// respondValidation writes a 400 for a validation failure.
func respondValidation(w http.ResponseWriter, r *http.Request, verr *validation.RequestValidationError) {
	respondError(w, r, http.StatusBadRequest, verr.Error(), nil)
}

// decodeJSON reads the request body into v. An empty body leaves v at its
// zero value.
func decodeJSON(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return errors.New("request body too large")
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}

// asValidation extracts a validation error from err.
func asValidation(err error) (*validation.RequestValidationError, bool) {
	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// sanitizeLogValue escapes control characters so request data cannot
// forge log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
