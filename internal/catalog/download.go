// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrFileMissing means the movie exists but its local file does not.
var ErrFileMissing = errors.New("movie file missing")

// Download says how to deliver a movie: redirect to RedirectURL when set,
// otherwise serve FilePath as an attachment named FileName.
type Download struct {
	RedirectURL string
	FilePath    string
	FileName    string
}

// ResolveDownload resolves ident and decides between an external redirect
// and a local file under <public dir>/movies.
func (s *Service) ResolveDownload(ctx context.Context, ident string) (*Download, error) {
	m, err := s.GetMovie(ctx, ident)
	if err != nil {
		return nil, err
	}

	if isExternalURL(m.DownloadURL) {
		return &Download{RedirectURL: m.DownloadURL}, nil
	}

	name := m.Name + ".mp4"
	// A name with a path separator would escape the movies dir.
	if strings.ContainsAny(m.Name, `/\`) || filepath.Base(name) != name {
		return nil, fmt.Errorf("movie %q: unsafe file name: %w", m.MovieID, ErrFileMissing)
	}
	path := filepath.Join(s.publicDir, "movies", name)

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("movie %q: %s: %w", m.MovieID, path, ErrFileMissing)
	}
	return &Download{FilePath: path, FileName: name}, nil
}

// isExternalURL reports an absolute http or https URL with a host.
func isExternalURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
