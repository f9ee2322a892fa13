// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package driver

import (
	"context"
	"strings"
	"testing"

	"github.com/tomtom215/marquee/internal/config"
)

func TestOpenBadgerInMemory(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Database: config.DatabaseConfig{Driver: config.DriverBadger, BadgerInMemory: true}}
	st, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	if st.Backend() != "badger" {
		t.Errorf("Backend = %q", st.Backend())
	}
	if err := st.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestOpenErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		db   config.DatabaseConfig
		want string
	}{
		{"unknown driver", config.DatabaseConfig{Driver: "sqlite"}, `unknown database driver "sqlite"`},
		{"badger without path", config.DatabaseConfig{Driver: config.DriverBadger}, "open badger store"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Open(context.Background(), &config.Config{Database: tt.db})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}
