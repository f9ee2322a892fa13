// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package store

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseID(t *testing.T) {
	t.Parallel()

	valid := primitive.NewObjectID()
	tests := []struct {
		name  string
		ident string
		ok    bool
	}{
		{"hex object id", valid.Hex(), true},
		{"movie id", "tt0111161", false},
		{"username", "alice", false},
		{"wrong length hex", "abcdef", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			id, ok := ParseID(tt.ident)
			if ok != tt.ok {
				t.Fatalf("ParseID(%q) ok = %v, want %v", tt.ident, ok, tt.ok)
			}
			if ok && id != valid {
				t.Errorf("id = %s, want %s", id.Hex(), valid.Hex())
			}
		})
	}
}
