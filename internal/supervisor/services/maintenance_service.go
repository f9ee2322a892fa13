// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"
)

const (
	defaultGCInterval      = 5 * time.Minute
	defaultCleanupInterval = time.Minute
)

// GCRunner is satisfied by *badgerstore.Store.
type GCRunner interface {
	RunGCLoop(ctx context.Context, interval time.Duration) error
}

// BadgerGCService reclaims value log space on an interval.
type BadgerGCService struct {
	store    GCRunner
	interval time.Duration
}

// NewBadgerGCService wraps store. A non-positive interval means 5m.
func NewBadgerGCService(store GCRunner, interval time.Duration) *BadgerGCService {
	if interval <= 0 {
		interval = defaultGCInterval
	}
	return &BadgerGCService{store: store, interval: interval}
}

// Serve implements suture.Service.
func (s *BadgerGCService) Serve(ctx context.Context) error {
	return s.store.RunGCLoop(ctx, s.interval)
}

func (s *BadgerGCService) String() string {
	return "badger-gc"
}

// Cleaner is satisfied by *cache.Cache.
type Cleaner interface {
	RunCleanup(ctx context.Context, interval time.Duration)
}

// CacheCleanupService evicts expired movie list entries.
type CacheCleanupService struct {
	cache    Cleaner
	interval time.Duration
}

// NewCacheCleanupService wraps c. A non-positive interval means 1m.
func NewCacheCleanupService(c Cleaner, interval time.Duration) *CacheCleanupService {
	if interval <= 0 {
		interval = defaultCleanupInterval
	}
	return &CacheCleanupService{cache: c, interval: interval}
}

// Serve implements suture.Service.
func (s *CacheCleanupService) Serve(ctx context.Context) error {
	s.cache.RunCleanup(ctx, s.interval)
	return ctx.Err()
}

func (s *CacheCleanupService) String() string {
	return "movie-cache-cleanup"
}
