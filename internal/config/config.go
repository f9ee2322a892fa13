// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package config loads Marquee configuration from layered sources.
//
// Precedence, lowest to highest:
//
//  1. built-in defaults (defaultConfig)
//  2. a YAML file (CONFIG_PATH, then ./config.yaml, /etc/marquee/config.yaml)
//  3. environment variables, including those read from a .env file
//
// Only the environment variables listed in envTransformFunc are honored.
package config

import (
	"time"
)

// Database drivers.
const (
	DriverMongo  = "mongo"
	DriverBadger = "badger"
)

// Event bus drivers.
const (
	EventsChannel = "channel"
	EventsNATS    = "nats"
)

// Config is the complete application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Events    EventsConfig    `koanf:"events"`
	Cache     CacheConfig     `koanf:"cache"`
	WebSocket WebSocketConfig `koanf:"websocket"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
	PublicDir       string        `koanf:"public_dir"`  // served under /public, downloads read <public_dir>/movies
}

// DatabaseConfig selects and configures the document store.
type DatabaseConfig struct {
	Driver         string        `koanf:"driver"`
	MongoURI       string        `koanf:"mongo_uri"`
	MongoDatabase  string        `koanf:"mongo_database"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
	BadgerPath     string        `koanf:"badger_path"`
	BadgerInMemory bool          `koanf:"badger_in_memory"`
}

// BreakerConfig tunes the circuit breaker around MongoDB calls.
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// SecurityConfig holds CORS, rate limiting and password hashing settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	BcryptCost        int           `koanf:"bcrypt_cost"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// EventsConfig selects the domain event transport.
type EventsConfig struct {
	Driver        string `koanf:"driver"`
	BufferSize    int64  `koanf:"buffer_size"`
	NATSHost      string `koanf:"nats_host"`
	NATSPort      int    `koanf:"nats_port"`
	SubjectPrefix string `koanf:"subject_prefix"`
}

// CacheConfig controls the movie list cache. The zero TTL default leaves it
// off; the cache only sees writes made through this process.
type CacheConfig struct {
	MovieListTTL time.Duration `koanf:"movie_list_ttl"`
}

// WebSocketConfig throttles inbound client messages on the activity feed.
type WebSocketConfig struct {
	MessagesPerSecond float64 `koanf:"messages_per_second"`
	Burst             int     `koanf:"burst"`
}

// Load reads the configuration from defaults, file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "" || c.Server.Environment == "development"
}

// ShouldWarnAboutCORS reports a wildcard CORS origin outside development.
func (c *Config) ShouldWarnAboutCORS() bool {
	if c.IsDevelopment() {
		return false
	}
	for _, o := range c.Security.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}
